package retrieval

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/xstats"
)

const (
	defaultLocale      = "en-CA"
	defaultTimezone    = "America/Montreal"
	defaultMaxPassages = 20
	defaultTimeout     = 10 * time.Second
)

// Config holds everything the client needs to address the search provider.
// None of these values are compiled into the binary.
type Config struct {
	EndpointURL string        `description:"Passage retrieval URL including the organization, e.g. https://ORG.org.coveo.com/rest/search/v3/passages/retrieve?organizationId=ORG."`
	AuthToken   string        `description:"Bearer token sent with every retrieval call."`
	SearchHub   string        `description:"Search hub that scopes the query pipeline and analytics."`
	Locale      string        `description:"Locale of the search session."`
	Timezone    string        `description:"Timezone of the search session."`
	MaxPassages int           `description:"Maximum number of passages requested per query."`
	Timeout     time.Duration `description:"Upper bound on a single retrieval call."`
}

// Name of the configuration root.
func (*Config) Name() string {
	return "retrieval"
}

// Component is the settings component that produces a Client.
type Component struct {
	// Transport overrides the HTTP transport used for upstream calls. The
	// default is http.DefaultTransport.
	Transport http.RoundTripper
}

// Settings generates a config populated with the default values.
func (*Component) Settings() *Config {
	return &Config{
		Locale:      defaultLocale,
		Timezone:    defaultTimezone,
		MaxPassages: defaultMaxPassages,
		Timeout:     defaultTimeout,
	}
}

// New constructs a Client from the given config.
func (c *Component) New(_ context.Context, conf *Config) (*Client, error) {
	if conf.EndpointURL == "" {
		return nil, fmt.Errorf("retrieval endpoint URL is required")
	}
	u, err := url.Parse(conf.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("invalid retrieval endpoint URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("retrieval endpoint URL must be http or https, got %q", u.Scheme)
	}
	if conf.MaxPassages < 1 {
		return nil, fmt.Errorf("max passages must be positive, got %d", conf.MaxPassages)
	}
	transport := c.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		EndpointURL: conf.EndpointURL,
		AuthToken:   conf.AuthToken,
		SearchHub:   conf.SearchHub,
		Locale:      conf.Locale,
		Timezone:    conf.Timezone,
		MaxPassages: conf.MaxPassages,
		Timeout:     conf.Timeout,
		HTTPClient:  &http.Client{Transport: transport},
		StatFn:      xstats.FromContext,
	}, nil
}
