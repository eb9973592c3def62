package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coveo-labs/passageproxy/pkg/domain"
	"github.com/tidwall/gjson"
)

const (
	statUpstreamDuration = "passages.upstream.duration"
	statUpstreamResponse = "passages.upstream.response"
)

// Client implements domain.PassageRetriever against the passage retrieval
// API. Each call results in exactly one POST; nothing is retried or cached.
type Client struct {
	EndpointURL string
	AuthToken   string
	SearchHub   string
	Locale      string
	Timezone    string
	MaxPassages int
	// Timeout bounds each call. Zero leaves the call bounded only by ctx.
	Timeout    time.Duration
	HTTPClient *http.Client
	StatFn     domain.StatFn
}

// RetrievePassages posts the query to the search provider and returns the
// response body unchanged when it is a 2xx carrying JSON.
func (c *Client) RetrievePassages(ctx context.Context, query *string) (json.RawMessage, error) {
	payload, err := json.Marshal(c.payload(query))
	if err != nil {
		return nil, err
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.EndpointURL, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.UpstreamUnreachableError{Endpoint: c.EndpointURL, Reason: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AuthToken)

	stat := c.StatFn(ctx)
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	stat.Timing(statUpstreamDuration, time.Since(start))
	if err != nil {
		return nil, domain.UpstreamUnreachableError{Endpoint: c.EndpointURL, Reason: err}
	}
	defer resp.Body.Close()
	stat.Count(statUpstreamResponse, 1, fmt.Sprintf("status:%d", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, domain.UpstreamRejectedError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamUnreachableError{Endpoint: c.EndpointURL, Reason: err}
	}
	if !gjson.ValidBytes(body) {
		return nil, domain.MalformedResponseError{Reason: "body is not valid JSON"}
	}
	return body, nil
}

func (c *Client) payload(query *string) domain.PassageQuery {
	return domain.PassageQuery{
		Localization: domain.Localization{
			Locale:   c.Locale,
			Timezone: c.Timezone,
		},
		Query:       query,
		SearchHub:   c.SearchHub,
		MaxPassages: c.MaxPassages,
	}
}

// statusText extracts the reason phrase from a status line such as
// "503 Service Unavailable".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
