package passageproxy

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/coveo-labs/passageproxy/pkg/domain"
)

// Logger is the structured event logger handed to every invocation.
type Logger = domain.Logger

// LogFn extracts a logger from the context.
type LogFn = domain.LogFn

// Stat is the metrics client handed to every invocation.
type Stat = domain.Stat

// StatFn extracts a metrics client from the context.
type StatFn = domain.StatFn

// Function is a hosted function such as passages. Beyond invocation it
// exposes the Go function it was built from and the errors it can return so
// that mock builds can imitate it.
type Function interface {
	lambda.Handler
	Source() interface{}
	Errors() []error
}

// URLParamFn reads a named route parameter, {functionName} in practice,
// from the request context populated by the mux.
type URLParamFn func(ctx context.Context, name string) string

// Fetcher resolves the function name taken from the route.
type Fetcher interface {
	// Fetch returns the Function registered under name, or a NotFoundError
	// so both routes can answer 404.
	Fetch(ctx context.Context, name string) (Function, error)
}

// NotFoundError is returned by a Fetcher for an unknown function name.
type NotFoundError = domain.NotFoundError
