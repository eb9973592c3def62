package passageproxy

import (
	"context"
	"fmt"
	"strings"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-lambda-go/lambda"
)

const (
	// BuildModeHTTP is the standard mode of running an HTTP server
	// that implements the Invoke API and the gateway route.
	BuildModeHTTP = "http"
	// BuildModeHTTPMock runs the HTTP server but with mocked versions
	// of the lambda functions loaded.
	BuildModeHTTPMock = "http_mock"
	// BuildModeLambda runs the official lambda server using the lambda
	// SDK. Using this mode requires the TargetFunction value to be set.
	BuildModeLambda = "lambda"
	// BuildModeLambdaMock runs the official lambda server using the lambda
	// SDK but with a mocked version of the loaded function. Using this mode
	// requires the TargetFunction value to be set.
	BuildModeLambdaMock = "lambda_mock"

	settingsPrefix = "passageproxy"
)

var (
	// BuildMode determines the behavior of the Start method. The suggested
	// way to set it is with a build variable by adding
	// `-ldflags "-X github.com/coveo-labs/passageproxy.BuildMode=<value>"`
	// to `go build` or `go run` commands. It may also be assigned in code
	// before calling Start, for example from an environment variable.
	//
	// Alternatively, the StartMode() method may be used if you prefer to pass in
	// parameters via code rather than toggling the global setting.
	BuildMode = BuildModeHTTP
	// TargetFunction is used when building in a native lambda mode to select a
	// single function to run. This value can be set in all the same ways as the
	// BuildMode value.
	TargetFunction = ""
	// LambdaStartFn starts the native lambda server. It never returns under
	// normal operation. Tests replace it with a server that can be stopped.
	LambdaStartFn = lambda.StartHandler
)

// Start is a replacement for the lambda.Start method. By default, this
// method will start the HTTP API and will invoke functions loaded using
// the given Fetcher.
func Start(ctx context.Context, s settings.Source, f Fetcher) error {
	return StartMode(ctx, s, f, BuildMode, TargetFunction)
}

// StartMode works just like Start but allows for explicit passing of the build
// mode and target function.
func StartMode(ctx context.Context, s settings.Source, f Fetcher, mode string, target string) error {
	switch {
	case strings.EqualFold(mode, BuildModeHTTP):
		return StartHTTP(ctx, s, f)
	case strings.EqualFold(mode, BuildModeHTTPMock):
		return StartHTTPMock(ctx, s, f)
	case strings.EqualFold(mode, BuildModeLambda):
		return StartLambda(ctx, s, f, target)
	case strings.EqualFold(mode, BuildModeLambdaMock):
		return StartLambdaMock(ctx, s, f, target)
	default:
		return fmt.Errorf("unknown build mode %s", mode)
	}
}

func newHTTPRuntime(ctx context.Context, s settings.Source, f Fetcher, mockMode bool) (*runhttp.Runtime, error) {
	conf := &RouterConfig{
		Fetcher:  f,
		MockMode: mockMode,
	}
	router := NewRouter(conf)
	rtC := runhttp.NewComponent().WithHandler(router)
	rt := new(runhttp.Runtime)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: s, Prefix: []string{settingsPrefix}},
		rtC,
		rt,
	)
	return rt, err
}

// StartHTTP runs the HTTP API.
func StartHTTP(ctx context.Context, s settings.Source, f Fetcher) error {
	rt, err := newHTTPRuntime(ctx, s, f, false)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartHTTPMock runs the HTTP API with mocked out functions.
func StartHTTPMock(ctx context.Context, s settings.Source, f Fetcher) error {
	rt, err := newHTTPRuntime(ctx, s, &MockingFetcher{Fetcher: f}, true)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartLambda runs the target function as a native lambda. Each invocation
// gets the configured logger and stat client in its context.
func StartLambda(ctx context.Context, s settings.Source, f Fetcher, target string) error {
	if target == "" {
		return fmt.Errorf("a target function is required in %s mode", BuildModeLambda)
	}
	tools, err := newLambdaTools(ctx, s)
	if err != nil {
		return err
	}
	defer func() { _ = tools.Close() }()
	fetcher := &loggingFetcher{
		Logger:  tools.Logger,
		Fetcher: &statFetcher{Stat: tools.Stat, Fetcher: f},
	}
	fn, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return err
	}
	LambdaStartFn(fn)
	return nil
}

// StartLambdaMock runs a mocked version of the target function as a native
// lambda.
func StartLambdaMock(ctx context.Context, s settings.Source, f Fetcher, target string) error {
	return StartLambda(ctx, s, &MockingFetcher{Fetcher: f}, target)
}
