package passageproxy

import (
	"context"

	"github.com/asecurityteam/logevent/v2"
	"github.com/rs/xstats"
)

// loggingFunction places a copy of the logger in the invocation context.
type loggingFunction struct {
	Function
	Logger Logger
}

func (f *loggingFunction) Invoke(ctx context.Context, b []byte) ([]byte, error) {
	ctx = logevent.NewContext(ctx, f.Logger.Copy())
	return f.Function.Invoke(ctx, b)
}

// loggingFetcher wraps every fetched function with a loggingFunction.
type loggingFetcher struct {
	Logger  Logger
	Fetcher Fetcher
}

func (f *loggingFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	fn, err := f.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return &loggingFunction{Logger: f.Logger, Function: fn}, nil
}

// statFunction places the stat client in the invocation context.
type statFunction struct {
	Function
	Stat Stat
}

func (f *statFunction) Invoke(ctx context.Context, b []byte) ([]byte, error) {
	ctx = xstats.NewContext(ctx, f.Stat)
	return f.Function.Invoke(ctx, b)
}

// statFetcher wraps every fetched function with a statFunction.
type statFetcher struct {
	Stat    Stat
	Fetcher Fetcher
}

func (f *statFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	fn, err := f.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return &statFunction{Stat: f.Stat, Function: fn}, nil
}
