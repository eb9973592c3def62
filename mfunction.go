package passageproxy

import (
	"context"
	"reflect"
)

// MockingFetcher wraps another Fetcher and answers with stand-ins that never
// call the real function. A stand-in for the passages function therefore
// never reaches the retrieval API; it returns a zero
// events.APIGatewayProxyResponse, which the gateway route writes as an empty
// 200. The registered errors are carried over so they can still be
// simulated.
type MockingFetcher struct {
	Fetcher Fetcher
}

// Fetch resolves name with the wrapped Fetcher and returns its stand-in.
func (f *MockingFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	fn, err := f.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return mockFunction(fn), nil
}

// mockFunction returns the zero value for every output, so a trailing error
// is always nil.
func mockFunction(f Function) Function {
	t := reflect.TypeOf(f.Source())
	results := make([]reflect.Value, t.NumOut())
	for i := range results {
		results[i] = reflect.Zero(t.Out(i))
	}
	stub := reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
		return results
	})
	return NewFunctionWithErrors(stub.Interface(), f.Errors()...)
}
