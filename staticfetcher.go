package passageproxy

import (
	"context"
)

// StaticFetcher resolves functions from a map that is fixed at build time.
// Every function runs inside this process and shares its resources, so there
// is nothing to orchestrate and nothing to update in place. Adding, removing,
// or changing a function means building and deploying a new binary.
type StaticFetcher struct {
	// Functions maps the public function name, as used in URLs, to the
	// function itself.
	Functions map[string]Function
}

// Fetch resolves the name using the internal mapping.
func (f *StaticFetcher) Fetch(_ context.Context, name string) (Function, error) {
	fn, ok := f.Functions[name]
	if !ok {
		return nil, NotFoundError{ID: name}
	}
	return fn, nil
}
