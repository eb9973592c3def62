package domain

import (
	"context"
	"encoding/json"
)

// Localization selects the language and timezone the upstream search
// provider uses when ranking and rendering passages.
type Localization struct {
	Locale   string `json:"locale"`
	Timezone string `json:"timezone"`
}

// PassageQuery is the request body sent to the passage retrieval API.
//
// Query is a pointer so that an absent inbound parameter stays absent
// upstream while an empty one is still sent as an empty string.
type PassageQuery struct {
	Localization Localization `json:"localization"`
	Query        *string      `json:"query,omitempty"`
	SearchHub    string       `json:"searchHub"`
	MaxPassages  int          `json:"maxPassages"`
}

// PassageResults is the success body returned to callers. Results is
// always empty and Items carries the upstream response unchanged.
type PassageResults struct {
	Results struct{}        `json:"results"`
	Items   json.RawMessage `json:"items"`
}

// PassageRetriever issues a single passage retrieval call for the given
// query. Implementations return the raw upstream JSON on success and one of
// UpstreamRejectedError, UpstreamUnreachableError, or MalformedResponseError
// on failure.
type PassageRetriever interface {
	RetrievePassages(ctx context.Context, query *string) (json.RawMessage, error)
}
