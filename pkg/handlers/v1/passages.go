package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/coveo-labs/passageproxy/pkg/domain"
	"github.com/tidwall/gjson"
)

const (
	queryParameter = "query"

	statSuccess     = "passages.success"
	statRejected    = "passages.rejected"
	statUnavailable = "passages.unavailable"
)

// PassagesErrors are the failures the passages function documents. They are
// registered with the function so that mock builds can simulate them.
var PassagesErrors = []error{
	domain.UpstreamRejectedError{StatusCode: http.StatusServiceUnavailable, StatusText: http.StatusText(http.StatusServiceUnavailable)},
	domain.UpstreamUnreachableError{},
	domain.MalformedResponseError{},
}

// Passages relays a search query to the passage retrieval API.
//
// A success is answered with a 200 and a JSON body of the form
// {"results": {}, "items": <upstream response>}. An upstream rejection is
// answered with the upstream status code and its status text as a plain text
// body. An upstream that cannot be reached, or that answers with something
// other than JSON, is answered with a plain text 502.
type Passages struct {
	LogFn     domain.LogFn
	StatFn    domain.StatFn
	Retriever domain.PassageRetriever
}

// Handle processes a single gateway request.
func (h *Passages) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := h.LogFn(ctx).Copy()
	logger.SetField("request_id", requestID(ctx, request))
	stat := h.StatFn(ctx)

	items, err := h.Retriever.RetrievePassages(ctx, queryFromRequest(request))
	var rejected domain.UpstreamRejectedError
	var unreachable domain.UpstreamUnreachableError
	var malformed domain.MalformedResponseError
	switch {
	case err == nil:
	case errors.As(err, &rejected):
		logger.Error(upstreamRejected{StatusCode: rejected.StatusCode, StatusText: rejected.StatusText})
		stat.Count(statRejected, 1, fmt.Sprintf("status:%d", rejected.StatusCode))
		return textResponse(rejected.StatusCode, rejected.StatusText), nil
	case errors.As(err, &unreachable), errors.As(err, &malformed):
		logger.Error(upstreamUnavailable{Reason: err.Error()})
		stat.Count(statUnavailable, 1)
		return textResponse(http.StatusBadGateway, http.StatusText(http.StatusBadGateway)), nil
	default:
		logger.Error(retrievalFailed{Reason: err.Error()})
		return events.APIGatewayProxyResponse{}, err
	}

	logger.Debug(passagesRetrieved{
		Items:        string(items),
		PassageCount: gjson.GetBytes(items, "items.#").Int(),
	})
	body, err := json.Marshal(domain.PassageResults{Items: items})
	if err != nil {
		logger.Error(retrievalFailed{Reason: err.Error()})
		return events.APIGatewayProxyResponse{}, err
	}
	stat.Count(statSuccess, 1)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

// queryFromRequest returns nil when the parameter is absent so that the
// upstream payload can tell absent from empty.
func queryFromRequest(request events.APIGatewayProxyRequest) *string {
	if q, ok := request.QueryStringParameters[queryParameter]; ok {
		return &q
	}
	if qs, ok := request.MultiValueQueryStringParameters[queryParameter]; ok && len(qs) > 0 {
		q := qs[0]
		return &q
	}
	return nil
}

func requestID(ctx context.Context, request events.APIGatewayProxyRequest) string {
	if request.RequestContext.RequestID != "" {
		return request.RequestContext.RequestID
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}

func textResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       body,
	}
}
