package passageproxy

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

const (
	gatewayResource = "/api/{functionName}"
	requestIDHeader = "X-Request-Id"
)

// Gateway exposes functions the way an API Gateway proxy integration does.
// Each HTTP request becomes an events.APIGatewayProxyRequest, the named
// function is invoked with it, and the events.APIGatewayProxyResponse it
// returns is written back as the HTTP response.
//
// Fetch and invocation failures are rendered like the Invoke API renders
// them.
type Gateway struct {
	LogFn      LogFn
	StatFn     StatFn
	URLParamFn URLParamFn
	Fetcher    Fetcher
}

func (h *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fnName := h.URLParamFn(ctx, "functionName")
	fn, err := h.Fetcher.Fetch(ctx, fnName)
	if err != nil {
		writeError(w, err)
		return
	}
	event, err := gatewayRequest(r, fnName)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		writeError(w, err)
		return
	}
	rb, err := fn.Invoke(ctx, payload)
	h.StatFn(ctx).Count("function.invoke", 1, "function:"+fnName, fmt.Sprintf("status:%d", statusFromError(err)))
	if err != nil {
		h.LogFn(ctx).Error(invocationFailed{Function: fnName, Reason: err.Error()})
		writeError(w, err)
		return
	}
	var resp events.APIGatewayProxyResponse
	if err := json.Unmarshal(rb, &resp); err != nil {
		h.LogFn(ctx).Error(invalidGatewayResponse{Function: fnName, Reason: err.Error()})
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(responseFromError(err))
		return
	}
	if err := writeGatewayResponse(w, resp); err != nil {
		h.LogFn(ctx).Error(invalidGatewayResponse{Function: fnName, Reason: err.Error()})
	}
}

func gatewayRequest(r *http.Request, fnName string) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	event := events.APIGatewayProxyRequest{
		Resource:                        gatewayResource,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         make(map[string]string, len(r.Header)),
		MultiValueHeaders:               make(map[string][]string, len(r.Header)),
		QueryStringParameters:           make(map[string]string),
		MultiValueQueryStringParameters: make(map[string][]string),
		PathParameters:                  map[string]string{"functionName": fnName},
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:    requestID,
			ResourcePath: gatewayResource,
			Path:         r.URL.Path,
			HTTPMethod:   r.Method,
		},
	}
	for name, values := range r.Header {
		event.Headers[name] = values[0]
		event.MultiValueHeaders[name] = values
	}
	for name, values := range r.URL.Query() {
		event.QueryStringParameters[name] = values[0]
		event.MultiValueQueryStringParameters[name] = values
	}
	if utf8.Valid(body) {
		event.Body = string(body)
	} else {
		event.Body = base64.StdEncoding.EncodeToString(body)
		event.IsBase64Encoded = true
	}
	return event, nil
}

func writeGatewayResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) error {
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			return err
		}
		body = decoded
	}
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	for name, values := range resp.MultiValueHeaders {
		w.Header().Del(name)
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}
