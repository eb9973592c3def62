package passageproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	invocationTypeHeader          = "X-Amz-Invocation-Type"
	invocationTypeRequestResponse = "RequestResponse"
	invocationTypeEvent           = "Event"
	invocationTypeDryRun          = "DryRun"
	invocationTypeError           = "Error"
	invocationVersionHeader       = "X-Amz-Executed-Version"
	invocationErrorTypeHeader     = "X-Error-Type"
)

// bgContext is used to detach the *http.Request context from the http.Handler
// lifecycle. Typically, the request context is canceled when the hander returns.
// This is problematic when using the request context to share request scoped
// elements, such as the logger or stat client, with background tasks that will
// execute after the handler returns. This resolves that issue by keeping a
// reference to the request context and using it to lookup values but replacing
// all other context.Context methods with the context.Background() implementation.
type bgContext struct {
	context.Context
	Values context.Context
}

func (c *bgContext) Value(key interface{}) interface{} {
	return c.Values.Value(key)
}

// Invoke implements the API of the same name from the AWS Lambda API.
// https://docs.aws.amazon.com/lambda/latest/dg/API_Invoke.html
//
// Differences from AWS:
//
//   - The "Tail" option for the LogType header does not cause the
//     response to include partial logs.
//
//   - The "Qualifier" parameter is ignored and the reported execution
//     version is always "latest".
//
//   - An additional "Error" invocation type is accepted in mock mode. It
//     returns the documented function error whose type name matches the
//     X-Error-Type header without running the function.
type Invoke struct {
	LogFn      LogFn
	StatFn     StatFn
	URLParamFn URLParamFn
	Fetcher    Fetcher
	MockMode   bool
}

func (h *Invoke) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fnName := h.URLParamFn(ctx, "functionName")
	fn, errFn := h.Fetcher.Fetch(ctx, fnName)
	if errFn != nil {
		writeError(w, errFn)
		return
	}
	fnType := r.Header.Get(invocationTypeHeader)
	if fnType == "" {
		fnType = invocationTypeRequestResponse // This is the default value in AWS.
	}
	b, errRead := io.ReadAll(r.Body)
	if errRead != nil {
		w.WriteHeader(http.StatusBadRequest) // Matches JSON parsing errors for the body
		_ = json.NewEncoder(w).Encode(responseFromError(errRead))
		return
	}
	w.Header().Set(invocationVersionHeader, "latest")
	switch fnType {
	case invocationTypeDryRun:
		w.WriteHeader(http.StatusNoContent)
	case invocationTypeEvent:
		bg := &bgContext{Context: context.Background(), Values: ctx}
		logger := h.LogFn(ctx)
		go func() {
			if _, err := fn.Invoke(bg, b); err != nil {
				logger.Error(backgroundInvocationFailed{Function: fnName, Reason: err.Error()})
			}
		}()
		w.WriteHeader(http.StatusAccepted)
	case invocationTypeRequestResponse:
		rb, errInvoke := fn.Invoke(ctx, b)
		h.StatFn(ctx).Count("function.invoke", 1, "function:"+fnName, fmt.Sprintf("status:%d", statusFromError(errInvoke)))
		if errInvoke != nil {
			h.LogFn(ctx).Error(invocationFailed{Function: fnName, Reason: errInvoke.Error()})
			writeError(w, errInvoke)
			return
		}
		w.WriteHeader(http.StatusOK)
		if len(rb) > 0 {
			_, _ = w.Write(rb)
		}
	case invocationTypeError:
		h.simulateError(w, fn, r.Header.Get(invocationErrorTypeHeader))
	default:
		writeInvalidParameter(w, fmt.Sprintf("InvocationType %s not valid", fnType))
	}
}

func (h *Invoke) simulateError(w http.ResponseWriter, fn Function, errName string) {
	if !h.MockMode {
		writeInvalidParameter(w, "InvocationType Error is only valid in mock mode")
		return
	}
	for _, err := range fn.Errors() {
		if errorTypeName(err) == errName {
			writeError(w, err)
			return
		}
	}
	writeError(w, NotFoundError{ID: errName})
}

func writeInvalidParameter(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusBadRequest) // Matches the InvalidParameterValueException code
	_ = json.NewEncoder(w).Encode(lambdaError{
		Message:    msg,
		Type:       "InvalidParameterValueException",
		StackTrace: errResponseStackTrace,
	})
}
