package passageproxy

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/coveo-labs/passageproxy/pkg/domain"
)

const (
	invocationErrorHeader        = "X-Amz-Function-Error"
	invocationErrorTypeHandled   = "Handled"
	invocationErrorTypeUnhandled = "Unhandled"
)

// lambdaError implements the common Lambda error response
// JSON object that is included as the response body for
// exception cases.
type lambdaError struct {
	Message    string   `json:"errorMessage"`
	Type       string   `json:"errorType"`
	StackTrace []string `json:"stackTrace"`
}

// errResponseStackTrace is used to populate the stackTrace attribute of a Lambda
// error. We don't, currently, extract an actual stack trace so we reuse this
// element each time to avoid recreating an empty slice each time.
var errResponseStackTrace = []string{}

func responseFromError(err error) lambdaError {
	return lambdaError{
		Message:    err.Error(),
		Type:       errorTypeName(err),
		StackTrace: errResponseStackTrace,
	}
}

func errorTypeName(err error) string {
	errType := reflect.TypeOf(err)
	if errType.Kind() == reflect.Ptr {
		return errType.Elem().Name()
	}
	return errType.Name()
}

func statusFromError(err error) int {
	switch e := err.(type) {
	case nil:
		return http.StatusOK
	case *json.InvalidUTF8Error: // nolint
		return http.StatusBadRequest
	case *json.InvalidUnmarshalError:
		return http.StatusBadRequest
	case *json.UnmarshalFieldError: // nolint
		return http.StatusBadRequest
	case *json.UnmarshalTypeError:
		return http.StatusBadRequest
	case *json.SyntaxError:
		return http.StatusBadRequest
	case NotFoundError, *NotFoundError:
		return http.StatusNotFound
	case domain.UpstreamRejectedError:
		if e.StatusCode < http.StatusBadRequest || e.StatusCode > 599 {
			return http.StatusBadGateway
		}
		return e.StatusCode
	case domain.UpstreamUnreachableError, domain.MalformedResponseError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a Lambda error body with a status derived from
// the error type.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	switch {
	case status > 499:
		w.Header().Set(invocationErrorHeader, invocationErrorTypeUnhandled)
	case status > 299:
		w.Header().Set(invocationErrorHeader, invocationErrorTypeHandled)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(responseFromError(err))
}
