package passageproxy

import (
	"github.com/aws/aws-lambda-go/lambda"
)

// LambdaFunction adapts a plain Go function, such as v1.Passages.Handle, to
// Function. The function value is retained so mock builds can synthesise a
// stand-in with the same signature.
type LambdaFunction struct {
	lambda.Handler
	source interface{}
	errors []error
}

// Source returns the function value the handler was built from.
func (f *LambdaFunction) Source() interface{} {
	return f.source
}

// Errors lists the failures registered with NewFunctionWithErrors. The
// http_mock build uses them to answer the Error invocation type.
func (f *LambdaFunction) Errors() []error {
	return f.errors
}

// NewFunctionWithErrors builds a Function from v and records the errors it
// is known to return. For the passages function these are the upstream
// errors in v1.PassagesErrors.
func NewFunctionWithErrors(v interface{}, errors ...error) Function {
	return &LambdaFunction{
		Handler: lambda.NewHandler(v),
		source:  v,
		errors:  errors,
	}
}

// NewFunction builds a Function from v without any registered errors.
func NewFunction(v interface{}) Function {
	return NewFunctionWithErrors(v)
}
