// Package v1 contains the functions served by version 1.X.X of the passage
// proxy. Functions here are shaped as API Gateway proxy handlers so that the
// same code runs as a native Lambda or behind the HTTP runtime.
package v1
