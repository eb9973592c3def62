// Package retrieval contains the client for the passage retrieval API of the
// upstream search provider and the settings component used to build it.
package retrieval
