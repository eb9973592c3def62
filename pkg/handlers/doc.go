// Package handlers is a container for the functions hosted by the runtime.
// Note that these are lambda style handlers that consume and produce API
// Gateway proxy events rather than http.Handler instances. The runtime takes
// care of translating HTTP traffic into those events.
package handlers
