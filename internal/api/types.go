// Package api defines the wire types and request helpers shared by every HTTP handler.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Pagination holds the skip/limit window of a list request.
type Pagination struct {
	Skip  int
	Limit int
}
