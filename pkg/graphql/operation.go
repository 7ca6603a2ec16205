package graphql

import "context"

// Operation is one named GraphQL operation: the name the service knows it
// by, the opaque query or mutation text, and the variable mapping. Variables
// travel to the wire verbatim, without renaming or reordering of keys.
type Operation struct {
	Name      string
	Document  string
	Variables map[string]any
}

// Executor dispatches one operation and returns the decoded data payload.
// Implementations must be safe for concurrent use.
type Executor interface {
	Execute(ctx context.Context, op Operation) (map[string]any, error)
}

// request is the wire shape the service expects.
type request struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

// response is the wire shape the service returns.
type response struct {
	Data   map[string]any  `json:"data"`
	Errors []responseError `json:"errors"`
}

type responseError struct {
	Message string `json:"message"`
}
