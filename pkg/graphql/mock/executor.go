package graphqlmock

import (
	"context"
	"sync"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

// Executor is an in-memory graphql.Executor that records every dispatched
// operation verbatim and replays results scripted per operation name.
type Executor struct {
	mu    sync.Mutex
	Calls []graphql.Operation

	results map[string]map[string]any
	errs    map[string]error
}

func NewExecutor() *Executor {
	return &Executor{
		results: make(map[string]map[string]any),
		errs:    make(map[string]error),
	}
}

// ReturnFor scripts the data payload returned for an operation name.
func (e *Executor) ReturnFor(opName string, result map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results[opName] = result
}

// FailWith scripts the error returned for an operation name.
func (e *Executor) FailWith(opName string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs[opName] = err
}

func (e *Executor) Execute(ctx context.Context, op graphql.Operation) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Calls = append(e.Calls, op)

	if err := e.errs[op.Name]; err != nil {
		return nil, err
	}
	if result, ok := e.results[op.Name]; ok {
		return result, nil
	}
	return map[string]any{}, nil
}

// LastCall returns the most recently dispatched operation.
func (e *Executor) LastCall() (graphql.Operation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.Calls) == 0 {
		return graphql.Operation{}, false
	}
	return e.Calls[len(e.Calls)-1], true
}

// CallCount returns how many operations have been dispatched.
func (e *Executor) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Calls)
}
