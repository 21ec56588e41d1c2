package mutator

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine entry points.
var (
	// ErrNilRoot is returned when the root unit is nil.
	ErrNilRoot = errors.New("nil root unit")

	// ErrEngineBusy is returned when an engine is asked to start a
	// traversal while another one is still running on it.
	ErrEngineBusy = errors.New("engine is already running a traversal")

	// ErrTraversalCancelled is returned when the context is done before or
	// during a traversal. A traversal cancelled midway leaves a partial
	// result that must be discarded.
	ErrTraversalCancelled = errors.New("traversal cancelled")
)

// UnknownNodeError is the panic value raised when a dispatch meets a node
// kind it does not know. It signals a bug in the engine or in a caller
// supplying its own node implementations, never bad input data.
type UnknownNodeError struct {
	// Kind is the slot being dispatched, such as "type reference".
	Kind string
	Node any
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("mutator: unknown %s node %T", e.Kind, e.Node)
}

func unknownNode(kind string, node any) {
	panic(&UnknownNodeError{Kind: kind, Node: node})
}
