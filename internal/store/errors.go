package store

import "fmt"

// PersistenceError wraps a failure to open or write the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ImportError reports an import file that could not be read.
// The store is left unchanged.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ValidationError rejects a command text before it reaches storage.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid command: " + e.Reason
}
