package contentgen

import "fmt"

// GenerationError indicates the model was unreachable, timed out, or
// returned unusable output while picking a theme or generating a batch.
type GenerationError struct {
	Stage string // "theme-pick" or "batch-gen"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ShapeMismatchError indicates the model returned structurally valid JSON
// with the wrong shape: not exactly the requested number of problems, or
// a problem without exactly six test cases. Nothing is padded or truncated;
// the batch is rejected whole.
type ShapeMismatchError struct {
	Detail string
}

func (e *ShapeMismatchError) Error() string {
	return "unexpected generation shape: " + e.Detail
}

// PersistenceError indicates the store write failed. It is surfaced
// distinctly from generation failures because generated content may exist
// by the time the write runs.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist batch: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
