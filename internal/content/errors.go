package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olive-branch-content-api/internal/validation"
)

var (
	// ErrMalformedSource means a content file could not be parsed
	ErrMalformedSource = errors.New("malformed content source")

	// ErrInvalidSource means a content file parsed but failed schema validation
	ErrInvalidSource = errors.New("invalid content source")
)

// SourceError describes why a single content file (or array element) was skipped
type SourceError struct {
	File   string
	Kind   error // ErrMalformedSource or ErrInvalidSource
	Err    error
	Fields []validation.ValidationError
}

func (e *SourceError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Error())
		}
		return fmt.Sprintf("%s: %v: %s", e.File, e.Kind, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("%s: %v: %v", e.File, e.Kind, e.Err)
}

// Unwrap lets errors.Is match the sentinel kind as well as the cause
func (e *SourceError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func malformed(file string, err error) *SourceError {
	return &SourceError{File: file, Kind: ErrMalformedSource, Err: err}
}

func invalid(file string, fields []validation.ValidationError) *SourceError {
	return &SourceError{File: file, Kind: ErrInvalidSource, Fields: fields}
}
