package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoDrawings            = errors.New("no drawing files specified. Pass one or more DXF files or s3:// URIs")
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrInvalidStorageURI     = errors.New("invalid storage URI, expected s3://bucket/key")
)

// GeometryProcessingError indica que a lista de entidades de um desenho não pôde ser obtida.
type GeometryProcessingError struct {
	Source string
	Err    error
}

func (e *GeometryProcessingError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to process DXF file: %v", e.Err)
	}
	return fmt.Sprintf("failed to process DXF file %s: %v", e.Source, e.Err)
}

func (e *GeometryProcessingError) Unwrap() error {
	return e.Err
}

// ValidationError reports a quote input outside its physically meaningful range.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}
