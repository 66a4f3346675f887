package repository

import (
	"context"
	"io"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
)

// DrawingRepository decodes a drawing container into its entity list.
type DrawingRepository interface {
	DecodeEntities(ctx context.Context, r io.Reader) ([]entity.Entity, error)
}
