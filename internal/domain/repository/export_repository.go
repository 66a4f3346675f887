package repository

import (
	"github.com/diillson/cnc-quote-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportQuotesToCSV(docs []entity.QuoteDocument, filename string, outputDir string) (string, error)
	ExportQuotesToJSON(docs []entity.QuoteDocument, filename string, outputDir string) (string, error)
	ExportQuotesToPDF(docs []entity.QuoteDocument, filename string, outputDir string) (string, error)
}
