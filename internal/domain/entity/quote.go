package entity

import "time"

// Quote é o resultado do estimador de custos.
type Quote struct {
	MachiningTimeMinutes float64 `json:"machining_time_minutes"`
	MaterialCost         float64 `json:"material_cost"`
	LaborCost            float64 `json:"labor_cost"`
	TotalCost            float64 `json:"total_cost"`
}

// Company holds the issuer block printed on quotation documents.
type Company struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Address string `json:"address" yaml:"address" toml:"address"`
	City    string `json:"city" yaml:"city" toml:"city"`
	Phone   string `json:"phone" yaml:"phone" toml:"phone"`
	Email   string `json:"email" yaml:"email" toml:"email"`
	Website string `json:"website" yaml:"website" toml:"website"`
}

// QuoteDocument contains everything a rendered quotation needs for one drawing.
type QuoteDocument struct {
	Number      string          `json:"quote_number"`
	IssuedAt    time.Time       `json:"issued_at"`
	ValidDays   int             `json:"valid_days"`
	Drawing     string          `json:"drawing"`
	Material    MaterialProfile `json:"material"`
	ThicknessMM float64         `json:"thickness_mm"`
	Geometry    GeometrySummary `json:"geometry"`
	Quote       Quote           `json:"quote"`
	Company     Company         `json:"company"`
	Terms       []string        `json:"terms,omitempty"`
}

// QuoteResult is the outcome of quoting a single drawing in a batch.
type QuoteResult struct {
	Drawing  string         `json:"drawing"`
	Document *QuoteDocument `json:"document,omitempty"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Err      error          `json:"-"`
}
