package types

import "github.com/diillson/cnc-quote-go/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Material       string           `json:"material" yaml:"material" toml:"material"`
	Thickness      float64          `json:"thickness" yaml:"thickness" toml:"thickness"`
	ReportName     string           `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string         `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string           `json:"dir" yaml:"dir" toml:"dir"`
	Strict         bool             `json:"strict" yaml:"strict" toml:"strict"`
	Concurrency    int              `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	AWSProfile     string           `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	Upload         string           `json:"upload" yaml:"upload" toml:"upload"`
	QuoteValidDays int              `json:"quote_valid_days" yaml:"quote_valid_days" toml:"quote_valid_days"`
	Company        *entity.Company  `json:"company" yaml:"company" toml:"company"`
	Materials      []MaterialConfig `json:"materials" yaml:"materials" toml:"materials"`
}

// MaterialConfig overrides or adds rates for one material. Omitted rates keep the built-in value.
type MaterialConfig struct {
	Name               string   `json:"name" yaml:"name" toml:"name"`
	FeedRate           *float64 `json:"feed_rate" yaml:"feed_rate" toml:"feed_rate"`
	MaterialCostPerCm3 *float64 `json:"material_cost_per_cm3" yaml:"material_cost_per_cm3" toml:"material_cost_per_cm3"`
	HourlyRate         *float64 `json:"hourly_rate" yaml:"hourly_rate" toml:"hourly_rate"`
}
