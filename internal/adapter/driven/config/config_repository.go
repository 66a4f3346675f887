package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/cnc-quote-go/internal/domain/repository"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig rejeita taxas de material que tornariam o orçamento sem sentido.
func validateConfig(cfg *types.Config) error {
	for i, m := range cfg.Materials {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("materials[%d]: name is required", i)
		}
		if m.FeedRate != nil && *m.FeedRate <= 0 {
			return fmt.Errorf("material %q: feed_rate must be greater than zero", m.Name)
		}
		if m.MaterialCostPerCm3 != nil && *m.MaterialCostPerCm3 < 0 {
			return fmt.Errorf("material %q: material_cost_per_cm3 must not be negative", m.Name)
		}
		if m.HourlyRate != nil && *m.HourlyRate < 0 {
			return fmt.Errorf("material %q: hourly_rate must not be negative", m.Name)
		}
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	if cfg.QuoteValidDays < 0 {
		return fmt.Errorf("quote_valid_days must not be negative")
	}
	return nil
}
