package service

import (
	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
)

// Valores usados quando o material é desconhecido. A taxa horária de fallback (40.0)
// difere da taxa do aço (45.0) e é mantida assim para não alterar orçamentos existentes.
const (
	FallbackFeedRateMMPerMin   = 300.0
	FallbackMaterialCostPerCm3 = 0.00008
	FallbackMachineHourlyRate  = 40.0
)

// DefaultMaterial is used when no material is given.
const DefaultMaterial = "steel"

type builtinRates struct {
	feedRate   float64
	costPerCm3 float64
	hourlyRate float64
}

var builtinMaterials = map[string]builtinRates{
	"steel":    {feedRate: 300, costPerCm3: 0.00008, hourlyRate: 45.0},
	"aluminum": {feedRate: 600, costPerCm3: 0.00012, hourlyRate: 40.0},
	"plastic":  {feedRate: 800, costPerCm3: 0.00004, hourlyRate: 35.0},
	"wood":     {feedRate: 1200, costPerCm3: 0.00002, hourlyRate: 30.0},
	"brass":    {feedRate: 400, costPerCm3: 0.00015, hourlyRate: 42.0},
	"copper":   {feedRate: 350, costPerCm3: 0.00020, hourlyRate: 45.0},
}

// FallbackProfile returns the per-field values used for unknown materials.
func FallbackProfile() entity.MaterialProfile {
	return entity.MaterialProfile{
		FeedRateMMPerMin:   FallbackFeedRateMMPerMin,
		MaterialCostPerCm3: FallbackMaterialCostPerCm3,
		MachineHourlyRate:  FallbackMachineHourlyRate,
	}
}

// DefaultRateTable builds the built-in table of six materials.
func DefaultRateTable() *entity.RateTable {
	return NewRateTable(nil)
}

// NewRateTable constrói a tabela de taxas a partir dos materiais embutidos e das
// sobreposições do arquivo de configuração. Taxas omitidas mantêm o valor embutido.
func NewRateTable(overrides []types.MaterialConfig) *entity.RateTable {
	rates := make(map[string]entity.MaterialRates, len(builtinMaterials)+len(overrides))
	for key, b := range builtinMaterials {
		b := b
		rates[key] = entity.MaterialRates{
			FeedRateMMPerMin:   &b.feedRate,
			MaterialCostPerCm3: &b.costPerCm3,
			MachineHourlyRate:  &b.hourlyRate,
		}
	}

	for _, o := range overrides {
		key := entity.NormalizeMaterialKey(o.Name)
		if key == "" {
			continue
		}
		r := rates[key]
		if o.FeedRate != nil {
			r.FeedRateMMPerMin = o.FeedRate
		}
		if o.MaterialCostPerCm3 != nil {
			r.MaterialCostPerCm3 = o.MaterialCostPerCm3
		}
		if o.HourlyRate != nil {
			r.MachineHourlyRate = o.HourlyRate
		}
		rates[key] = r
	}

	return entity.NewRateTable(rates, FallbackProfile())
}
