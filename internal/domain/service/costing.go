package service

import (
	"github.com/diillson/cnc-quote-go/internal/domain/entity"
)

// Constantes fixas do modelo de tempo e custo.
const (
	SetupTimeMinutes      = 15.0
	ToolChangeTimeMinutes = 5.0
	TimeSafetyFactor      = 1.2
	KerfWidthMM           = 1.0

	mm3PerCm3      = 1000.0
	minutesPerHour = 60.0
)

// CostEstimator maps a cutting length, material and thickness to machining time and cost.
type CostEstimator struct {
	rates *entity.RateTable
}

// NewCostEstimator cria um estimador que usa a tabela de taxas informada.
func NewCostEstimator(rates *entity.RateTable) *CostEstimator {
	return &CostEstimator{rates: rates}
}

// Rates returns the rate table used by the estimator.
func (e *CostEstimator) Rates() *entity.RateTable {
	return e.rates
}

// MachiningTime returns the estimated machining minutes, including setup,
// tool change and the safety factor.
func (e *CostEstimator) MachiningTime(totalLengthMM float64, material string) float64 {
	profile := e.rates.Lookup(material)
	cutting := totalLengthMM / profile.FeedRateMMPerMin
	return (cutting + SetupTimeMinutes + ToolChangeTimeMinutes) * TimeSafetyFactor
}

// MaterialCost usa comprimento × (espessura + kerf) como volume aproximado em mm³.
func (e *CostEstimator) MaterialCost(totalLengthMM, thicknessMM float64, material string) float64 {
	profile := e.rates.Lookup(material)
	volumeCm3 := (totalLengthMM * (thicknessMM + KerfWidthMM)) / mm3PerCm3
	return volumeCm3 * profile.MaterialCostPerCm3
}

// LaborCost converts machining minutes into cost at the material's hourly rate.
func (e *CostEstimator) LaborCost(machiningMinutes float64, material string) float64 {
	profile := e.rates.Lookup(material)
	return (machiningMinutes / minutesPerHour) * profile.MachineHourlyRate
}

// Estimate computes the full quote. It never fails; inputs are not validated here.
func (e *CostEstimator) Estimate(totalLengthMM float64, material string, thicknessMM float64) entity.Quote {
	minutes := e.MachiningTime(totalLengthMM, material)
	materialCost := e.MaterialCost(totalLengthMM, thicknessMM, material)
	laborCost := e.LaborCost(minutes, material)

	return entity.Quote{
		MachiningTimeMinutes: minutes,
		MaterialCost:         materialCost,
		LaborCost:            laborCost,
		TotalCost:            materialCost + laborCost,
	}
}
