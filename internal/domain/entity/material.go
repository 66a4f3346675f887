package entity

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaterialProfile contains the machining rates for one material.
type MaterialProfile struct {
	Key                string  `json:"key"`
	Name               string  `json:"name"`
	FeedRateMMPerMin   float64 `json:"feed_rate"`
	MaterialCostPerCm3 float64 `json:"material_cost_per_cm3"`
	MachineHourlyRate  float64 `json:"hourly_rate"`
	// Known is false when one or more rates came from the fallback values.
	Known bool `json:"known"`
}

// MaterialRates is a partial set of rates. Nil fields are not defined for the material.
type MaterialRates struct {
	FeedRateMMPerMin   *float64
	MaterialCostPerCm3 *float64
	MachineHourlyRate  *float64
}

// RateTable é a tabela de taxas por material, imutável após a construção.
// Cada taxa é resolvida de forma independente: uma taxa ausente para o material usa o valor de fallback.
type RateTable struct {
	feedRates     map[string]float64
	materialCosts map[string]float64
	hourlyRates   map[string]float64
	fallback      MaterialProfile
}

// NewRateTable builds a rate table from per-material rates and the per-field fallback values.
// Keys are matched case-insensitively.
func NewRateTable(rates map[string]MaterialRates, fallback MaterialProfile) *RateTable {
	t := &RateTable{
		feedRates:     make(map[string]float64, len(rates)),
		materialCosts: make(map[string]float64, len(rates)),
		hourlyRates:   make(map[string]float64, len(rates)),
		fallback:      fallback,
	}
	for key, r := range rates {
		k := NormalizeMaterialKey(key)
		if r.FeedRateMMPerMin != nil {
			t.feedRates[k] = *r.FeedRateMMPerMin
		}
		if r.MaterialCostPerCm3 != nil {
			t.materialCosts[k] = *r.MaterialCostPerCm3
		}
		if r.MachineHourlyRate != nil {
			t.hourlyRates[k] = *r.MachineHourlyRate
		}
	}
	return t
}

// Lookup resolve o perfil de um material. Nunca falha: taxas desconhecidas usam o fallback.
func (t *RateTable) Lookup(material string) MaterialProfile {
	key := NormalizeMaterialKey(material)

	feed, okFeed := t.feedRates[key]
	if !okFeed {
		feed = t.fallback.FeedRateMMPerMin
	}
	cost, okCost := t.materialCosts[key]
	if !okCost {
		cost = t.fallback.MaterialCostPerCm3
	}
	hourly, okHourly := t.hourlyRates[key]
	if !okHourly {
		hourly = t.fallback.MachineHourlyRate
	}

	return MaterialProfile{
		Key:                key,
		Name:               DisplayName(key),
		FeedRateMMPerMin:   feed,
		MaterialCostPerCm3: cost,
		MachineHourlyRate:  hourly,
		Known:              okFeed && okCost && okHourly,
	}
}

// Fallback returns the values used for unknown materials.
func (t *RateTable) Fallback() MaterialProfile {
	return t.fallback
}

// Materials lists every material with at least one defined rate, sorted by key.
func (t *RateTable) Materials() []MaterialProfile {
	seen := make(map[string]struct{})
	for k := range t.feedRates {
		seen[k] = struct{}{}
	}
	for k := range t.materialCosts {
		seen[k] = struct{}{}
	}
	for k := range t.hourlyRates {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	profiles := make([]MaterialProfile, 0, len(keys))
	for _, k := range keys {
		profiles = append(profiles, t.Lookup(k))
	}
	return profiles
}

// NormalizeMaterialKey lower-cases and trims a material name.
func NormalizeMaterialKey(material string) string {
	return strings.ToLower(strings.TrimSpace(material))
}

// DisplayName capitaliza o nome do material para exibição.
func DisplayName(material string) string {
	return cases.Title(language.English).String(NormalizeMaterialKey(material))
}
