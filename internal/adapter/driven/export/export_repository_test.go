package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestRepository() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time { return fixedNow }}
}

func sampleDocs() []entity.QuoteDocument {
	return []entity.QuoteDocument{
		{
			Number:    "0b6f2c1e-5d1a-4f7e-9a55-3c2d1e0f9a88",
			IssuedAt:  fixedNow,
			ValidDays: 30,
			Drawing:   "bracket.dxf",
			Material: entity.MaterialProfile{
				Key: "steel", Name: "Steel", FeedRateMMPerMin: 300, MaterialCostPerCm3: 0.00008, MachineHourlyRate: 45, Known: true,
			},
			ThicknessMM: 3,
			Geometry: entity.GeometrySummary{
				TotalLength: 522.746, LineCount: 4, ArcCount: 1, CircleCount: 1, PolylineCount: 1,
				Entities: []entity.MeasuredEntity{
					{Kind: entity.KindCircle, Length: 94.2478, Geometry: entity.Circle{Center: entity.Point2D{X: 50, Y: 25}, Radius: 15}},
				},
			},
			Quote: entity.Quote{MachiningTimeMinutes: 26.091, MaterialCost: 0.000167, LaborCost: 19.568, TotalCost: 19.568},
			Company: entity.Company{
				Name: "Precision CNC Solutions", Address: "123 Industrial Way", Phone: "(555) 123-4567",
			},
			Terms: []string{"Payment terms: Net 30 days from invoice date", "Tolerances: ±0.1mm unless specified otherwise"},
		},
		{
			Number:      "5f0c9a2b-8e44-4d0b-a1c7-77d2c4b1e0aa",
			IssuedAt:    fixedNow,
			ValidDays:   30,
			Drawing:     "plate.dxf",
			Material:    entity.MaterialProfile{Key: "wood", Name: "Wood", FeedRateMMPerMin: 1200, MaterialCostPerCm3: 0.00002, MachineHourlyRate: 30},
			ThicknessMM: 18.5,
			Quote:       entity.Quote{MachiningTimeMinutes: 24, LaborCost: 12, TotalCost: 12},
		},
	}
}

func TestExportQuotesToCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestRepository().ExportQuotesToCSV(sampleDocs(), "quotes", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quotes_20260314_093000.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Quote Number", records[0][0])
	assert.Equal(t, "bracket.dxf", records[1][2])
	assert.Equal(t, "Steel", records[1][3])
	assert.Equal(t, "3", records[1][4])
	assert.Equal(t, "522.75", records[1][5])
	assert.Equal(t, "4", records[1][6])
	assert.Equal(t, "19.57", records[1][13])
	assert.Equal(t, "18.5", records[2][4])
}

func TestExportQuotesToJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestRepository().ExportQuotesToJSON(sampleDocs(), "quotes", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "bracket.dxf", decoded[0]["drawing"])

	geometry := decoded[0]["geometry"].(map[string]interface{})
	assert.Equal(t, 4.0, geometry["line_count"])
	entities := geometry["entities"].([]interface{})
	first := entities[0].(map[string]interface{})
	assert.Equal(t, "CIRCLE", first["type"])
	assert.Equal(t, 15.0, first["geometry"].(map[string]interface{})["radius"])
}

func TestExportQuotesToPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := newTestRepository().ExportQuotesToPDF(sampleDocs(), "quotes", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "3", formatFloat(3))
	assert.Equal(t, "2.5", formatFloat(2.5))
	assert.Equal(t, "$19.57", money(19.568))

	assert.Equal(t, []string{"Phone: 1", "Web: w"}, companyLines(entity.Company{Phone: "1", Website: "w"}))
	assert.Empty(t, companyLines(entity.Company{}))
}
