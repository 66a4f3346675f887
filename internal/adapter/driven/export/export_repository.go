package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Funções de Exportação de Orçamentos ---

func (r *ExportRepositoryImpl) ExportQuotesToCSV(docs []entity.QuoteDocument, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{
		"Quote Number", "Date", "Drawing", "Material", "Thickness (mm)",
		"Total Cutting Length (mm)", "Lines", "Arcs", "Circles", "Polylines",
		"Machining Time (min)", "Material Cost", "Labor Cost", "Total Cost",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, d := range docs {
		record := []string{
			d.Number,
			d.IssuedAt.Format("2006-01-02"),
			d.Drawing,
			d.Material.Name,
			formatFloat(d.ThicknessMM),
			fmt.Sprintf("%.2f", d.Geometry.TotalLength),
			strconv.Itoa(d.Geometry.LineCount),
			strconv.Itoa(d.Geometry.ArcCount),
			strconv.Itoa(d.Geometry.CircleCount),
			strconv.Itoa(d.Geometry.PolylineCount),
			fmt.Sprintf("%.2f", d.Quote.MachiningTimeMinutes),
			fmt.Sprintf("%.6f", d.Quote.MaterialCost),
			fmt.Sprintf("%.2f", d.Quote.LaborCost),
			fmt.Sprintf("%.2f", d.Quote.TotalCost),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportQuotesToJSON(docs []entity.QuoteDocument, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(docs); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportQuotesToPDF gera uma página de cotação por desenho.
func (r *ExportRepositoryImpl) ExportQuotesToPDF(docs []entity.QuoteDocument, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	titleColor := [3]int{0, 0, 139}
	quoteTitleColor := [3]int{139, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	labelFillColor := [3]int{211, 211, 211}
	lineColor := [3]int{200, 200, 200}
	const contentWidth = 170.0

	drawSectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(titleColor[0], titleColor[1], titleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(8)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+contentWidth, pdf.GetY())
		pdf.Ln(3)
	}

	for i, d := range docs {
		pdf.AddPage()

		// Cabeçalho da empresa
		pdf.SetFont("Arial", "B", 22)
		pdf.SetTextColor(titleColor[0], titleColor[1], titleColor[2])
		pdf.CellFormat(0, 12, tr(d.Company.Name), "", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, line := range companyLines(d.Company) {
			pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
		}
		pdf.Ln(6)

		pdf.SetFont("Arial", "B", 16)
		pdf.SetTextColor(quoteTitleColor[0], quoteTitleColor[1], quoteTitleColor[2])
		pdf.CellFormat(0, 10, "CNC MACHINING QUOTATION", "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Quote No. %s", d.Number)), "", 1, "C", false, 0, "")
		pdf.Ln(6)

		// Detalhes do projeto
		drawSectionTitle("Project Details")
		details := [][2]string{
			{"Date:", d.IssuedAt.Format("January 02, 2006")},
			{"Drawing:", d.Drawing},
			{"Material:", d.Material.Name},
			{"Thickness:", fmt.Sprintf("%s mm", formatFloat(d.ThicknessMM))},
			{"Total Cutting Length:", fmt.Sprintf("%.2f mm", d.Geometry.TotalLength)},
			{"Line Entities:", strconv.Itoa(d.Geometry.LineCount)},
			{"Arc Entities:", strconv.Itoa(d.Geometry.ArcCount)},
			{"Circle Entities:", strconv.Itoa(d.Geometry.CircleCount)},
			{"Polyline Entities:", strconv.Itoa(d.Geometry.PolylineCount)},
		}
		pdf.SetFont("Arial", "", 10)
		pdf.SetDrawColor(0, 0, 0)
		for _, row := range details {
			pdf.SetFillColor(labelFillColor[0], labelFillColor[1], labelFillColor[2])
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(55, 7, tr(row[0]), "1", 0, "L", true, 0, "")
			pdf.CellFormat(80, 7, tr(row[1]), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(6)

		// Custos
		drawSectionTitle("Cost Breakdown")
		colWidths := []float64{40, 90, 40}
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(titleColor[0], titleColor[1], titleColor[2])
		pdf.SetTextColor(245, 245, 245)
		for j, h := range []string{"Item", "Details", "Amount"} {
			align := "L"
			if j == 2 {
				align = "R"
			}
			pdf.CellFormat(colWidths[j], 7, h, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)

		rows := [][3]string{
			{"Material Cost", fmt.Sprintf("%s (%smm)", d.Material.Name, formatFloat(d.ThicknessMM)), money(d.Quote.MaterialCost)},
			{"Labor Cost", fmt.Sprintf("%.1f minutes @ %s/hour", d.Quote.MachiningTimeMinutes, money(d.Material.MachineHourlyRate)), money(d.Quote.LaborCost)},
		}
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, row := range rows {
			pdf.CellFormat(colWidths[0], 7, tr(row[0]), "1", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[1], 7, tr(row[1]), "1", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[2], 7, tr(row[2]), "1", 1, "R", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(labelFillColor[0], labelFillColor[1], labelFillColor[2])
		pdf.CellFormat(colWidths[0]+colWidths[1], 8, "TOTAL", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colWidths[2], 8, money(d.Quote.TotalCost), "1", 1, "R", true, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Estimated Machining Time: %.1f minutes", d.Quote.MachiningTimeMinutes), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Feed Rate: %s mm/min", formatFloat(d.Material.FeedRateMMPerMin)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Quote Valid For: %d days (until %s)", d.ValidDays, d.IssuedAt.AddDate(0, 0, d.ValidDays).Format("2006-01-02")), "", 1, "L", false, 0, "")
		pdf.Ln(6)

		if len(d.Terms) > 0 {
			drawSectionTitle("Terms & Conditions")
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(0, 0, 0)
			for _, term := range d.Terms {
				pdf.MultiCell(contentWidth, 5, tr("• "+term), "", "L", false)
			}
		}

		// Rodapé
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by CNC Quote (Go) | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func companyLines(c entity.Company) []string {
	var lines []string
	if c.Address != "" {
		lines = append(lines, c.Address)
	}
	if c.City != "" {
		lines = append(lines, c.City)
	}
	if c.Phone != "" {
		lines = append(lines, "Phone: "+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "Email: "+c.Email)
	}
	if c.Website != "" {
		lines = append(lines, "Web: "+c.Website)
	}
	return lines
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatFloat imprime 3 como "3" e 2.5 como "2.5".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
