package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/domain/repository"
	"github.com/diillson/cnc-quote-go/internal/domain/service"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	defaultValidDays   = 30
)

var defaultCompany = entity.Company{
	Name:    "Precision CNC Solutions",
	Address: "123 Industrial Way, Manufacturing District",
	City:    "Tech City, TC 12345",
	Phone:   "(555) 123-4567",
	Email:   "info@precisioncnc.com",
	Website: "www.precisioncnc.com",
}

// QuoteSettings holds the effective settings after merging flags and the config file.
type QuoteSettings struct {
	Material    string
	Thickness   float64
	ReportName  string
	ReportTypes []string
	Dir         string
	Strict      bool
	Concurrency int
	AWSProfile  string
	Upload      string
	ValidDays   int
	Company     entity.Company
	Rates       *entity.RateTable
}

// QuoteUseCase handles drawing quotation.
type QuoteUseCase struct {
	drawingRepo repository.DrawingRepository
	storageRepo repository.StorageRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface

	now            func() time.Time
	newQuoteNumber func() string
}

// NewQuoteUseCase creates a new quote use case.
func NewQuoteUseCase(
	drawingRepo repository.DrawingRepository,
	storageRepo repository.StorageRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *QuoteUseCase {
	return &QuoteUseCase{
		drawingRepo:    drawingRepo,
		storageRepo:    storageRepo,
		exportRepo:     exportRepo,
		configRepo:     configRepo,
		console:        console,
		now:            time.Now,
		newQuoteNumber: func() string { return uuid.NewString() },
	}
}

// ResolveSettings mescla o arquivo de configuração com os argumentos da CLI.
// Flags definidas explicitamente têm precedência sobre o arquivo.
func (uc *QuoteUseCase) ResolveSettings(args *types.CLIArgs) (*QuoteSettings, error) {
	cfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	s := &QuoteSettings{
		Material:    pickString(args.IsSet("material"), args.Material, cfg.Material),
		Thickness:   args.Thickness,
		ReportName:  pickString(args.IsSet("report-name"), args.ReportName, cfg.ReportName),
		ReportTypes: append([]string(nil), args.ReportType...),
		Dir:         pickString(args.IsSet("dir"), args.Dir, cfg.Dir),
		Strict:      args.Strict,
		Concurrency: args.Concurrency,
		AWSProfile:  pickString(args.IsSet("aws-profile"), args.AWSProfile, cfg.AWSProfile),
		Upload:      pickString(args.IsSet("upload"), args.Upload, cfg.Upload),
		ValidDays:   cfg.QuoteValidDays,
		Company:     defaultCompany,
		Rates:       service.NewRateTable(cfg.Materials),
	}

	if !args.IsSet("thickness") && cfg.Thickness != 0 {
		s.Thickness = cfg.Thickness
	}
	if !args.IsSet("report-type") && len(cfg.ReportType) > 0 {
		s.ReportTypes = append([]string(nil), cfg.ReportType...)
	}
	if !args.IsSet("strict") && cfg.Strict {
		s.Strict = true
	}
	if !args.IsSet("concurrency") && cfg.Concurrency > 0 {
		s.Concurrency = cfg.Concurrency
	}
	if s.Concurrency <= 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.ValidDays <= 0 {
		s.ValidDays = defaultValidDays
	}
	if s.Material == "" {
		s.Material = service.DefaultMaterial
	}
	if cfg.Company != nil {
		s.Company = *cfg.Company
	}

	if s.Dir != "" {
		absDir, err := filepath.Abs(s.Dir)
		if err != nil {
			return nil, err
		}
		s.Dir = absDir
	}

	for i, rt := range s.ReportTypes {
		rt = strings.ToLower(strings.TrimSpace(rt))
		switch rt {
		case "pdf", "csv", "json":
			s.ReportTypes[i] = rt
		default:
			return nil, fmt.Errorf("%w: %q (expected pdf, csv or json)", types.ErrUnsupportedReportType, rt)
		}
	}

	return s, nil
}

// RunQuote executa a funcionalidade principal: orça cada desenho, exibe e exporta os resultados.
func (uc *QuoteUseCase) RunQuote(ctx context.Context, args *types.CLIArgs) error {
	if len(args.Drawings) == 0 {
		return types.ErrNoDrawings
	}

	settings, err := uc.ResolveSettings(args)
	if err != nil {
		return err
	}

	profile := settings.Rates.Lookup(settings.Material)
	if !profile.Known {
		uc.console.LogWarning("Material '%s' is not fully defined in the rate table; using fallback rates (feed %.0f mm/min, $%.5f/cm³, $%.2f/hour)",
			settings.Material, profile.FeedRateMMPerMin, profile.MaterialCostPerCm3, profile.MachineHourlyRate)
	}

	uc.console.LogInfo("Quoting %d drawing(s) in %s, %.2f mm...", len(args.Drawings), profile.Name, settings.Thickness)

	results := uc.QuoteDrawings(ctx, args.Drawings, settings)

	var docs []entity.QuoteDocument
	var errs []error
	for _, res := range results {
		for _, w := range res.Warnings {
			uc.console.LogWarning("%s: %s", res.Drawing, w)
		}
		if !res.Success {
			uc.console.LogError("Failed to quote %s: %s", res.Drawing, res.Error)
			errs = append(errs, res.Err)
			continue
		}
		docs = append(docs, *res.Document)
	}

	uc.console.Print(uc.createResultsTable(results).Render())
	for _, d := range docs {
		uc.console.DisplayLengthBars(fmt.Sprintf("Cutting Length by Entity: %s", d.Drawing), lengthShares(d.Geometry))
	}

	if len(docs) > 0 {
		uc.exportReports(ctx, docs, settings)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d drawing(s) could not be quoted: %w", len(errs), len(results), errors.Join(errs...))
	}
	return nil
}

// QuoteDrawings orça os desenhos em paralelo, preservando a ordem de entrada nos resultados.
func (uc *QuoteUseCase) QuoteDrawings(ctx context.Context, drawings []string, settings *QuoteSettings) []entity.QuoteResult {
	extractor := service.NewGeometryExtractor(uc.drawingRepo)
	estimator := service.NewCostEstimator(settings.Rates)

	results := make([]entity.QuoteResult, len(drawings))
	bar := uc.console.ProgressWithTotal(len(drawings))
	var barMu sync.Mutex

	var g errgroup.Group
	g.SetLimit(settings.Concurrency)

	for i, drawing := range drawings {
		i, drawing := i, drawing
		g.Go(func() error {
			start := time.Now()
			doc, warnings, err := uc.QuoteDrawing(ctx, drawing, settings, extractor, estimator)

			res := entity.QuoteResult{Drawing: drawing, Warnings: warnings}
			if err != nil {
				res.Error = err.Error()
				res.Err = err
			} else {
				res.Success = true
				res.Document = doc
			}
			results[i] = res

			zap.L().Debug("quoted drawing",
				zap.String("drawing", drawing),
				zap.Bool("success", res.Success),
				zap.Duration("elapsed", time.Since(start)))

			barMu.Lock()
			bar.Increment()
			barMu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	bar.Stop()

	return results
}

// QuoteDrawing processa um único desenho: leitura, extração de geometria, validação e estimativa.
func (uc *QuoteUseCase) QuoteDrawing(
	ctx context.Context,
	drawing string,
	settings *QuoteSettings,
	extractor *service.GeometryExtractor,
	estimator *service.CostEstimator,
) (*entity.QuoteDocument, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rc, err := uc.openDrawing(ctx, drawing, settings.AWSProfile)
	if err != nil {
		return nil, nil, &types.GeometryProcessingError{Source: drawing, Err: err}
	}
	defer rc.Close()

	summary, err := extractor.ExtractFromReader(ctx, drawing, rc)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if err := service.ValidateQuoteInput(summary.TotalLength, settings.Material, settings.Thickness); err != nil {
		if settings.Strict {
			return nil, nil, err
		}
		warnings = append(warnings, err.Error())
	}
	if summary.EntityCount() == 0 {
		warnings = append(warnings, "no supported entities found (LINE, ARC, CIRCLE, LWPOLYLINE, POLYLINE)")
	}

	quote := estimator.Estimate(summary.TotalLength, settings.Material, settings.Thickness)

	doc := &entity.QuoteDocument{
		Number:      uc.newQuoteNumber(),
		IssuedAt:    uc.now(),
		ValidDays:   settings.ValidDays,
		Drawing:     drawingName(drawing),
		Material:    estimator.Rates().Lookup(settings.Material),
		ThicknessMM: settings.Thickness,
		Geometry:    summary,
		Quote:       quote,
		Company:     settings.Company,
		Terms:       DefaultTerms(settings.ValidDays),
	}

	return doc, warnings, nil
}

func (uc *QuoteUseCase) openDrawing(ctx context.Context, drawing, awsProfile string) (io.ReadCloser, error) {
	if types.IsS3URI(drawing) {
		return uc.storageRepo.Open(ctx, awsProfile, drawing)
	}

	if ext := strings.ToLower(filepath.Ext(drawing)); ext != ".dxf" {
		return nil, fmt.Errorf("invalid file type %q, expected .dxf", ext)
	}

	file, err := os.Open(drawing)
	if err != nil {
		return nil, fmt.Errorf("error opening drawing: %w", err)
	}
	return file, nil
}

// exportReports exporta os orçamentos nos formatos pedidos e envia para o S3, se configurado.
func (uc *QuoteUseCase) exportReports(ctx context.Context, docs []entity.QuoteDocument, settings *QuoteSettings) {
	if settings.ReportName == "" || len(settings.ReportTypes) == 0 {
		return
	}

	for _, reportType := range settings.ReportTypes {
		var (
			path string
			err  error
		)

		switch reportType {
		case "pdf":
			path, err = uc.exportRepo.ExportQuotesToPDF(docs, settings.ReportName, settings.Dir)
		case "csv":
			path, err = uc.exportRepo.ExportQuotesToCSV(docs, settings.ReportName, settings.Dir)
		case "json":
			path, err = uc.exportRepo.ExportQuotesToJSON(docs, settings.ReportName, settings.Dir)
		}

		label := strings.ToUpper(reportType)
		if err != nil {
			uc.console.LogError("Failed to export quotation to %s: %s", label, err)
			continue
		}
		uc.console.LogSuccess("Successfully exported quotation to %s: %s", label, path)

		if settings.Upload != "" {
			dest, err := uc.storageRepo.Upload(ctx, settings.AWSProfile, path, settings.Upload)
			if err != nil {
				uc.console.LogError("Failed to upload %s: %s", path, err)
				continue
			}
			uc.console.LogSuccess("Uploaded %s to %s", label, dest)
		}
	}
}

func (uc *QuoteUseCase) createResultsTable(results []entity.QuoteResult) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Drawing")
	table.AddColumn("Cutting Length (mm)")
	table.AddColumn("Entities")
	table.AddColumn("Machining Time (min)")
	table.AddColumn("Material Cost")
	table.AddColumn("Labor Cost")
	table.AddColumn("Total Cost")

	for _, res := range results {
		if !res.Success {
			table.AddRow(
				pterm.FgMagenta.Sprint(drawingName(res.Drawing)),
				pterm.FgRed.Sprint("Error"),
				"", "", "", "",
				pterm.FgRed.Sprint(truncate(res.Error, 60)),
			)
			continue
		}

		d := res.Document
		table.AddRow(
			pterm.FgMagenta.Sprint(d.Drawing),
			fmt.Sprintf("%.2f", d.Geometry.TotalLength),
			formatEntityCounts(d.Geometry),
			fmt.Sprintf("%.2f", d.Quote.MachiningTimeMinutes),
			fmt.Sprintf("$%.6f", d.Quote.MaterialCost),
			fmt.Sprintf("$%.2f", d.Quote.LaborCost),
			pterm.FgGreen.Sprintf("$%.2f", d.Quote.TotalCost),
		)
	}

	return table
}

// ListMaterials exibe a tabela de taxas efetiva (materiais embutidos e do arquivo de configuração).
func (uc *QuoteUseCase) ListMaterials(args *types.CLIArgs) error {
	settings, err := uc.ResolveSettings(args)
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("Material")
	table.AddColumn("Feed Rate (mm/min)")
	table.AddColumn("Material Cost ($/cm³)")
	table.AddColumn("Hourly Rate ($/h)")

	for _, m := range settings.Rates.Materials() {
		name := pterm.FgCyan.Sprint(m.Name)
		if !m.Known {
			name = pterm.FgYellow.Sprintf("%s (partial)", m.Name)
		}
		table.AddRow(name, fmt.Sprintf("%.0f", m.FeedRateMMPerMin), fmt.Sprintf("%.5f", m.MaterialCostPerCm3), fmt.Sprintf("%.2f", m.MachineHourlyRate))
	}

	fb := settings.Rates.Fallback()
	table.AddRow(pterm.FgYellow.Sprint("(any other)"), fmt.Sprintf("%.0f", fb.FeedRateMMPerMin), fmt.Sprintf("%.5f", fb.MaterialCostPerCm3), fmt.Sprintf("%.2f", fb.MachineHourlyRate))

	uc.console.Print(table.Render())
	return nil
}

// DefaultTerms returns the terms and conditions printed on every quotation.
func DefaultTerms(validDays int) []string {
	return []string{
		"Payment terms: Net 30 days from invoice date",
		"Lead time: 2-3 weeks from order confirmation",
		"Minimum order quantity: 1 piece",
		"Material availability subject to stock",
		"Tolerances: ±0.1mm unless specified otherwise",
		"Surface finish: As machined (Ra 3.2)",
		fmt.Sprintf("This quote is valid for %d days from date of issue", validDays),
	}
}

func lengthShares(g entity.GeometrySummary) []types.LengthShare {
	byKind := g.LengthByKind()
	return []types.LengthShare{
		{Label: "Lines", Length: byKind[entity.KindLine]},
		{Label: "Arcs", Length: byKind[entity.KindArc]},
		{Label: "Circles", Length: byKind[entity.KindCircle]},
		{Label: "Polylines", Length: byKind[entity.KindPolyline]},
	}
}

func formatEntityCounts(g entity.GeometrySummary) string {
	return fmt.Sprintf("L:%d A:%d C:%d P:%d", g.LineCount, g.ArcCount, g.CircleCount, g.PolylineCount)
}

func drawingName(drawing string) string {
	if types.IsS3URI(drawing) {
		return drawing
	}
	return filepath.Base(drawing)
}

func pickString(flagSet bool, flagValue, configValue string) string {
	if flagSet || configValue == "" {
		return flagValue
	}
	return configValue
}

// truncate corta por runas para não quebrar caracteres multibyte.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
