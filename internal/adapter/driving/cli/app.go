package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/diillson/cnc-quote-go/internal/adapter/driven/dxf"
	"github.com/diillson/cnc-quote-go/internal/application/usecase"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
	"github.com/diillson/cnc-quote-go/pkg/logging"
	"github.com/diillson/cnc-quote-go/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	quoteUseCase *usecase.QuoteUseCase
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:               "cnc-quote [drawing.dxf | s3://bucket/key.dxf]...",
		Short:             "CNC machining quotation from DXF drawings",
		Version:           formattedVersion,
		PersistentPreRunE: app.setupLogging,
		RunE:              app.runCommand,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate(`{{printf "CNC Quote version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "warn", "Diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write diagnostic logs to this file instead of stderr")

	rootCmd.Flags().StringP("material", "m", "steel", "Material to quote (steel, aluminum, plastic, wood, brass, copper, or any configured material)")
	rootCmd.Flags().Float64P("thickness", "t", 1.0, "Material thickness in mm")
	rootCmd.Flags().StringP("report-name", "n", "cnc_quotation", "Base name for the report files (empty disables export)")
	rootCmd.Flags().StringSliceP("report-type", "y", []string{"pdf"}, "Report types: pdf, csv, json")
	rootCmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.Flags().Bool("strict", false, "Fail a drawing when its inputs are invalid instead of warning")
	rootCmd.Flags().Int("concurrency", 4, "Maximum number of drawings quoted in parallel")
	rootCmd.Flags().String("aws-profile", "", "AWS profile used for s3:// drawings and uploads")
	rootCmd.Flags().StringP("upload", "u", "", "Upload generated reports to s3://bucket/prefix/")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "materials",
		Short: "List the material rate table",
		Args:  cobra.NoArgs,
		RunE:  app.runMaterials,
	})

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// setupLogging configura o logger global do zap a partir das flags.
func (app *CLIApp) setupLogging(cmd *cobra.Command, _ []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.OutputPath = logFile

	logger := logging.NewLoggerOrNop(cfg)
	zap.ReplaceGlobals(logger)
	dxf.SetParserLogger(logger)
	return nil
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command, drawings []string) *types.CLIArgs {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	material, _ := flags.GetString("material")
	thickness, _ := flags.GetFloat64("thickness")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	strict, _ := flags.GetBool("strict")
	concurrency, _ := flags.GetInt("concurrency")
	awsProfile, _ := flags.GetString("aws-profile")
	upload, _ := flags.GetString("upload")
	logLevel, _ := flags.GetString("log-level")
	logFile, _ := flags.GetString("log-file")

	setFlags := make(map[string]bool)
	for _, name := range []string{"material", "thickness", "report-name", "report-type", "dir", "strict", "concurrency", "aws-profile", "upload"} {
		setFlags[name] = flags.Changed(name)
	}

	return &types.CLIArgs{
		ConfigFile:  configFile,
		Drawings:    drawings,
		Material:    material,
		Thickness:   thickness,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Strict:      strict,
		Concurrency: concurrency,
		AWSProfile:  awsProfile,
		Upload:      upload,
		LogLevel:    logLevel,
		LogFile:     logFile,
		SetFlags:    setFlags,
	}
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go checkLatestVersion(app.version)

	cliArgs := app.parseArgs(cmd, args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer zap.L().Sync() //nolint:errcheck

	return app.quoteUseCase.RunQuote(ctx, cliArgs)
}

// runMaterials exibe a tabela de materiais efetiva.
func (app *CLIApp) runMaterials(cmd *cobra.Command, _ []string) error {
	return app.quoteUseCase.ListMaterials(app.parseArgs(cmd, nil))
}

// SetQuoteUseCase sets the quote use case for the CLI app.
func (app *CLIApp) SetQuoteUseCase(useCase *usecase.QuoteUseCase) {
	app.quoteUseCase = useCase
}
