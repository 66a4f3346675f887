package main

import (
	"fmt"
	"os"

	"github.com/diillson/cnc-quote-go/internal/adapter/driven/config"
	"github.com/diillson/cnc-quote-go/internal/adapter/driven/dxf"
	"github.com/diillson/cnc-quote-go/internal/adapter/driven/export"
	"github.com/diillson/cnc-quote-go/internal/adapter/driven/storage"
	"github.com/diillson/cnc-quote-go/internal/adapter/driving/cli"
	"github.com/diillson/cnc-quote-go/internal/application/usecase"
	"github.com/diillson/cnc-quote-go/pkg/console"
	"github.com/diillson/cnc-quote-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	drawingRepo := dxf.NewDrawingRepository()
	storageRepo := storage.NewS3Repository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	quoteUseCase := usecase.NewQuoteUseCase(
		drawingRepo,
		storageRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetQuoteUseCase(quoteUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
