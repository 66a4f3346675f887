package cli

import (
	"fmt"

	"github.com/diillson/cnc-quote-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ____ _   _  ____    ___              _       
  / ___| \ | |/ ___|  / _ \ _   _  ___ | |_ ___ 
 | |   |  \| | |     | | | | | | |/ _ \| __/ _ \
 | |___| |\  | |___  | |_| | |_| | (_) | ||  __/
  \____|_| \_|\____|  \__\_\\__,_|\___/ \__\___|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("CNC Quote CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
