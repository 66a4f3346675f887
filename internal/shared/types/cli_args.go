package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Drawings    []string
	Material    string
	Thickness   float64
	ReportName  string
	ReportType  []string
	Dir         string
	Strict      bool
	Concurrency int
	AWSProfile  string
	Upload      string
	LogLevel    string
	LogFile     string

	// SetFlags guarda as flags definidas explicitamente na linha de comando,
	// usadas para decidir a precedência sobre o arquivo de configuração.
	SetFlags map[string]bool
}

// IsSet reports whether the named flag was given explicitly.
func (a *CLIArgs) IsSet(name string) bool {
	return a.SetFlags != nil && a.SetFlags[name]
}
