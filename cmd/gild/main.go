package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gildlabs/gild/internal/cli"
	"github.com/gildlabs/gild/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Module path for imports (defaults to the nearest go.mod)")
		configFlag  = flag.String("config", "", "Path to a config file (defaults to ./gild.yaml when present)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		cleanFlag   = flag.Bool("clean", false, "Delete all gild_autogen.go files from the matched directories")
		openapiFlag = flag.String("openapi", "", "Render the OpenAPI document to the given path instead of generating code ('-' for stdout)")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = usage
	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	config, err := cli.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	applyFlags(config, *moduleFlag, *openapiFlag, *verboseFlag, *quietFlag, flag.Args())
	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Error: --verbose and --quiet cannot be combined\n")
		os.Exit(1)
	}

	diagnostics := diagnosticsFor(config)
	diagnostics.Section("Gild Code Generator")

	if *cleanFlag {
		cleaner := cli.NewCleaner(diagnostics)
		removed, err := cleaner.Clean(config.Directories)
		if err != nil {
			diagnostics.Error("Clean failed: %v", err)
			os.Exit(1)
		}
		diagnostics.Success("Removed %d generated file(s)", len(removed))
		return
	}

	if config.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Directories: %s", strings.Join(config.Directories, ", "))
		if config.ModuleName != "" {
			diagnostics.List("Module: %s", config.ModuleName)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	reporter := cli.NewDiagnosticReporter(diagnostics)

	if *openapiFlag != "" {
		if err := generator.Document(config); err != nil {
			reporter.ReportError(err)
			os.Exit(1)
		}
		diagnostics.Success("OpenAPI document ready")
		return
	}

	if err := generator.Run(config); err != nil {
		reporter.ReportError(err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	reporter.ReportSuccess(summary)

	if config.Verbose && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	diagnostics.Success("Registration files are up to date")
}

// applyFlags merges explicit command line values over the loaded config.
// Positional arguments replace the configured directory patterns.
func applyFlags(config *cli.Config, module, openapi string, verbose, quiet bool, args []string) {
	if module != "" {
		config.ModuleName = module
	}
	if openapi != "" {
		config.Document.Output = openapi
	}
	if verbose {
		config.Verbose = true
	}
	if quiet {
		config.Quiet = true
	}
	if len(args) > 0 {
		config.Directories = args
	}
}

func diagnosticsFor(config *cli.Config) *utils.DiagnosticSystem {
	switch {
	case config.Quiet:
		return utils.NewQuietDiagnostics()
	case config.Verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] [directory-patterns...]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Gild Code Generator\n")
	fmt.Fprintf(os.Stderr, "Scans directories for Go files with gild:: annotations and generates metadata registration files.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nArguments:\n")
	fmt.Fprintf(os.Stderr, "  directory-patterns One or more directories to scan for annotated Go files.\n")
	fmt.Fprintf(os.Stderr, "                     When omitted, the patterns come from gild.yaml or default to ./...\n")
	fmt.Fprintf(os.Stderr, "\nDirectory Patterns:\n")
	fmt.Fprintf(os.Stderr, "  ./...              Current directory and all subdirectories\n")
	fmt.Fprintf(os.Stderr, "  ./internal/...     internal and all its subdirectories\n")
	fmt.Fprintf(os.Stderr, "  ./internal/store   Only the named directory\n")
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s ./...                                # Generate for everything recursively\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s --module example.com/shop ./...      # Override the module path\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s --openapi api.json ./...             # Render the OpenAPI document\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s --clean ./...                        # Remove all generated files\n", os.Args[0])
}
