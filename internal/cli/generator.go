package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gildlabs/gild/internal/generator"
	"github.com/gildlabs/gild/internal/models"
	"github.com/gildlabs/gild/internal/parser"
	"github.com/gildlabs/gild/internal/utils"
	"github.com/gildlabs/gild/pkg/gild/openapi"
)

// Generator drives a full run: scan the configured directories, parse every
// package, and either write registration files next to their packages or
// render the aggregated OpenAPI document.
type Generator struct {
	scanner     *DirectoryScanner
	resolver    *ModuleResolver
	parser      *parser.Parser
	emitter     *generator.Generator
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// GenerationSummary aggregates the counts of one run
type GenerationSummary struct {
	PackagesProcessed int
	ControllersFound  int
	ModelsFound       int
	RepositoriesFound int
	FilesGenerated    int
	GeneratedFiles    []string
}

// NewGenerator creates a run driver reporting through the given diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:     NewDirectoryScanner(),
		resolver:    NewModuleResolver(),
		parser:      parser.NewParser(),
		emitter:     generator.NewGenerator(),
		diagnostics: diagnostics,
	}
}

// Run executes a generation pass over the configured directories
func (g *Generator) Run(config *Config) error {
	pkgs, err := g.load(config)
	if err != nil {
		return err
	}

	files, err := g.emitter.Generate(pkgs...)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
			return &models.GeneratorError{
				Type:    models.ErrorTypeFileSystem,
				File:    file.FilePath,
				Message: "failed to write registration file",
				Cause:   err,
			}
		}
		g.diagnostics.Progress("generated %s", file.FilePath)
		g.summary.FilesGenerated++
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
	}

	return nil
}

// Document renders the OpenAPI document covering the configured directories
// and writes it to config.Document.Output. An output of "-" writes to
// standard output.
func (g *Generator) Document(config *Config) error {
	pkgs, err := g.load(config)
	if err != nil {
		return err
	}

	info := openapi.Info{
		Title:       config.Document.Title,
		Version:     config.Document.Version,
		Description: config.Document.Description,
	}
	data, err := generator.RenderDocument(info, pkgs...)
	if err != nil {
		return err
	}

	if config.Document.Output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(config.Document.Output, data, 0644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    config.Document.Output,
			Message: "failed to write OpenAPI document",
			Cause:   err,
		}
	}
	g.diagnostics.Progress("wrote %s", config.Document.Output)
	return nil
}

// GetSummary returns the counts of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// load resolves the module, scans the configured directories, and parses
// every matched package. Parse failures surface immediately; a package
// already aggregates all of its annotation problems into one error.
func (g *Generator) load(config *Config) ([]*models.PackageMetadata, error) {
	g.summary = GenerationSummary{}

	moduleName, err := g.resolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "failed to resolve module name",
			Cause:   err,
		}
	}
	g.diagnostics.Verbose("resolved module %s", moduleName)

	dirs, err := g.scanner.Scan(config.Directories)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: "failed to scan directories",
			Cause:   err,
		}
	}
	if len(dirs) == 0 {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: fmt.Sprintf("no Go packages matched %v", config.Directories),
		}
	}
	g.diagnostics.Verbose("scanning %d directories", len(dirs))

	var pkgs []*models.PackageMetadata
	for _, dir := range dirs {
		metadata, err := g.parser.ParseDirectory(dir)
		if err != nil {
			return nil, err
		}

		importPath, err := g.resolver.BuildPackagePath(dir)
		if err != nil {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				File:    dir,
				Message: "failed to build package import path",
				Cause:   err,
			}
		}
		metadata.ImportPath = importPath

		g.summary.PackagesProcessed++
		g.summary.ControllersFound += len(metadata.Controllers)
		g.summary.ModelsFound += len(metadata.Models)
		g.summary.RepositoriesFound += len(metadata.Repositories)

		if metadata.HasAnnotations() {
			g.diagnostics.Verbose("package %s: %d controllers, %d models, %d repositories",
				metadata.PackageName, len(metadata.Controllers), len(metadata.Models), len(metadata.Repositories))
			for _, component := range metadata.Components() {
				g.describeComponent(component)
			}
		}

		pkgs = append(pkgs, metadata)
	}

	return pkgs, nil
}

// describeComponent prints one scanned component at verbose level with the
// identifying detail its metadata carries
func (g *Generator) describeComponent(component models.Metadata) {
	name := component.GetName()
	if tagged, ok := component.(models.Tagged); ok && len(tagged.GetTags()) > 0 {
		name = fmt.Sprintf("%s [%s]", name, strings.Join(tagged.GetTags(), ", "))
	}
	if located, ok := component.(models.Located); ok {
		g.diagnostics.Verbose("  %s at %s", name, located.GetSource().String())
		return
	}
	g.diagnostics.Verbose("  %s", name)
}
