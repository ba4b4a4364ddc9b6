package cli

import (
	"errors"

	"github.com/gildlabs/gild/internal/annotations"
	"github.com/gildlabs/gild/internal/models"
	"github.com/gildlabs/gild/internal/utils"
)

// DiagnosticReporter renders pipeline failures and run summaries for a human
// reading a terminal. Annotation errors are grouped by kind; pipeline errors
// get a short hint matched to the stage that failed.
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
}

// NewDiagnosticReporter creates a reporter writing through the given
// diagnostics
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{diagnostics: diagnostics}
}

// ReportError renders err with as much location and hint detail as it carries
func (r *DiagnosticReporter) ReportError(err error) {
	var multi *annotations.MultipleAnnotationErrors
	if errors.As(err, &multi) {
		r.reportAnnotationErrors(multi.Errors)
		return
	}

	var annErr annotations.AnnotationError
	if errors.As(err, &annErr) {
		r.reportAnnotationErrors([]annotations.AnnotationError{annErr})
		return
	}

	var genErr *models.GeneratorError
	if errors.As(err, &genErr) {
		r.reportGeneratorError(genErr)
		return
	}

	r.diagnostics.Error("%v", err)
}

// ReportSuccess renders the summary of a completed generation run
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	r.diagnostics.Summary("Generation summary", []utils.SummaryStat{
		{Name: "Packages processed", Value: summary.PackagesProcessed},
		{Name: "Controllers", Value: summary.ControllersFound},
		{Name: "Models", Value: summary.ModelsFound},
		{Name: "Repositories", Value: summary.RepositoriesFound},
		{Name: "Files generated", Value: summary.FilesGenerated},
	})
}

func (r *DiagnosticReporter) reportAnnotationErrors(errs []annotations.AnnotationError) {
	summary := annotations.SummarizeErrors(errs)

	r.diagnostics.Section("Annotation problems")
	r.reportErrorGroup("Syntax errors", summary.SyntaxErrors)
	r.reportErrorGroup("Validation errors", summary.ValidationErrors)
	r.reportErrorGroup("Schema errors", summary.SchemaErrors)
	r.reportErrorGroup("Unsupported features", summary.UnsupportedErrors)
	r.reportErrorGroup("Other errors", summary.OtherErrors)
	r.diagnostics.Error("%s", summary.String())
}

// reportErrorGroup lists one error class. Location and hint are already part
// of each error string.
func (r *DiagnosticReporter) reportErrorGroup(title string, errs []annotations.AnnotationError) {
	if len(errs) == 0 {
		return
	}
	r.diagnostics.Subsection(title)
	for _, err := range errs {
		r.diagnostics.List("%s", err.Error())
	}
}

func (r *DiagnosticReporter) reportGeneratorError(err *models.GeneratorError) {
	r.diagnostics.Error("%s: %s", errorTypeLabel(err.Type), err.Error())
	if err.Cause != nil {
		r.diagnostics.Verbose("cause: %v", err.Cause)
	}
	for _, line := range errorTypeHelp(err.Type) {
		r.diagnostics.List("%s", line)
	}
}

func errorTypeLabel(t models.ErrorType) string {
	switch t {
	case models.ErrorTypeAnnotationSyntax:
		return "annotation error"
	case models.ErrorTypeValidation:
		return "validation error"
	case models.ErrorTypeGeneration:
		return "generation error"
	case models.ErrorTypeFileSystem:
		return "file system error"
	case models.ErrorTypeSource:
		return "source error"
	default:
		return "error"
	}
}

func errorTypeHelp(t models.ErrorType) []string {
	switch t {
	case models.ErrorTypeAnnotationSyntax:
		return []string{
			"Check the gild:: annotation syntax in the reported file.",
			"Annotations are read from the doc comment directly above the declaration.",
		}
	case models.ErrorTypeValidation:
		return []string{
			"Check the directories passed on the command line or listed in gild.yaml.",
			"Pass --module when no go.mod is in reach of the working directory.",
		}
	case models.ErrorTypeFileSystem:
		return []string{
			"Check that the reported path exists and is writable.",
		}
	case models.ErrorTypeSource:
		return []string{
			"Each scanned directory must hold exactly one parseable Go package.",
		}
	default:
		return nil
	}
}
