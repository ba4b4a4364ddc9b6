package utils

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// FormatGoSource formats generated Go source and fixes up its import block,
// grouping and pruning imports the same way goimports does.
func FormatGoSource(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		// Surface a parse error with position info when the source is not even
		// valid Go; Process errors can be cryptic for broken templates
		fset := token.NewFileSet()
		if _, parseErr := parser.ParseFile(fset, filename, source, parser.ParseComments); parseErr != nil {
			return nil, fmt.Errorf("invalid Go syntax: %w", parseErr)
		}
		return nil, fmt.Errorf("failed to format %s: %w", filename, err)
	}
	return formatted, nil
}

// FormatAndWriteGoFile formats generated Go source and writes it to a file.
// When formatting fails the raw source is written anyway so the problem can be
// inspected, and the formatting error is still returned.
func FormatAndWriteGoFile(filename string, source []byte) error {
	formatted, err := FormatGoSource(filename, source)
	if err != nil {
		if writeErr := os.WriteFile(filename, source, 0644); writeErr != nil {
			return fmt.Errorf("failed to write unformatted code to %s: %w (format error: %v)", filename, writeErr, err)
		}
		return err
	}
	return os.WriteFile(filename, formatted, 0644)
}

// ValidateGoSource checks that source parses as Go
func ValidateGoSource(filename string, source []byte) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, filename, source, parser.ParseComments)
	return err
}
