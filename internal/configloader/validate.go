package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/regionfold/pkg/config"
	"github.com/yaklabco/regionfold/pkg/marker"
)

// ValidationError is one problem with one configuration field.
type ValidationError struct {
	// Field is the YAML path of the value, such as "syntaxes[1]".
	Field string
	Value any

	Message string

	// FilePath is the file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			b.WriteString(part)
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the findings of Validate. Errors stop loading,
// warnings are reported and loading goes on.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

// AllMessages returns errors then warnings, each prefixed with its kind.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every field of cfg. Zero values are always accepted so a
// partial layer validates on its own.
func Validate(cfg *config.Config) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	if cfg.Syntaxes != nil && len(cfg.Syntaxes) == 0 {
		r.warn("syntaxes", nil, "empty syntax list enables every marker syntax")
	}
	for i, name := range cfg.Syntaxes {
		if s, err := marker.ParseSyntax(name); err != nil || s == marker.SyntaxNone {
			r.fail(indexed("syntaxes", i), name,
				"unknown marker syntax %q; must be one of: c-region, pragma-region, html-region", name)
		}
	}

	if cfg.Outliner != "" && !cfg.Outliner.IsValid() {
		r.fail("outliner", cfg.Outliner, "invalid outliner %q; must be one of: auto, markers, markdown", cfg.Outliner)
	}

	if s := cfg.InitialState; s != "" && s != config.InitialExpanded && s != config.InitialCollapsed {
		r.fail("initial_state", s, "invalid initial state %q; must be one of: expanded, collapsed", s)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		r.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json", cfg.Format)
	}

	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, line := range cfg.CollapsedLines {
		if line < 1 {
			r.fail(indexed("collapsed_lines", i), line, "line numbers start at 1")
		}
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			r.warn(indexed("extensions", i), ext, "extension %q has no leading dot; it will never match", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			r.fail(indexed("ignore", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return r
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	r := Validate(cfg)
	for _, findings := range [][]ValidationError{r.Errors, r.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return r
}

// ResolveSyntaxes maps syntax names to marker syntaxes. No names yields
// nil, which the classifier reads as every syntax.
func ResolveSyntaxes(names []string) ([]marker.Syntax, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]marker.Syntax, len(names))
	for i, name := range names {
		s, err := marker.ParseSyntax(name)
		if err != nil {
			return nil, fmt.Errorf("resolve syntaxes: %w", err)
		}
		out[i] = s
	}
	return out, nil
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
