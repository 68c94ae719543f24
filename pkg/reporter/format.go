package reporter

import (
	"fmt"
	"strings"
)

// Format names an output format.
type Format string

// Output formats, in the order they are listed in help text.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON}
}

// FormatNames returns the supported formats as a comma-separated list.
func FormatNames() string {
	names := make([]string, 0, len(constructors))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ParseFormat resolves a format name. Matching ignores case and surrounding
// space, and the empty name selects text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, FormatNames())
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f has a reporter.
func (f Format) IsValid() bool {
	_, ok := constructors[f]
	return ok
}
