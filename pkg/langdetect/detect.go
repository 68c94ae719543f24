// Package langdetect identifies the language of a source file.
// It uses go-enry, falling back to a few high-signal content patterns, and
// is used to pick an outliner for each file.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers returned by Detect.
const (
	LangMarkdown = "markdown"
	LangHTML     = "html"
	LangXML      = "xml"
	LangCSharp   = "csharp"
	LangC        = "c"
	LangCPP      = "cpp"
	LangText     = "text"
)

// candidates are the languages the classifier may choose between when
// neither the file name nor a shebang decides.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"C#", "C", "C++", "Objective-C", "HTML", "XML", "Markdown",
	"Visual Basic .NET", "F#", "PowerShell", "JavaScript", "TypeScript",
	"Go", "Python", "Shell",
}

// knownExtensions resolves extensions that linguist considers ambiguous
// (".cs", ".md", ".h") or that matter most for region folding.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownExtensions = map[string]string{
	".cs":       LangCSharp,
	".csx":      LangCSharp,
	".md":       LangMarkdown,
	".markdown": LangMarkdown,
	".html":     LangHTML,
	".htm":      LangHTML,
	".cshtml":   LangHTML,
	".razor":    LangHTML,
	".xml":      LangXML,
	".xaml":     LangXML,
	".csproj":   LangXML,
	".props":    LangXML,
	".targets":  LangXML,
	".resx":     LangXML,
	".c":        LangC,
	".cpp":      LangCPP,
	".cc":       LangCPP,
	".cxx":      LangCPP,
	".hpp":      LangCPP,
	".hh":       LangCPP,
	".vb":       "vbnet",
}

// Detect returns a lower-case language identifier for the file.
// Returns "text" if nothing matches with confidence.
func Detect(path string, content []byte) string {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	// Strategy 1: extension, then well-known file names.
	if lang, ok := knownExtensions[ext]; ok {
		return lang
	}
	if ext == ".h" {
		if lang := detectCFamily(content); lang != "" {
			return lang
		}
		return LangC
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" {
		return normalize(lang)
	}

	if len(content) == 0 {
		return LangText
	}

	// Strategy 2: shebang.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Strategy 3: patterns that are highly indicative.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 4: classifier over candidates; only trust a safe answer.
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsMarkdown reports whether lang is Markdown.
func IsMarkdown(lang string) bool {
	return lang == LangMarkdown
}

// detectByPattern checks content for markers of the languages that use
// region syntax.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	if lang := detectHTML(trimmed); lang != "" {
		return lang
	}
	if lang := detectCSharp(content); lang != "" {
		return lang
	}
	if lang := detectCFamily(content); lang != "" {
		return lang
	}
	return detectMarkdown(content)
}

func detectHTML(trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	switch {
	case bytes.HasPrefix(lower, []byte("<?xml")):
		return LangXML
	case bytes.Contains(lower, []byte("<!doctype html")),
		bytes.Contains(lower, []byte("<html")),
		bytes.Contains(lower, []byte("<body")):
		return LangHTML
	}
	return ""
}

func detectCSharp(content []byte) string {
	if bytes.Contains(content, []byte("using System")) ||
		(bytes.Contains(content, []byte("namespace ")) && bytes.Contains(content, []byte("#region"))) {
		return LangCSharp
	}
	return ""
}

func detectCFamily(content []byte) string {
	if !bytes.Contains(content, []byte("#include")) {
		return ""
	}
	if bytes.Contains(content, []byte("std::")) ||
		bytes.Contains(content, []byte("#pragma region")) ||
		bytes.Contains(content, []byte("class ")) {
		return LangCPP
	}
	return LangC
}

// detectMarkdown needs at least two ATX headings or fences.
func detectMarkdown(content []byte) string {
	signals := 0
	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("# ")) || bytes.HasPrefix(line, []byte("## ")) ||
			bytes.HasPrefix(line, []byte("```")) {
			signals++
		}
	}
	if signals >= 2 {
		return LangMarkdown
	}
	return ""
}

// normalize converts go-enry language names to identifiers.
func normalize(lang string) string {
	switch lang {
	case "C#":
		return LangCSharp
	case "C++":
		return LangCPP
	case "Shell":
		return "bash"
	case "Visual Basic .NET":
		return "vbnet"
	case "F#":
		return "fsharp"
	}
	return strings.ToLower(lang)
}
