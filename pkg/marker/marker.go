// Package marker classifies the text of a foldable span as a region marker.
//
// Three marker syntaxes are recognised, case-insensitively and in order:
//
//   - "#region" (C#, C/C++ preprocessor style)
//   - "#pragma region" (MSVC pragma style)
//   - an HTML/XML comment opener "<!--" whose body mentions "region"
//
// Classification only looks at the text itself. No leading whitespace is
// trimmed: an extent that starts with indentation does not match.
package marker

import (
	"fmt"
	"strings"
)

// Syntax identifies which region marker syntax a text matched.
type Syntax int

const (
	// SyntaxNone means the text is not a region marker.
	SyntaxNone Syntax = iota
	// SyntaxCRegion is "#region".
	SyntaxCRegion
	// SyntaxPragmaRegion is "#pragma region".
	SyntaxPragmaRegion
	// SyntaxHTMLRegion is an HTML comment mentioning "region".
	SyntaxHTMLRegion
)

// Marker tokens.
const (
	tokenCRegion      = "#region"
	tokenPragmaRegion = "#pragma region"
	tokenCommentOpen  = "<!--"
	wordRegion        = "region"
)

// String returns the configuration name of the syntax.
func (s Syntax) String() string {
	switch s {
	case SyntaxCRegion:
		return "c-region"
	case SyntaxPragmaRegion:
		return "pragma-region"
	case SyntaxHTMLRegion:
		return "html-region"
	default:
		return "none"
	}
}

// ParseSyntax parses a syntax name as produced by Syntax.String.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c-region", "region":
		return SyntaxCRegion, nil
	case "pragma-region", "pragma":
		return SyntaxPragmaRegion, nil
	case "html-region", "html":
		return SyntaxHTMLRegion, nil
	default:
		return SyntaxNone, fmt.Errorf("unknown marker syntax %q; valid: c-region, pragma-region, html-region", name)
	}
}

// AllSyntaxes returns every region syntax in classification order.
func AllSyntaxes() []Syntax {
	return []Syntax{SyntaxCRegion, SyntaxPragmaRegion, SyntaxHTMLRegion}
}

// Classify reports which region syntax the extent text matches.
// The first matching rule wins; an empty text never matches.
func Classify(text string) Syntax {
	switch {
	case hasPrefixFold(text, tokenCRegion):
		return SyntaxCRegion
	case hasPrefixFold(text, tokenPragmaRegion):
		return SyntaxPragmaRegion
	case strings.HasPrefix(text, tokenCommentOpen) &&
		strings.Contains(strings.ToLower(text), wordRegion):
		return SyntaxHTMLRegion
	default:
		return SyntaxNone
	}
}

// IsRegionMarker reports whether the extent text is a region marker under
// any supported syntax.
func IsRegionMarker(text string) bool {
	return Classify(text) != SyntaxNone
}

// hasPrefixFold is a case-insensitive strings.HasPrefix that only inspects
// the leading len(prefix) bytes of s.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
