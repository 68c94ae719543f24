package marker

import "strings"

// Classifier classifies extent text against a restricted set of syntaxes.
// The zero value accepts every syntax.
type Classifier struct {
	enabled map[Syntax]bool
}

// NewClassifier returns a Classifier accepting only the given syntaxes.
// With no arguments, all syntaxes are accepted.
func NewClassifier(syntaxes ...Syntax) *Classifier {
	if len(syntaxes) == 0 {
		return &Classifier{}
	}

	enabled := make(map[Syntax]bool, len(syntaxes))
	for _, s := range syntaxes {
		if s != SyntaxNone {
			enabled[s] = true
		}
	}
	return &Classifier{enabled: enabled}
}

// Enabled reports whether the syntax is accepted.
func (c *Classifier) Enabled(s Syntax) bool {
	if s == SyntaxNone {
		return false
	}
	if c == nil || len(c.enabled) == 0 {
		return true
	}
	return c.enabled[s]
}

// Syntaxes returns the accepted syntaxes in classification order.
func (c *Classifier) Syntaxes() []Syntax {
	var out []Syntax
	for _, s := range AllSyntaxes() {
		if c.Enabled(s) {
			out = append(out, s)
		}
	}
	return out
}

// Classify applies the package-level rules and then drops the result if
// its syntax is disabled. A disabled earlier rule does not let the text
// fall through to a later one.
func (c *Classifier) Classify(text string) Syntax {
	s := Classify(text)
	if !c.Enabled(s) {
		return SyntaxNone
	}
	return s
}

// IsRegionMarker reports whether the text matches an enabled syntax.
func (c *Classifier) IsRegionMarker(text string) bool {
	return c.Classify(text) != SyntaxNone
}

// End marker tokens recognised by EndMarker.
const (
	tokenCEndRegion      = "#endregion"
	tokenPragmaEndRegion = "#pragma endregion"
)

// StartMarker looks for a region start token at the beginning of a source
// line, after indentation. It returns the syntax and the byte offset of the
// token within the line. Lines that close a region are never starts.
//
// HTML starts are stricter here than in Classify: the comment must open
// with the word "region" so that prose comments do not open regions.
func StartMarker(line string) (Syntax, int) {
	offset := len(line) - len(strings.TrimLeft(line, " \t"))
	rest := line[offset:]

	if EndMarker(line) != SyntaxNone {
		return SyntaxNone, 0
	}

	switch {
	case hasPrefixFold(rest, tokenCRegion):
		return SyntaxCRegion, offset
	case hasPrefixFold(rest, tokenPragmaRegion):
		return SyntaxPragmaRegion, offset
	case strings.HasPrefix(rest, tokenCommentOpen):
		body := strings.TrimLeft(rest[len(tokenCommentOpen):], " \t")
		if hasPrefixFold(body, wordRegion) {
			return SyntaxHTMLRegion, offset
		}
	}
	return SyntaxNone, 0
}

// EndMarker reports which syntax a region end line closes, after
// indentation, or SyntaxNone.
func EndMarker(line string) Syntax {
	rest := strings.TrimLeft(line, " \t")

	switch {
	case hasPrefixFold(rest, tokenCEndRegion):
		return SyntaxCRegion
	case hasPrefixFold(rest, tokenPragmaEndRegion):
		return SyntaxPragmaRegion
	case strings.HasPrefix(rest, tokenCommentOpen):
		body := strings.TrimLeft(rest[len(tokenCommentOpen):], " \t")
		if hasPrefixFold(body, "endregion") || hasPrefixFold(body, "end region") {
			return SyntaxHTMLRegion
		}
	}
	return SyntaxNone
}
