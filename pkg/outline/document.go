// Package outline is an in-process outlining host. It discovers foldable
// spans in document text, keeps their collapsed/expanded state and exposes
// the service surface the fold package consumes.
package outline

import (
	"sort"
	"sync"

	"github.com/yaklabco/regionfold/pkg/fold"
)

// LineInfo holds byte offsets for one line.
type LineInfo struct {
	// StartOffset is the index of the first byte of the line.
	StartOffset int

	// NewlineStart is the index where the line terminator begins
	// (or len(content) for the last line).
	NewlineStart int

	// EndOffset is the index just past the line terminator.
	EndOffset int
}

// Document is an immutable snapshot of a document's text.
type Document struct {
	Path    string
	Content []byte
	Lines   []LineInfo
}

// NewDocument copies content and indexes its lines.
func NewDocument(path string, content []byte) *Document {
	buf := make([]byte, len(content))
	copy(buf, content)

	return &Document{
		Path:    path,
		Content: buf,
		Lines:   buildLines(buf),
	}
}

// buildLines handles both LF and CRLF line endings.
func buildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	if lineStart < len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Content)
}

// Text returns the text covered by r, clamped to the document.
func (d *Document) Text(r fold.Range) string {
	if d == nil {
		return ""
	}
	start := max(r.Start, 0)
	end := min(r.End(), len(d.Content))
	if start >= end {
		return ""
	}
	return string(d.Content[start:end])
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to a 1-based line number.
// Returns 0 if the offset is out of range.
func (d *Document) LineAt(offset int) int {
	if offset < 0 || len(d.Lines) == 0 || offset > len(d.Content) {
		return 0
	}
	if offset == len(d.Content) {
		return len(d.Lines)
	}

	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}
	return idx + 1
}

// LineText returns a 1-based line without its terminator.
func (d *Document) LineText(line int) string {
	if line < 1 || line > len(d.Lines) {
		return ""
	}
	info := d.Lines[line-1]
	return string(d.Content[info.StartOffset:info.NewlineStart])
}

// Buffer is the mutable owner of a document. Spans read their text from
// the buffer's current snapshot, which may be newer than the one they
// were discovered in.
type Buffer struct {
	mu      sync.RWMutex
	current *Document
}

// NewBuffer returns a buffer whose current snapshot is doc.
func NewBuffer(doc *Document) *Buffer {
	return &Buffer{current: doc}
}

// Snapshot returns the current document snapshot.
func (b *Buffer) Snapshot() *Document {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Update replaces the buffer content with a new snapshot.
func (b *Buffer) Update(content []byte) *Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = NewDocument(b.current.Path, content)
	return b.current
}

// CurrentText implements fold.TextSource.
func (b *Buffer) CurrentText(r fold.Range) string {
	return b.Snapshot().Text(r)
}
