// Package re2 provides text-pattern listing extraction for sources that embed
// their data in inline scripts, backed by github.com/wasilibs/go-re2.
package re2

import (
	"github.com/fwojciec/rentwatch"
	"github.com/wasilibs/go-re2"
)

// Compile compiles a search pattern. Returns EINVALID for malformed patterns.
func Compile(pattern string) (*re2.Regexp, error) {
	re, err := re2.Compile(pattern)
	if err != nil {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "invalid pattern %q: %v", pattern, err)
	}
	return re, nil
}

// Document is a raw text buffer scanned with patterns.
type Document struct {
	text string
}

// NewDocument wraps text in a Document.
func NewDocument(text string) *Document {
	return &Document{text: text}
}

// Text returns the underlying buffer.
func (d *Document) Text() string {
	return d.text
}

// Search returns every non-overlapping match of re in document order.
// Returns nil when nothing matches.
func (d *Document) Search(re *re2.Regexp) []string {
	return re.FindAllString(d.text, -1)
}

// SearchSubmatch returns every match of re with its submatches.
func (d *Document) SearchSubmatch(re *re2.Regexp) [][]string {
	return re.FindAllStringSubmatch(d.text, -1)
}
