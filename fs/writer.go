// Package fs writes new listings to disk as markdown files.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/rentwatch"
	"gopkg.in/yaml.v3"
)

// ListingPath converts a listing to a relative file path of the form
// <source>/<url path>.md. Each path segment is sanitized; a ".." segment,
// including a percent-encoded one, is EINVALID.
// Example: eBay + https://www.kleinanzeigen.de/s-anzeige/wohnung/123 → eBay/s-anzeige/wohnung/123.md
func ListingPath(l *rentwatch.Listing) (string, error) {
	u, err := url.Parse(l.URL)
	if err != nil {
		return "", err
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			return "", rentwatch.Errorf(rentwatch.EINVALID, "listing URL escapes its directory: %q", l.URL)
		}
		segments = append(segments, sanitizeSegment(seg))
	}
	if len(segments) == 0 {
		segments = []string{"index"}
	}
	if u.RawQuery != "" {
		segments[len(segments)-1] += "_" + sanitize(u.RawQuery)
	}

	path := filepath.Join(string(l.Source), filepath.Join(segments...)+".md")
	if !filepath.IsLocal(path) {
		return "", rentwatch.Errorf(rentwatch.EINVALID, "listing URL escapes its directory: %q", l.URL)
	}
	return path, nil
}

func safeRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_'
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if safeRune(r) {
			return r
		}
		return '_'
	}, s)
}

// sanitizeSegment is sanitize that also keeps dots, for names like expose.html.
func sanitizeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || safeRune(r) {
			return r
		}
		return '_'
	}, s)
}

type frontMatter struct {
	Source    rentwatch.Source `yaml:"source"`
	Title     string           `yaml:"title"`
	URL       string           `yaml:"url"`
	Rent      string           `yaml:"rent,omitempty"`
	Location  string           `yaml:"location,omitempty"`
	Extracted string           `yaml:"extracted"`
}

// FormatListing formats a listing as markdown with YAML front matter.
func FormatListing(l *rentwatch.Listing) (string, error) {
	fm, err := yaml.Marshal(frontMatter{
		Source:    l.Source,
		Title:     l.Title,
		URL:       l.URL,
		Rent:      l.Rent,
		Location:  l.Location,
		Extracted: l.ExtractedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n# ")
	if l.Title != "" {
		b.WriteString(l.Title)
	} else {
		b.WriteString(l.URL)
	}
	b.WriteString("\n")
	return b.String(), nil
}

// ParseFrontMatter reads back the front matter written by FormatListing.
func ParseFrontMatter(content []byte) (*rentwatch.Listing, error) {
	rest, ok := bytes.CutPrefix(content, []byte("---\n"))
	if !ok {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "missing front matter")
	}
	head, _, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "unterminated front matter")
	}

	var fm frontMatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "invalid front matter: %v", err)
	}
	extracted, err := time.Parse(time.RFC3339, fm.Extracted)
	if err != nil {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "invalid extracted time: %v", err)
	}

	return &rentwatch.Listing{
		Source:      fm.Source,
		Title:       fm.Title,
		URL:         fm.URL,
		Rent:        fm.Rent,
		Location:    fm.Location,
		ExtractedAt: extracted,
	}, nil
}

// Ensure Writer implements rentwatch.Notifier at compile time.
var _ rentwatch.Notifier = (*Writer)(nil)

// Writer writes each notified listing as a markdown file under a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Notify writes the listing to disk. The file appears atomically.
func (w *Writer) Notify(ctx context.Context, l *rentwatch.Listing) error {
	if err := l.Validate(); err != nil {
		return err
	}

	relPath, err := ListingPath(l)
	if err != nil {
		return err
	}
	content, err := FormatListing(l)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".listing-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fullPath)
}
