package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/rentwatch"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	source := rentwatch.Source(c.Source)
	if _, ok := deps.Registry.Lookup(source); !ok {
		fmt.Fprintf(deps.Stderr, "error: unknown source %q. Use 'rentwatch sources' to see supported sources.\n", c.Source)
		return rentwatch.UnknownSource(source)
	}

	content, err := c.content(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	listing, err := deps.Dispatcher.Dispatch(source, content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, listing)
	}
	fmt.Fprintln(deps.Stdout, rentwatch.FormatListing(listing))
	return nil
}

// content reads the page from --file or fetches the URL.
func (c *ExtractCmd) content(deps *Dependencies) (string, error) {
	switch {
	case c.File == "-":
		b, err := io.ReadAll(deps.Stdin)
		return string(b), err
	case c.File != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", rentwatch.Errorf(rentwatch.EINVALID, "cannot read %s: %v", c.File, err)
		}
		return string(b), nil
	case c.URL == "":
		return "", rentwatch.Errorf(rentwatch.EINVALID, "a URL or --file is required")
	case !rentwatch.IsAbsoluteURL(c.URL):
		return "", rentwatch.Errorf(rentwatch.EINVALID, "URL must be absolute: %q", c.URL)
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return "", rentwatch.Upstream(rentwatch.Source(c.Source), err)
	}
	return html, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
