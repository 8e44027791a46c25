package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/rentwatch"
	main "github.com/fwojciec/rentwatch/cmd/rentwatch"
	"github.com/fwojciec/rentwatch/extract"
	"github.com/fwojciec/rentwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractDeps(t *testing.T, fetcher rentwatch.Fetcher, rule *mock.Rule) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	registry, err := extract.NewRegistry(rule)
	require.NoError(t, err)

	clock := &mock.Clock{NowFn: func() time.Time { return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) }}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Registry:   registry,
		Dispatcher: extract.NewDispatcher(registry, clock),
		Fetcher:    fetcher,
	}, stdout, stderr
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	rule := &mock.Rule{
		SourceFn: func() rentwatch.Source { return rentwatch.SourceWG1Zimmer },
		ExtractFn: func(content string) (*rentwatch.Fields, error) {
			if content == "" {
				return nil, rentwatch.ContainerNotFound(rentwatch.SourceWG1Zimmer)
			}
			return &rentwatch.Fields{Title: "WG-Zimmer", URL: "http://www.wg-gesucht.de/1.html", Rent: "450"}, nil
		},
	}

	t.Run("fetches and prints the listing", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return "<html>page</html>", nil
			},
		}
		deps, stdout, _ := extractDeps(t, fetcher, rule)

		err := (&main.ExtractCmd{Source: "WG1Zimmer", URL: "http://www.wg-gesucht.de/wg-zimmer-in-Berlin.8.0.1.0.html"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "http://www.wg-gesucht.de/wg-zimmer-in-Berlin.8.0.1.0.html", fetched)
		assert.Equal(t, "[WG1Zimmer] WG-Zimmer\n"+
			"  rent:     450\n"+
			"  url:      http://www.wg-gesucht.de/1.html\n"+
			"  time:     Mar 03 2026 10:00:00\n", stdout.String())
	})

	t.Run("requires a URL without --file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := extractDeps(t, &mock.Fetcher{}, rule)

		err := (&main.ExtractCmd{Source: "WG1Zimmer"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, rentwatch.EINVALID, rentwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "a URL or --file is required")
	})

	t.Run("wraps fetch failures as upstream errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("HTTP 403 for http://www.wg-gesucht.de/")
			},
		}
		deps, _, stderr := extractDeps(t, fetcher, rule)

		err := (&main.ExtractCmd{Source: "WG1Zimmer", URL: "http://www.wg-gesucht.de/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, rentwatch.EUPSTREAM, rentwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "upstream failure: HTTP 403")
	})

	t.Run("reports a missing container", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) { return "", nil },
		}
		deps, _, stderr := extractDeps(t, fetcher, rule)

		err := (&main.ExtractCmd{Source: "WG1Zimmer", URL: "http://www.wg-gesucht.de/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, rentwatch.ECONTAINERNOTFOUND, rentwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "listing container not found")
	})

	t.Run("rejects sources without a rule", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := extractDeps(t, &mock.Fetcher{}, rule)

		err := (&main.ExtractCmd{Source: "eBay", URL: "https://www.kleinanzeigen.de/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, rentwatch.EUNKNOWNSOURCE, rentwatch.ErrorCode(err))
	})
}
