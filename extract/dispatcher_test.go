package extract_test

import (
	"testing"
	"time"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/extract"
	"github.com/fwojciec/rentwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time, calls *int) *mock.Clock {
	return &mock.Clock{NowFn: func() time.Time {
		if calls != nil {
			*calls++
		}
		return ts
	}}
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("assembles listing from rule fields", func(t *testing.T) {
		t.Parallel()

		rule := &mock.Rule{
			SourceFn: func() rentwatch.Source { return rentwatch.SourceEbay },
			ExtractFn: func(content string) (*rentwatch.Fields, error) {
				return &rentwatch.Fields{
					Title:    "Helle 2-Zimmer-Wohnung",
					URL:      "https://www.kleinanzeigen.de/s-anzeige/1",
					Rent:     "650 €",
					Location: "10115 Mitte",
				}, nil
			},
		}
		registry, err := extract.NewRegistry(rule)
		require.NoError(t, err)

		d := extract.NewDispatcher(registry, fixedClock(ts, nil))
		listing, err := d.Dispatch(rentwatch.SourceEbay, "<html></html>")

		require.NoError(t, err)
		assert.Equal(t, &rentwatch.Listing{
			Source:      rentwatch.SourceEbay,
			Title:       "Helle 2-Zimmer-Wohnung",
			URL:         "https://www.kleinanzeigen.de/s-anzeige/1",
			Rent:        "650 €",
			Location:    "10115 Mitte",
			ExtractedAt: ts,
		}, listing)
	})

	t.Run("unknown source fails without calling any rule", func(t *testing.T) {
		t.Parallel()

		called := false
		rule := &mock.Rule{
			SourceFn: func() rentwatch.Source { return rentwatch.SourceEbay },
			ExtractFn: func(content string) (*rentwatch.Fields, error) {
				called = true
				return &rentwatch.Fields{}, nil
			},
		}
		registry, err := extract.NewRegistry(rule)
		require.NoError(t, err)

		d := extract.NewDispatcher(registry, fixedClock(ts, nil))
		listing, err := d.Dispatch("NotARealSite", "<html></html>")

		require.Error(t, err)
		assert.Nil(t, listing)
		assert.Equal(t, rentwatch.EUNKNOWNSOURCE, rentwatch.ErrorCode(err))
		assert.Equal(t, rentwatch.Source("NotARealSite"), rentwatch.ErrorSource(err))
		assert.False(t, called)
	})

	t.Run("propagates rule errors without reading the clock", func(t *testing.T) {
		t.Parallel()

		rule := &mock.Rule{
			SourceFn: func() rentwatch.Source { return rentwatch.SourceImmonet },
			ExtractFn: func(content string) (*rentwatch.Fields, error) {
				return nil, rentwatch.ContainerNotFound(rentwatch.SourceImmonet)
			},
		}
		registry, err := extract.NewRegistry(rule)
		require.NoError(t, err)

		calls := 0
		d := extract.NewDispatcher(registry, fixedClock(ts, &calls))
		_, err = d.Dispatch(rentwatch.SourceImmonet, "<html></html>")

		require.Error(t, err)
		assert.Equal(t, rentwatch.ECONTAINERNOTFOUND, rentwatch.ErrorCode(err))
		assert.Equal(t, 0, calls)
	})

	t.Run("reads the clock once per successful dispatch", func(t *testing.T) {
		t.Parallel()

		registry, err := extract.NewRegistry(ruleFor(rentwatch.SourceImmowelt))
		require.NoError(t, err)

		calls := 0
		d := extract.NewDispatcher(registry, fixedClock(ts, &calls))
		_, err = d.Dispatch(rentwatch.SourceImmowelt, "a")

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("repeated dispatch differs only in extraction time", func(t *testing.T) {
		t.Parallel()

		registry, err := extract.NewRegistry(ruleFor(rentwatch.SourceImmowelt))
		require.NoError(t, err)

		now := ts
		clock := &mock.Clock{NowFn: func() time.Time {
			now = now.Add(time.Minute)
			return now
		}}
		d := extract.NewDispatcher(registry, clock)

		first, err := d.Dispatch(rentwatch.SourceImmowelt, "a")
		require.NoError(t, err)
		second, err := d.Dispatch(rentwatch.SourceImmowelt, "a")
		require.NoError(t, err)

		assert.True(t, second.ExtractedAt.After(first.ExtractedAt))
		first.ExtractedAt, second.ExtractedAt = time.Time{}, time.Time{}
		assert.Equal(t, first, second)
	})
}
