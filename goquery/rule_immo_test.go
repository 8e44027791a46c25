package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmoweltRule_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts first offer", func(t *testing.T) {
		t.Parallel()

		fields, err := goquery.NewImmoweltRule().Extract(immoweltHTML)

		require.NoError(t, err)
		assert.Equal(t, &rentwatch.Fields{
			Title:    "Schöne Altbauwohnung",
			URL:      "http://www.immowelt.de/expose/2abc3",
			Rent:     "650 € Kaltmiete",
			Location: "Berlin (Mitte)",
		}, fields)
	})

	t.Run("reports missing hardfact", func(t *testing.T) {
		t.Parallel()

		html := strings.Replace(immoweltHTML, `class="hardfact"`, `class="softfact"`, 1)

		_, err := goquery.NewImmoweltRule().Extract(html)

		require.Error(t, err)
		assert.Equal(t, "rent", fieldOf(t, err))
	})
}

func TestImmoScout24Rule_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts first entry with numeric rent prefix", func(t *testing.T) {
		t.Parallel()

		fields, err := goquery.NewImmoScout24Rule().Extract(immoScout24HTML)

		require.NoError(t, err)
		assert.Equal(t, &rentwatch.Fields{
			Title:    "Neubau mit Balkon",
			URL:      "http://www.immobilienscout24.de/expose/98765",
			Rent:     "1.250,00",
			Location: "Friedrichstr. 5, Berlin",
		}, fields)
	})

	t.Run("empty rent value is kept empty", func(t *testing.T) {
		t.Parallel()

		html := strings.Replace(immoScout24HTML, "1.250,00 €", " ", 1)

		fields, err := goquery.NewImmoScout24Rule().Extract(html)

		require.NoError(t, err)
		assert.Empty(t, fields.Rent)
	})

	t.Run("reports missing link", func(t *testing.T) {
		t.Parallel()

		html := `<div class="resultlist_entry_data"><dd class="value">1</dd></div>`

		_, err := goquery.NewImmoScout24Rule().Extract(html)

		assert.Equal(t, rentwatch.EFIELDNOTFOUND, rentwatch.ErrorCode(err))
		assert.Equal(t, "url", fieldOf(t, err))
	})
}

func TestImmonetRule_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts first list item", func(t *testing.T) {
		t.Parallel()

		fields, err := goquery.NewImmonetRule().Extract(immonetHTML)

		require.NoError(t, err)
		assert.Equal(t, &rentwatch.Fields{
			Title:    "Dachgeschoss mit Ausblick",
			URL:      "http://www.immonet.de/angebot/4242",
			Rent:     "890 €",
			Location: "Wohnung · 3 Zimmer Berlin",
		}, fields)
	})

	t.Run("reports missing location paragraph", func(t *testing.T) {
		t.Parallel()

		html := strings.Replace(immonetHTML, `class="fsSmall"`, "", 1)

		_, err := goquery.NewImmonetRule().Extract(html)

		assert.Equal(t, "location", fieldOf(t, err))
	})
}
