package re2_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/re2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gore2 "github.com/wasilibs/go-re2"
)

const wohnungsBoerseHTML = `<!DOCTYPE html>
<html>
<head>
<script type="text/javascript">
	$(document).ready(function() {
		geocode('Torstraße 12', '2', '54', '720 &euro;', 'Kaltmiete', 'frei ab sofort',
			'Sonnige Wohnung am Park', '10119', 'Berlin', 4711823, {
				zoom: 14
			}, function(result) {
				map.setCenter(result);
			});
	});
</script>
</head>
<body><div id="map"></div></body>
</html>`

func TestParseGeocodeCall(t *testing.T) {
	t.Parallel()

	t.Run("indexes literals by fixed position", func(t *testing.T) {
		t.Parallel()

		doc := re2.NewDocument(`<script>geocode('Hauptstr. 1','2','45','650 €','x','y','Nice flat','12345','Berlin');</script>`)

		call, ok := re2.ParseGeocodeCall(doc)

		require.True(t, ok)
		assert.Equal(t, "Hauptstr. 1", call.Literal(re2.PosAddress))
		assert.Equal(t, "650 €", call.Literal(re2.PosRent))
		assert.Equal(t, "Nice flat", call.Literal(re2.PosTitle))
		assert.Equal(t, "12345", call.Literal(re2.PosZIP))
		assert.Equal(t, "Berlin", call.Literal(re2.PosCity))
		assert.Len(t, call.Literals, 9)
		assert.Empty(t, call.ID)
	})

	t.Run("spans lines and finds unquoted ID", func(t *testing.T) {
		t.Parallel()

		call, ok := re2.ParseGeocodeCall(re2.NewDocument(wohnungsBoerseHTML))

		require.True(t, ok)
		assert.Equal(t, "4711823", call.ID)
		assert.Equal(t, "Torstraße 12", call.Literal(re2.PosAddress))
		assert.True(t, strings.HasPrefix(call.Raw, "geocode("))
	})

	t.Run("ignores digits inside quoted literals", func(t *testing.T) {
		t.Parallel()

		doc := re2.NewDocument(`geocode('Hauptstr, 12, OG','2','45','650 €','x','y','Nice flat','12345','Berlin', 98765, {});`)

		call, ok := re2.ParseGeocodeCall(doc)

		require.True(t, ok)
		assert.Equal(t, "98765", call.ID)
		assert.Equal(t, "Hauptstr, 12, OG", call.Literal(re2.PosAddress))
	})

	t.Run("quoted digits alone are no ID", func(t *testing.T) {
		t.Parallel()

		call, ok := re2.ParseGeocodeCall(re2.NewDocument(`geocode('Hauptstr, 12, OG','2');`))

		require.True(t, ok)
		assert.Empty(t, call.ID)
	})

	t.Run("returns false without a call", func(t *testing.T) {
		t.Parallel()

		_, ok := re2.ParseGeocodeCall(re2.NewDocument("<script>initMap();</script>"))

		assert.False(t, ok)
	})

	t.Run("out of range literal is empty", func(t *testing.T) {
		t.Parallel()

		call, ok := re2.ParseGeocodeCall(re2.NewDocument("geocode('a');"))

		require.True(t, ok)
		assert.Empty(t, call.Literal(re2.PosTitle))
	})
}

func TestWohnungsBoerseRule_Extract(t *testing.T) {
	t.Parallel()

	// Ensure WohnungsBoerseRule implements rentwatch.Rule at compile time.
	var _ rentwatch.Rule = re2.NewWohnungsBoerseRule()

	t.Run("extracts listing from geocode call", func(t *testing.T) {
		t.Parallel()

		fields, err := re2.NewWohnungsBoerseRule().Extract(wohnungsBoerseHTML)

		require.NoError(t, err)
		assert.Equal(t, &rentwatch.Fields{
			Title:    "Sonnige Wohnung am Park",
			URL:      "http://www.wohnungsboerse.net/immodetail/4711823",
			Rent:     "720 €",
			Location: "Torstraße 12",
		}, fields)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		rule := re2.NewWohnungsBoerseRule()
		first, err := rule.Extract(wohnungsBoerseHTML)
		require.NoError(t, err)
		second, err := rule.Extract(wohnungsBoerseHTML)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("reports missing call as container not found", func(t *testing.T) {
		t.Parallel()

		fields, err := re2.NewWohnungsBoerseRule().Extract("<html><body>Keine Treffer</body></html>")

		require.Error(t, err)
		assert.Nil(t, fields)
		assert.Equal(t, rentwatch.ECONTAINERNOTFOUND, rentwatch.ErrorCode(err))
		assert.Equal(t, rentwatch.SourceWohnungsBoerse, rentwatch.ErrorSource(err))
	})

	t.Run("reports missing ID as field not found", func(t *testing.T) {
		t.Parallel()

		content := `geocode('Hauptstr. 1','2','45','650 €','x','y','Nice flat','12345','Berlin');`

		_, err := re2.NewWohnungsBoerseRule().Extract(content)

		require.Error(t, err)
		assert.Equal(t, rentwatch.EFIELDNOTFOUND, rentwatch.ErrorCode(err))
	})

	t.Run("reports short call as field not found", func(t *testing.T) {
		t.Parallel()

		_, err := re2.NewWohnungsBoerseRule().Extract(`geocode('Hauptstr. 1', 77, '2', '45', '650 €');`)

		var e *rentwatch.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, rentwatch.EFIELDNOTFOUND, e.Code)
		assert.Equal(t, "title", e.Field)
	})

	t.Run("honors base URL override", func(t *testing.T) {
		t.Parallel()

		fields, err := re2.NewWohnungsBoerseRule(re2.WithBaseURL("https://mirror.example.com/detail/")).Extract(wohnungsBoerseHTML)

		require.NoError(t, err)
		assert.Equal(t, "https://mirror.example.com/detail/4711823", fields.URL)
	})
}

func TestDocument_Search(t *testing.T) {
	t.Parallel()

	doc := re2.NewDocument("a geocode('x'); b")

	assert.Equal(t, "a geocode('x'); b", doc.Text())
	call, ok := re2.ParseGeocodeCall(doc)
	require.True(t, ok)
	assert.Equal(t, "geocode('x');", call.Raw)
}

func TestCompile(t *testing.T) {
	t.Parallel()

	t.Run("compiled pattern finds every match", func(t *testing.T) {
		t.Parallel()

		re, err := re2.Compile(`\d+ €`)
		require.NoError(t, err)

		doc := re2.NewDocument("Kaltmiete 650 €, Warmmiete 780 €")
		assert.Equal(t, []string{"650 €", "780 €"}, doc.Search(re))
		assert.Nil(t, doc.Search(mustCompile(t, `xyz`)))
	})

	t.Run("submatches are returned per match", func(t *testing.T) {
		t.Parallel()

		doc := re2.NewDocument("id=1; id=22;")
		got := doc.SearchSubmatch(mustCompile(t, `id=(\d+)`))

		assert.Equal(t, [][]string{{"id=1", "1"}, {"id=22", "22"}}, got)
	})

	t.Run("malformed pattern is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := re2.Compile(`geocode(`)

		require.Error(t, err)
		assert.Equal(t, rentwatch.EINVALID, rentwatch.ErrorCode(err))
	})
}

func mustCompile(t *testing.T, pattern string) *gore2.Regexp {
	t.Helper()
	re, err := re2.Compile(pattern)
	require.NoError(t, err)
	return re
}
