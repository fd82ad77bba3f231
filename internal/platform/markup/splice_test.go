package markup_test

import (
	"errors"
	"strings"
	"testing"

	apperrors "mealsync/internal/platform/errors"
	"mealsync/internal/platform/markup"
)

const (
	start = `<script id="embedded-meals-data" type="application/json">`
	end   = `</script>`
)

func TestSpliceReplacesOnlyFirstRegion(t *testing.T) {
	t.Parallel()
	doc := "<html>\n  " + start + "old</script>\n<script>keep()</script>\n" + start + "second" + end + "\n</html>\n"
	got, err := markup.Splice(doc, start, end, `{"a":1}`)
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	want := "<html>\n  " + start + "\n{\"a\":1}\n    </script>\n<script>keep()</script>\n" + start + "second" + end + "\n</html>\n"
	if got != want {
		t.Fatalf("unexpected splice result:\n%s", got)
	}
}

func TestSpliceIsIdempotent(t *testing.T) {
	t.Parallel()
	doc := "<body>\n    " + start + "\n    " + end + "\n</body>"
	once, err := markup.Splice(doc, start, end, "[1, 2]")
	if err != nil {
		t.Fatalf("first splice: %v", err)
	}
	twice, err := markup.Splice(once, start, end, "[1, 2]")
	if err != nil {
		t.Fatalf("second splice: %v", err)
	}
	if once != twice {
		t.Fatalf("expected identical output, got:\n%s\n---\n%s", once, twice)
	}
}

func TestSpliceMissingMarkers(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		doc  string
		hint string
	}{
		{name: "no start", doc: "<html></script></html>", hint: "start marker"},
		{name: "no end", doc: "<html>" + start + "{}</html>", hint: "end marker"},
		{name: "end before start", doc: end + start, hint: "end marker"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := markup.Splice(tc.doc, start, end, "{}")
			if !errors.Is(err, apperrors.ErrMarkerNotFound) {
				t.Fatalf("expected marker error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.hint) {
				t.Fatalf("expected %q in error, got %v", tc.hint, err)
			}
		})
	}
}

func TestRegionReturnsSplicedText(t *testing.T) {
	t.Parallel()
	doc, err := markup.Splice("a"+start+"x"+end+"b", start, end, "payload")
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	region, err := markup.Region(doc, start, end)
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	if strings.TrimSpace(region) != "payload" {
		t.Fatalf("unexpected region %q", region)
	}
}
