package markup

import (
	"fmt"
	"strings"

	apperrors "mealsync/internal/platform/errors"
)

// RegionIndent is written before the end marker so it lines up with a
// script tag nested one level inside <body>.
const RegionIndent = "    "

// Splice replaces the text between the first startMarker and the first
// endMarker after it. Everything outside that span is kept byte-for-byte.
func Splice(doc, startMarker, endMarker, generated string) (string, error) {
	start, end, err := locate(doc, startMarker, endMarker)
	if err != nil {
		return "", err
	}
	return doc[:start] + Framed(generated) + doc[end:], nil
}

// Framed is the region text Splice writes for generated.
func Framed(generated string) string {
	return "\n" + generated + "\n" + RegionIndent
}

// Region returns the raw text between the first marker pair.
func Region(doc, startMarker, endMarker string) (string, error) {
	start, end, err := locate(doc, startMarker, endMarker)
	if err != nil {
		return "", err
	}
	return doc[start:end], nil
}

// locate returns the offset just past startMarker and the offset of endMarker.
func locate(doc, startMarker, endMarker string) (int, int, error) {
	idx := strings.Index(doc, startMarker)
	if idx < 0 {
		return 0, 0, fmt.Errorf("start marker %q: %w", startMarker, apperrors.ErrMarkerNotFound)
	}
	start := idx + len(startMarker)
	rel := strings.Index(doc[start:], endMarker)
	if rel < 0 {
		return 0, 0, fmt.Errorf("end marker %q: %w", endMarker, apperrors.ErrMarkerNotFound)
	}
	return start, start + rel, nil
}
