package out

import (
	"context"
	"fmt"
	"os"

	"mealsync/internal/modules/meals/domain"
	mealsout "mealsync/internal/modules/meals/port/out"
	"mealsync/internal/platform/markup"
)

// HTMLSpliceSink rewrites the embedded-meals-data script body of a page.
// A page that already embeds the same payload is left untouched.
type HTMLSpliceSink struct {
	path string
}

func NewHTMLSpliceSink(path string) mealsout.DocumentSplicer {
	return &HTMLSpliceSink{path: path}
}

func (s *HTMLSpliceSink) Update(_ context.Context, payload domain.Payload) (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("stat html page: %w", err)
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("read html page: %w", err)
	}
	rendered, err := payload.Indent()
	if err != nil {
		return false, err
	}
	current, err := markup.Region(string(content), domain.EmbedStartMarker, domain.EmbedEndMarker)
	if err != nil {
		return false, err
	}
	if current == markup.Framed(string(rendered)) {
		return true, nil
	}
	spliced, err := markup.Splice(string(content), domain.EmbedStartMarker, domain.EmbedEndMarker, string(rendered))
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(s.path, []byte(spliced), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write html page: %w", err)
	}
	return true, nil
}

func (s *HTMLSpliceSink) Target() string {
	return s.path
}
