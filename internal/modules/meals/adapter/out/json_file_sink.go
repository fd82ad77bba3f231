package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mealsync/internal/modules/meals/domain"
	mealsout "mealsync/internal/modules/meals/port/out"
)

// JSONFileSink overwrites a file with the indented payload.
type JSONFileSink struct {
	path string
}

func NewJSONFileSink(path string) mealsout.PayloadSink {
	return &JSONFileSink{path: path}
}

func (s *JSONFileSink) Write(_ context.Context, payload domain.Payload) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create meals json dir: %w", err)
	}
	rendered, err := payload.Indent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, rendered, 0o644); err != nil {
		return fmt.Errorf("write meals json: %w", err)
	}
	return nil
}

func (s *JSONFileSink) Target() string {
	return s.path
}
