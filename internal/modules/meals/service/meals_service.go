package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mealsync/internal/modules/meals/domain"
	mealsout "mealsync/internal/modules/meals/port/out"
	"mealsync/internal/platform/clock"
	apperrors "mealsync/internal/platform/errors"
)

type MealsService struct {
	clock    clock.Clock
	creds    mealsout.CredentialSource
	api      mealsout.MenuAPI
	jsonSink mealsout.PayloadSink
	htmlSink mealsout.DocumentSplicer
	reporter mealsout.Reporter
	logger   *zap.Logger
}

func NewMealsService(
	clock clock.Clock,
	creds mealsout.CredentialSource,
	api mealsout.MenuAPI,
	jsonSink mealsout.PayloadSink,
	htmlSink mealsout.DocumentSplicer,
	reporter mealsout.Reporter,
	logger *zap.Logger,
) *MealsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealsService{
		clock:    clock,
		creds:    creds,
		api:      api,
		jsonSink: jsonSink,
		htmlSink: htmlSink,
		reporter: reporter,
		logger:   logger,
	}
}

// Fetch resolves credentials, logs in and downloads the menu for date
// (today when empty). An empty document is a fetch failure.
func (s *MealsService) Fetch(ctx context.Context, date string) (domain.Payload, string, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return domain.Payload{}, "", err
	}
	creds, err := s.creds.Resolve(ctx)
	if err != nil {
		return domain.Payload{}, "", err
	}

	s.reporter.Step("Logging in to easistent.com...")
	started := s.clock.Now()
	session, err := s.api.Login(ctx, creds)
	if err != nil {
		return domain.Payload{}, "", err
	}
	s.reporter.Done("Login successful")
	s.logger.Debug("login completed", zap.Duration("elapsed", s.clock.Now().Sub(started)))

	s.reporter.Step(fmt.Sprintf("Fetching meals for %s...", date))
	payload, err := s.api.FetchMenu(ctx, session, date)
	if err != nil {
		return domain.Payload{}, "", err
	}
	if payload.IsEmpty() {
		return domain.Payload{}, "", fmt.Errorf("%w: no meals data returned for %s", apperrors.ErrFetchFailed, date)
	}
	s.reporter.Done("Meals data fetched successfully")
	s.logger.Debug("menu fetched", zap.String("date", date), zap.Int("bytes", len(payload.Raw())))
	return payload, date, nil
}

// Sync runs the whole pipeline: fetch, rewrite the JSON file, then splice
// the HTML page. A page without markers only produces a warning.
func (s *MealsService) Sync(ctx context.Context, date string) (domain.SyncResult, error) {
	payload, date, err := s.Fetch(ctx, date)
	if err != nil {
		return domain.SyncResult{}, err
	}

	if err := s.jsonSink.Write(ctx, payload); err != nil {
		return domain.SyncResult{}, err
	}
	s.reporter.Done(fmt.Sprintf("Updated %s", s.jsonSink.Target()))

	updated, err := s.htmlSink.Update(ctx, payload)
	switch {
	case errors.Is(err, apperrors.ErrMarkerNotFound):
		s.reporter.Warn(fmt.Sprintf("Could not update embedded meals data in %s: %v", s.htmlSink.Target(), err))
		s.logger.Warn("html splice skipped", zap.String("path", s.htmlSink.Target()), zap.Error(err))
		updated = false
	case err != nil:
		return domain.SyncResult{}, err
	default:
		s.reporter.Done(fmt.Sprintf("Updated embedded meals data in %s", s.htmlSink.Target()))
	}

	return domain.SyncResult{
		Date:        date,
		Payload:     payload,
		JSONPath:    s.jsonSink.Target(),
		HTMLPath:    s.htmlSink.Target(),
		HTMLUpdated: updated,
		Summary:     domain.Summarize(payload),
	}, nil
}

func (s *MealsService) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return clock.Today(s.clock), nil
	}
	if _, err := time.Parse(clock.DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, date)
	}
	return date, nil
}
