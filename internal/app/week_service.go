package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"songboard/internal/constants"
	"songboard/internal/domain"
	"songboard/internal/logger"
	"songboard/internal/store"
)

// WeekService owns the weekly rotation: it answers "what week is it" and
// performs rollovers.
type WeekService struct {
	Repo     *store.DB
	Settings *store.SettingsRepo
	Anchor   time.Weekday
	Logger   *logger.Logger
}

func NewWeekService(repo *store.DB, settings *store.SettingsRepo, anchor time.Weekday, log *logger.Logger) *WeekService {
	return &WeekService{Repo: repo, Settings: settings, Anchor: anchor, Logger: log}
}

// WeekWindow computes the voting window containing ref: it starts on the
// most recent occurrence of the anchor weekday (possibly ref itself) and
// spans seven days inclusive. Pure given ref and anchor.
func WeekWindow(ref time.Time, anchor time.Weekday) (start, end time.Time) {
	days := (int(ref.Weekday()) - int(anchor) + 7) % 7
	start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).
		AddDate(0, 0, -days)
	end = start.AddDate(0, 0, constants.WeekSpanDays)
	return start, end
}

// CurrentWeek returns the active week, or nil when none exists yet.
func (s *WeekService) CurrentWeek() (*domain.Week, error) {
	return s.Repo.GetCurrentWeek()
}

// EnsureActiveWeek returns the active week, creating one for ref's window
// if none exists.
func (s *WeekService) EnsureActiveWeek(ref time.Time) (*domain.Week, error) {
	week, err := s.Repo.GetCurrentWeek()
	if err != nil {
		return nil, fmt.Errorf("failed to look up current week: %w", err)
	}
	if week != nil {
		return week, nil
	}

	start, end := WeekWindow(ref, s.Anchor)
	week, err = s.Repo.CreateWeek(start.Format(constants.DateLayout), end.Format(constants.DateLayout))
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Week created", "week_id", week.ID, "week_start", week.WeekStart, "week_end", week.WeekEnd)
	return week, nil
}

// Rollover deactivates every song, closes the current week and opens a new
// one for ref's window, all in one storage transaction. Safe to invoke
// twice: rolling over an already-rolled state just opens another week.
func (s *WeekService) Rollover(ref time.Time) (*domain.Week, int64, error) {
	runID := uuid.New().String()
	start, end := WeekWindow(ref, s.Anchor)

	week, deactivated, err := s.Repo.RolloverWeek(runID,
		start.Format(constants.DateLayout), end.Format(constants.DateLayout))
	if err != nil {
		return nil, 0, fmt.Errorf("rollover failed: %w", err)
	}

	if err := s.Settings.Set(store.SettingLastRolloverAt, ref.Format(time.RFC3339)); err != nil {
		s.Logger.Warn("Failed to record rollover time", "error", err)
	}
	if err := s.Settings.Set(store.SettingLastRolloverID, runID); err != nil {
		s.Logger.Warn("Failed to record rollover id", "error", err)
	}

	s.Logger.Info("Week rolled over",
		"run_id", runID,
		"week_id", week.ID,
		"week_start", week.WeekStart,
		"songs_deactivated", deactivated)
	return week, deactivated, nil
}
