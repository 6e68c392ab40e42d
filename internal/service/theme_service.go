package service

import (
	"context"
	"log"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/repository"
)

// RankingCache keeps computed rankings between requests.
type RankingCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type RankingConfig struct {
	WindowDays int
	Limit      int
}

type ThemeService interface {
	List(ctx context.Context) ([]models.Theme, error)
	ListTimes(ctx context.Context) ([]models.Time, error)
	Ranking(ctx context.Context) ([]models.ThemeRanking, error)
	RankingBetween(ctx context.Context, start, end time.Time) ([]models.ThemeRanking, error)
}

type themeService struct {
	themes repository.ThemeRepository
	times  repository.TimeRepository
	cache  RankingCache
	cfg    RankingConfig
	settings
}

func NewThemeService(themes repository.ThemeRepository, times repository.TimeRepository, cache RankingCache, cfg RankingConfig, opts ...Option) ThemeService {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 7
	}
	return &themeService{themes: themes, times: times, cache: cache, cfg: cfg, settings: newSettings(opts)}
}

func (s *themeService) List(ctx context.Context) ([]models.Theme, error) {
	return s.themes.FindAll(ctx)
}

func (s *themeService) ListTimes(ctx context.Context) ([]models.Time, error) {
	return s.times.FindAll(ctx)
}

// Ranking covers the WindowDays days before today, today excluded.
func (s *themeService) Ranking(ctx context.Context) ([]models.ThemeRanking, error) {
	end := s.today()
	start := end.AddDate(0, 0, -s.cfg.WindowDays)
	return s.RankingBetween(ctx, start, end)
}

// RankingBetween ranks themes by reservations dated in [start, end).
func (s *themeService) RankingBetween(ctx context.Context, start, end time.Time) ([]models.ThemeRanking, error) {
	start, end = models.DateOf(start), models.DateOf(end)
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}

	key := start.Format(models.DateLayout) + ":" + end.Format(models.DateLayout)
	if s.cache != nil {
		var cached []models.ThemeRanking
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[ThemeService] ranking cache read failed: %v", err)
		}
		if hit {
			return cached, nil
		}
	}

	ranking, err := s.themes.FindTopByReservationCount(ctx, start, end, s.cfg.Limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, ranking); err != nil {
			log.Printf("[ThemeService] ranking cache write failed: %v", err)
		}
	}
	return ranking, nil
}
