package season

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

const (
	cacheKeyAll    = shared.CachePrefixSeasons + "all"
	cacheKeyActive = shared.CachePrefixSeasons + "active"
)

// SeasonService manages operating seasons
type SeasonService struct {
	repo     season.Repository
	cache    shared.QueryCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSeasonService creates a new SeasonService. cache may be nil.
func NewSeasonService(repo season.Repository, cache shared.QueryCache, cacheTTL time.Duration, logger *zap.Logger) *SeasonService {
	return &SeasonService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListSeasons returns every season, newest first
func (s *SeasonService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	return shared.Cached(ctx, s.cache, cacheKeyAll, s.cacheTTL, func(ctx context.Context) ([]season.Season, error) {
		seasons, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if seasons == nil {
			seasons = []season.Season{}
		}
		return seasons, nil
	})
}

// GetActiveSeason returns the active season or NOT_FOUND
func (s *SeasonService) GetActiveSeason(ctx context.Context) (*season.Season, error) {
	return shared.Cached(ctx, s.cache, cacheKeyActive, s.cacheTTL, s.repo.FindActive)
}

// StartSeasonInput is the request to open a new season
type StartSeasonInput struct {
	Name      string
	StartDate time.Time
	EndDate   *time.Time
}

// StartNewSeason closes every season and opens a new active one
func (s *SeasonService) StartNewSeason(ctx context.Context, in StartSeasonInput) (*season.Season, error) {
	sn, err := season.NewSeason(in.Name, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.StartNew(ctx, sn); err != nil {
		return nil, err
	}

	s.logger.Info("New season started",
		zap.String("season_id", sn.ID.String()),
		zap.String("name", sn.Name))

	if s.cache != nil {
		if err := s.cache.DeletePrefix(ctx, shared.CachePrefixSeasons); err != nil {
			s.logger.Warn("Failed to invalidate season cache", zap.Error(err))
		}
	}
	return sn, nil
}
