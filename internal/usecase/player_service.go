package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
)

type PlayerService struct {
	playerRepo player.Repository
	source     TeamSource
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, source TeamSource, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo: playerRepo,
		source:     source,
		logger:     logger,
	}
}

// GetPerformance reads the stored aggregate and scrapes it on first request.
func (s *PlayerService) GetPerformance(ctx context.Context, playerID int64) (_ player.Player, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPerformance")
	defer observe(span, "player.performance", time.Now(), &err)

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	stored, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if exists {
		metrics.CacheLookups.WithLabelValues("player", "hit").Inc()
		return stored, nil
	}

	metrics.CacheLookups.WithLabelValues("player", "refresh").Inc()
	scraped, err := s.source.FetchPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("scrape player=%d: %w", playerID, err)
	}
	scraped.ID = playerID

	if err := s.playerRepo.Upsert(ctx, scraped); err != nil {
		return player.Player{}, fmt.Errorf("upsert player=%d: %w", playerID, err)
	}
	s.logger.InfoContext(ctx, "player performance stored", "player_id", playerID, "apps", scraped.Apps)

	return scraped, nil
}
