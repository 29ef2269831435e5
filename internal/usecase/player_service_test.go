package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	playermock "github.com/lucasAG-UNQ/FutbolApi/internal/mocks/domain/player"
)

func TestPlayerService_GetPerformance_StoredRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	source := &stubSource{}
	service := NewPlayerService(repo, source, nil)

	stored := player.Player{ID: 7, Name: strPtr("Saka"), Apps: 38, Rating: 7.45}
	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), int64(7)).
		Return(stored, true, nil).
		Once()

	got, err := service.GetPerformance(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, stored, got)
	require.Zero(t, source.playerCalls.Load())
}

func TestPlayerService_GetPerformance_ScrapesAndSaves(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	source := &stubSource{player: player.Player{Name: strPtr("Saka"), Apps: 38, Minutes: 3150, Rating: 7.45}}
	service := NewPlayerService(repo, source, nil)

	repo.On("GetByID", mock.Anything, int64(7)).Return(player.Player{}, false, nil).Once()
	repo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(p player.Player) bool { return p.ID == 7 && p.Apps == 38 })).
		Return(nil).
		Once()

	got, err := service.GetPerformance(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
	require.Equal(t, int32(1), source.playerCalls.Load())
}

func TestPlayerService_GetPerformance_NotFound(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, &stubSource{playerErr: ErrPlayerNotFound}, nil)

	repo.On("GetByID", mock.Anything, int64(404)).Return(player.Player{}, false, nil).Once()

	_, err := service.GetPerformance(context.Background(), 404)
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
