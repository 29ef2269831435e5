package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	basecache "github.com/lucasAG-UNQ/FutbolApi/internal/platform/cache"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
)

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// TeamRepository is a read-through cache in front of a team store.
// Writes go straight to next and drop the cached row.
type TeamRepository struct {
	next    team.Repository
	cache   *basecache.Store[cachedTeamByID]
	players *PlayerRepository
}

var _ team.Repository = (*TeamRepository)(nil)

// NewTeamRepository wraps next. players may be nil; when set, its cached rows
// are dropped on every roster write.
func NewTeamRepository(next team.Repository, ttl time.Duration, players *PlayerRepository) *TeamRepository {
	return &TeamRepository{next: next, cache: basecache.NewStore[cachedTeamByID](ttl, nil), players: players}
}

func teamKey(id int64) string {
	return "team:id:" + strconv.FormatInt(id, 10)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := teamKey(id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		metrics.CacheLookups.WithLabelValues("team_row", "hit").Inc()
		return cloneTeam(cached.value), cached.exists, nil
	}
	metrics.CacheLookups.WithLabelValues("team_row", "miss").Inc()

	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: cloneTeam(item), exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cloneTeam(cached.value), cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	err := r.next.Upsert(ctx, t)
	r.cache.Delete(ctx, teamKey(t.ID))
	if r.players != nil {
		r.players.cache.DeletePrefix(ctx, "player:id:")
	}
	return err
}

func (r *TeamRepository) SetMatchesUpdatedAt(ctx context.Context, id int64, at time.Time) error {
	err := r.next.SetMatchesUpdatedAt(ctx, id, at)
	r.cache.Delete(ctx, teamKey(id))
	return err
}

// Invalidate drops the cached row so the next read goes to next.
func (r *TeamRepository) Invalidate(ctx context.Context, teamID int64) {
	r.cache.Delete(ctx, teamKey(teamID))
}

func cloneTeam(t team.Team) team.Team {
	if t.Players != nil {
		t.Players = append([]player.Player(nil), t.Players...)
	}
	return t
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[cachedPlayerByID]
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{next: next, cache: basecache.NewStore[cachedPlayerByID](ttl, nil)}
}

func playerKey(id int64) string {
	return "player:id:" + strconv.FormatInt(id, 10)
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := playerKey(id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		metrics.CacheLookups.WithLabelValues("player_row", "hit").Inc()
		return cached.value, cached.exists, nil
	}
	metrics.CacheLookups.WithLabelValues("player_row", "miss").Inc()

	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	err := r.next.Upsert(ctx, p)
	r.cache.Delete(ctx, playerKey(p.ID))
	return err
}
