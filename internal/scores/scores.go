// internal/scores/scores.go
//
// Best-effort local leaderboard.
//
// The whole collection lives in one key-value slot ("math_game_scores") as a
// JSON array and round-trips read-modify-write. That is not safe for
// concurrent writers; acceptable because exactly one UI session mutates it.
// Read failures of any kind (missing slot, corrupt blob) degrade to an empty
// board, and write failures are logged and swallowed — the leaderboard
// favors availability over strict correctness.

package scores

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"mathsprint/internal/kv"
)

// StorageKey is the fixed key-value slot holding the serialized leaderboard.
const StorageKey = "math_game_scores"

// DefaultLimit is the number of records shown on the board.
const DefaultLimit = 5

// maxNameLen caps player names, in runes.
const maxNameLen = 20

// Record is one saved result. Append-only: records are never mutated or
// deleted once written.
type Record struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// Store reads and appends leaderboard records through a kv.Store.
type Store struct {
	kv kv.Store
}

// NewStore constructs a Store over the given key-value backend.
func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Top returns up to limit records ordered by score descending. Ties keep
// their original insertion order. limit <= 0 means DefaultLimit. Never
// returns an error: unreadable storage is an empty board.
func (s *Store) Top(ctx context.Context, limit int) []Record {
	if limit <= 0 {
		limit = DefaultLimit
	}
	recs := s.load(ctx)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// Save appends a record with the current timestamp and writes the whole
// collection back. The name is trimmed and clipped to 20 runes; an empty
// trimmed name or a negative score is dropped. Persistence is best-effort:
// failures are logged, never surfaced.
func (s *Store) Save(ctx context.Context, name string, score int) {
	name = strings.TrimSpace(name)
	if name == "" || score < 0 {
		log.Debug().Str("name", name).Int("score", score).Msg("skip invalid score record")
		return
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		name = string([]rune(name)[:maxNameLen])
	}

	recs := append(s.load(ctx), Record{Name: name, Score: score, Date: time.Now().UTC()})
	buf, err := json.Marshal(recs)
	if err != nil {
		log.Warn().Err(err).Msg("marshal scores")
		return
	}
	if err := s.kv.Put(ctx, StorageKey, buf); err != nil {
		log.Warn().Err(err).Msg("persist scores")
	}
}

// load reads the full collection, degrading to empty on any failure.
func (s *Store) load(ctx context.Context) []Record {
	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warn().Err(err).Msg("read scores")
		}
		return nil
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		log.Warn().Err(err).Msg("corrupt score blob, treating as empty")
		return nil
	}
	return recs
}
