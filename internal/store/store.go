// Package store is the single-writer container for the movie collection.
//
// Every transition goes through dispatch, which applies the pure reducer under
// a lock. Readers get deep-copied snapshots, so a snapshot held by the UI never
// changes underneath it.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/logging"
)

// ErrStale is returned by Load when a newer fetch superseded the ticket.
var ErrStale = errors.New("store: fetch superseded")

// Provider delivers the full catalog.
type Provider interface {
	Movies(ctx context.Context) ([]catalog.Record, error)
}

// Ticket identifies one fetch started with Begin.
type Ticket struct {
	seq   uint64
	prior Status
}

// Store holds the authoritative movie collection.
type Store struct {
	provider Provider
	log      zerolog.Logger

	mu    sync.Mutex
	state State
	seq   uint64
}

// New returns an idle, empty store reading from provider.
func New(provider Provider) *Store {
	return &Store{
		provider: provider,
		log:      logging.With().Str("component", "store").Logger(),
		state:    State{Status: StatusIdle},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Movies = catalog.Clone(st.Movies)
	return st
}

func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	status := s.state.Status
	s.mu.Unlock()
	s.log.Debug().Str("action", fmt.Sprintf("%T", a)).Str("status", string(status)).Msg("dispatch")
}

// FetchAll replaces the collection with the provider's.
func (s *Store) FetchAll(ctx context.Context) error {
	return s.Load(ctx, s.Begin())
}

// Begin marks the store loading and clears any previous error. The returned
// ticket supersedes every earlier one.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	s.seq++
	prior := s.state.Status
	// The status a suppressed fetch settles back to: a superseded fetch may
	// still be loading, and pending clears the error message.
	if prior == StatusLoading || prior == StatusError {
		prior = StatusIdle
		if len(s.state.Movies) > 0 {
			prior = StatusLoaded
		}
	}
	t := Ticket{seq: s.seq, prior: prior}
	s.mu.Unlock()
	s.dispatch(fetchPending{})
	return t
}

// Load waits for the provider and applies its result for ticket t.
//
// Provider failures are recorded in the state and returned. When ctx is
// cancelled, or a newer ticket exists, the result is dropped: the store only
// leaves the loading status and Load returns ctx.Err() or ErrStale.
func (s *Store) Load(ctx context.Context, t Ticket) error {
	records, err := s.provider.Movies(ctx)

	s.mu.Lock()
	current := t.seq == s.seq
	s.mu.Unlock()

	if !current {
		s.log.Debug().Uint64("ticket", t.seq).Msg("dropping superseded fetch")
		return ErrStale
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.log.Debug().Uint64("ticket", t.seq).Msg("fetch cancelled")
		s.dispatch(fetchSettled{prior: t.prior})
		return ctxErr
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("fetch movies")
		s.dispatch(fetchRejected{message: err.Error()})
		return fmt.Errorf("fetch movies: %w", err)
	}
	s.dispatch(fetchFulfilled{movies: catalog.FromRecords(records)})
	s.log.Info().Int("count", len(records)).Msg("movies loaded")
	return nil
}

// Delete removes the movie with id. Unknown ids are ignored.
func (s *Store) Delete(id string) { s.dispatch(deleteMovie{id: id}) }

// Like counts a like unless the movie is already liked, and clears its
// disliked flag. Unknown ids are ignored.
func (s *Store) Like(id string) { s.dispatch(addLike{id: id}) }

// Dislike mirrors Like.
func (s *Store) Dislike(id string) { s.dispatch(addDislike{id: id}) }
