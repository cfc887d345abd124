package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/filmotheque/internal/catalog"
)

type fakeProvider struct {
	records []catalog.Record
	err     error
	calls   int
	// hook runs inside Movies, before it returns.
	hook func()
}

func (p *fakeProvider) Movies(ctx context.Context) ([]catalog.Record, error) {
	p.calls++
	if p.hook != nil {
		p.hook()
	}
	if p.err != nil {
		return nil, p.err
	}
	out := make([]catalog.Record, len(p.records))
	copy(out, p.records)
	return out, nil
}

func seedRecords() []catalog.Record {
	return []catalog.Record{
		{ID: "1", Title: "Oceans 8", Category: "Comedy", Likes: 4, Dislikes: 1},
		{ID: "2", Title: "Midnight Sun", Category: "Comedy", Likes: 2, Dislikes: 0},
		{ID: "3", Title: "Les indestructibles 2", Category: "Animation", Likes: 3, Dislikes: 1},
	}
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := New(&fakeProvider{records: seedRecords()})
	require.NoError(t, s.FetchAll(context.Background()))
	return s
}

func TestFetchAllReplacesCollection(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{records: seedRecords()}
	s := New(p)
	require.Equal(t, StatusIdle, s.Snapshot().Status)

	require.NoError(t, s.FetchAll(context.Background()))
	st := s.Snapshot()
	require.Equal(t, StatusLoaded, st.Status)
	require.False(t, st.Loading())
	require.Empty(t, st.Err)
	require.Len(t, st.Movies, 3)
	for _, m := range st.Movies {
		require.False(t, m.Liked)
		require.False(t, m.Disliked)
	}

	s.Like("1")
	p.records = p.records[:1]
	require.NoError(t, s.FetchAll(context.Background()))
	st = s.Snapshot()
	require.Len(t, st.Movies, 1)
	require.False(t, st.Movies[0].Liked, "refetch replaces, never merges")
	require.Equal(t, 4, st.Movies[0].Likes)
}

func TestBeginMarksLoading(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{records: seedRecords()}
	s := New(p)
	var during State
	p.hook = func() { during = s.Snapshot() }

	require.NoError(t, s.FetchAll(context.Background()))
	require.True(t, during.Loading())
	require.Empty(t, during.Err)
}

func TestFetchFailureKeepsMovies(t *testing.T) {
	t.Parallel()

	s := loadedStore(t)
	s.Like("2")
	before := s.Snapshot().Movies

	s.provider = &fakeProvider{err: errors.New("network error")}
	err := s.FetchAll(context.Background())
	require.Error(t, err)

	st := s.Snapshot()
	require.Equal(t, "network error", st.Err)
	require.False(t, st.Loading())
	require.Equal(t, StatusError, st.Status)
	require.Equal(t, before, st.Movies)
}

func TestFetchFailureWithoutMessage(t *testing.T) {
	t.Parallel()

	s := New(&fakeProvider{err: errors.New("")})
	require.Error(t, s.FetchAll(context.Background()))
	require.Equal(t, DefaultErrorMessage, s.Snapshot().Err)
}

func TestNextFetchClearsError(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{err: errors.New("boom")}
	s := New(p)
	require.Error(t, s.FetchAll(context.Background()))
	p.err = nil
	p.records = seedRecords()
	require.NoError(t, s.FetchAll(context.Background()))
	require.Empty(t, s.Snapshot().Err)
}

func TestCancelledFetchIsSuppressed(t *testing.T) {
	t.Parallel()

	s := loadedStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	s.provider = &fakeProvider{records: seedRecords()[:1], hook: cancel}

	err := s.FetchAll(ctx)
	require.ErrorIs(t, err, context.Canceled)

	st := s.Snapshot()
	require.Len(t, st.Movies, 3)
	require.Equal(t, StatusLoaded, st.Status)
	require.Empty(t, st.Err)
}

func TestSupersededFetchIsDropped(t *testing.T) {
	t.Parallel()

	s := New(&fakeProvider{records: seedRecords()[:1]})
	old := s.Begin()
	fresh := s.Begin()

	require.ErrorIs(t, s.Load(context.Background(), old), ErrStale)
	require.True(t, s.Snapshot().Loading(), "newer fetch still owns the status")

	require.NoError(t, s.Load(context.Background(), fresh))
	require.Len(t, s.Snapshot().Movies, 1)
}

func TestLikeIsIdempotent(t *testing.T) {
	t.Parallel()

	s := loadedStore(t)
	s.Like("1")
	m, _ := s.Snapshot().Movie("1")
	require.Equal(t, 5, m.Likes)
	require.True(t, m.Liked)
	require.False(t, m.Disliked)

	s.Like("1")
	m, _ = s.Snapshot().Movie("1")
	require.Equal(t, 5, m.Likes)
	require.True(t, m.Liked)
}

func TestLikeThenDislike(t *testing.T) {
	t.Parallel()

	s := New(&fakeProvider{records: []catalog.Record{{ID: "1", Title: "One", Category: "A"}}})
	require.NoError(t, s.FetchAll(context.Background()))

	s.Like("1")
	s.Dislike("1")
	m, ok := s.Snapshot().Movie("1")
	require.True(t, ok)
	require.Equal(t, 1, m.Likes, "likes are not decremented")
	require.Equal(t, 1, m.Dislikes)
	require.False(t, m.Liked)
	require.True(t, m.Disliked)

	s.Dislike("1")
	m, _ = s.Snapshot().Movie("1")
	require.Equal(t, 1, m.Dislikes)
}

func TestLikeDislikeNeverBothSet(t *testing.T) {
	t.Parallel()

	s := loadedStore(t)
	seq := []string{"like", "dislike", "dislike", "like", "like", "dislike"}
	for _, op := range seq {
		if op == "like" {
			s.Like("3")
		} else {
			s.Dislike("3")
		}
		m, _ := s.Snapshot().Movie("3")
		require.False(t, m.Liked && m.Disliked)
	}
	m, _ := s.Snapshot().Movie("3")
	// Transitions into liked: 2; into disliked: 2.
	require.Equal(t, 3+2, m.Likes)
	require.Equal(t, 1+2, m.Dislikes)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"1", "2", "3"} {
		s := loadedStore(t)
		before := s.Snapshot().Movies
		s.Delete(id)
		after := s.Snapshot().Movies
		require.Len(t, after, 2)
		var want []catalog.Movie
		for _, m := range before {
			if m.ID != id {
				want = append(want, m)
			}
		}
		require.Equal(t, want, after)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	t.Parallel()

	s := loadedStore(t)
	before := s.Snapshot()
	s.Delete("nope")
	s.Like("nope")
	s.Dislike("nope")
	require.Equal(t, before, s.Snapshot())
}

func TestSnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	s := loadedStore(t)
	snap := s.Snapshot()
	snap.Movies[0].Title = "changed"
	s.Like("1")

	require.Equal(t, "Oceans 8", s.Snapshot().Movies[0].Title)
	require.False(t, snap.Movies[0].Liked)
}
