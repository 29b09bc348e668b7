package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"football_bot/internal/model"
)

type fakeLoader struct {
	mu    sync.Mutex
	teams []model.Team
	err   error
	calls int
}

func (f *fakeLoader) LoadTeams(_ context.Context) ([]model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.teams, nil
}

func (f *fakeLoader) set(teams []model.Team, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams, f.err = teams, err
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var turkish = []model.Team{
	{ID: "133610", Name: "Besiktas", AlternateName: "Beşiktaş JK", League: "Turkish Super League", Country: "Turkey"},
	{ID: "133612", Name: "Galatasaray", League: "Turkish Super League", Country: "Turkey"},
	{ID: "133611", Name: "Fenerbahce", League: "Turkish Super League", Country: "Turkey"},
}

var english = []model.Team{
	{ID: "133604", Name: "Arsenal", League: "English Premier League", Country: "England"},
}

func newTestCache(loader Loader) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	return New(loader, 30*time.Minute, WithClock(clock.Now)), clock
}

func TestGetAllWithinTTL(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{teams: turkish}
	c, clock := newTestCache(loader)

	first := c.GetAll(ctx)
	clock.Advance(29 * time.Minute)
	second := c.GetAll(ctx)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ within TTL (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(1, loader.callCount()); diff != "" {
		t.Errorf("loader calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Fresh, c.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
}

func TestGetAllRefreshesWhenStale(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{teams: turkish}
	c, clock := newTestCache(loader)

	c.GetAll(ctx)
	loader.set(english, nil)
	clock.Advance(30 * time.Minute)

	if diff := cmp.Diff(Stale, c.State()); diff != "" {
		t.Errorf("state at TTL (-want +got):\n%s", diff)
	}
	got := c.GetAll(ctx)
	if diff := cmp.Diff(english, got); diff != "" {
		t.Errorf("snapshot not replaced (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(2, loader.callCount()); diff != "" {
		t.Errorf("loader calls (-want +got):\n%s", diff)
	}
	if snap := c.Snapshot(); snap == nil || !snap.FetchedAt.Equal(clock.Now()) {
		t.Errorf("FetchedAt not updated: %+v", snap)
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{teams: turkish}
	c, clock := newTestCache(loader)

	c.GetAll(ctx)
	loader.set(nil, errors.New("row store unavailable"))
	clock.Advance(time.Hour)

	got := c.GetAll(ctx)
	if diff := cmp.Diff(turkish, got); diff != "" {
		t.Errorf("expected last-known-good snapshot (-want +got):\n%s", diff)
	}

	// The failed refresh must not look like a successful one.
	c.GetAll(ctx)
	if diff := cmp.Diff(3, loader.callCount()); diff != "" {
		t.Errorf("loader calls (-want +got):\n%s", diff)
	}
}

func TestRefreshFailureWithoutSnapshot(t *testing.T) {
	c, _ := newTestCache(&fakeLoader{err: errors.New("boom")})
	if got := c.GetAll(context.Background()); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if c.Snapshot() != nil {
		t.Error("expected no snapshot")
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(&fakeLoader{teams: turkish})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "substring ignores case", query: "GALATA", want: []string{"133612"}},
		{name: "alternate name", query: "beşiktaş", want: []string{"133610"}},
		{name: "shared substring", query: "a", want: []string{"133610", "133612", "133611"}},
		{name: "no match", query: "arsenal", want: nil},
		{name: "blank", query: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, team := range c.Search(ctx, tt.query) {
				got = append(got, team.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q) ids (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestByLeagueIgnoresCase(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(&fakeLoader{teams: append(append([]model.Team{}, turkish...), english...)})

	lower := c.ByLeague(ctx, "turkish super league")
	proper := c.ByLeague(ctx, "Turkish Super League")

	if diff := cmp.Diff(proper, lower); diff != "" {
		t.Errorf("case changed result (-proper +lower):\n%s", diff)
	}
	if diff := cmp.Diff(turkish, proper); diff != "" {
		t.Errorf("ByLeague mismatch (-want +got):\n%s", diff)
	}
	if got := c.ByLeague(ctx, "Turkish Super"); got != nil {
		t.Errorf("partial league name matched: %v", got)
	}
}

func TestColdCacheThenLeague(t *testing.T) {
	ctx := context.Background()
	teams := []model.Team{
		{ID: "1", Name: "A", League: "X"},
		{ID: "2", Name: "B", League: "X"},
		{ID: "3", Name: "C", League: "X"},
	}
	loader := &fakeLoader{teams: teams}
	c, _ := newTestCache(loader)

	c.GetAll(ctx)
	got := c.ByLeague(ctx, "X")

	if diff := cmp.Diff(teams, got); diff != "" {
		t.Errorf("ByLeague mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(1, loader.callCount()); diff != "" {
		t.Errorf("loader calls (-want +got):\n%s", diff)
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{teams: turkish}
	c, _ := newTestCache(loader)

	c.GetAll(ctx)
	c.Invalidate()
	if diff := cmp.Diff(Stale, c.State()); diff != "" {
		t.Errorf("state after invalidate (-want +got):\n%s", diff)
	}
	c.GetAll(ctx)
	if diff := cmp.Diff(2, loader.callCount()); diff != "" {
		t.Errorf("loader calls (-want +got):\n%s", diff)
	}
}

// hookLoader calls during once, after the first load has read its teams.
type hookLoader struct {
	fakeLoader
	during func()
}

func (h *hookLoader) LoadTeams(ctx context.Context) ([]model.Team, error) {
	teams, err := h.fakeLoader.LoadTeams(ctx)
	if h.during != nil {
		h.during()
		h.during = nil
	}
	return teams, err
}

func TestInvalidateDuringRefreshDiscardsLoad(t *testing.T) {
	ctx := context.Background()
	loader := &hookLoader{fakeLoader: fakeLoader{teams: turkish}}
	c, _ := newTestCache(loader)
	loader.during = func() {
		loader.set(append(append([]model.Team{}, turkish...), english...), nil)
		c.Invalidate()
	}

	if diff := cmp.Diff(turkish, c.GetAll(ctx)); diff != "" {
		t.Errorf("first read (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Stale, c.State()); diff != "" {
		t.Errorf("state after overlapping invalidate (-want +got):\n%s", diff)
	}
	if got := c.GetAll(ctx); len(got) != len(turkish)+len(english) {
		t.Errorf("got %d teams after reload, want %d", len(got), len(turkish)+len(english))
	}
	if diff := cmp.Diff(2, loader.callCount()); diff != "" {
		t.Errorf("loader calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Fresh, c.State()); diff != "" {
		t.Errorf("state after reload (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(&fakeLoader{teams: turkish})

	got, ok := c.Lookup(ctx, " 0133612")
	if !ok {
		t.Fatal("expected team to be found")
	}
	if diff := cmp.Diff("Galatasaray", got.Name); diff != "" {
		t.Errorf("team name (-want +got):\n%s", diff)
	}
	if _, ok := c.Lookup(ctx, "999"); ok {
		t.Error("unexpected match for unknown id")
	}
}

func TestConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(&fakeLoader{teams: turkish})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.GetAll(ctx); len(got) != len(turkish) {
				t.Errorf("got %d teams, want %d", len(got), len(turkish))
			}
		}()
	}
	wg.Wait()
}
