package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mealbridge/donor-cli/internal/foodposts"
	"github.com/mealbridge/donor-cli/internal/listing"
)

// Gateway is the slice of the remote client the store drives.
type Gateway interface {
	List(ctx context.Context) ([]foodposts.Listing, error)
	Remove(ctx context.Context, id string) error
}

// Confirmer approves a destructive operation before any network call is made.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Cache receives the raw snapshot after a successful refresh, so the next
// start has content before its first fetch lands. Cache failures never fail a
// refresh.
type Cache interface {
	ReplaceListings(ctx context.Context, listings []foodposts.Listing) error
}

// Store holds the donor's current listing collection in insertion order. It
// is the single source of truth the presentation layer reads, and it is
// mutated only through Refresh, Delete and AppendCreated. Failures never
// escape those operations; they land in the error slot and callers observe
// them through state.
type Store struct {
	gateway Gateway
	confirm Confirmer
	cache   Cache
	nowFn   func() time.Time
	logger  *slog.Logger

	mu       sync.Mutex
	listings []listing.View
	index    map[string]int
	loading  bool
	lastErr  string
}

func New(gateway Gateway, confirm Confirmer, cache Cache, nowFn func() time.Time, logger *slog.Logger, initial []listing.View) *Store {
	if nowFn == nil {
		nowFn = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		gateway:  gateway,
		confirm:  confirm,
		cache:    cache,
		nowFn:    nowFn,
		logger:   logger,
		listings: append([]listing.View(nil), initial...),
		index:    make(map[string]int, len(initial)),
	}
	for i, v := range s.listings {
		s.index[v.ID] = i
	}
	return s
}

// Refresh replaces the whole collection from the gateway. It is
// all-or-nothing: on any failure the previous collection stands untouched and
// only the error slot changes. Every record in one refresh decodes against
// the same evaluation timestamp, so all remaining-hours values agree.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	records, err := s.gateway.List(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = "could not load listings: " + err.Error()
		s.mu.Unlock()
		s.logger.Error("refresh failed", "err", err)
		return
	}

	now := s.nowFn()
	views := make([]listing.View, 0, len(records))
	index := make(map[string]int, len(records))
	for _, record := range records {
		index[record.ID] = len(views)
		views = append(views, listing.Decode(record, now))
	}
	s.listings = views
	s.index = index
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.ReplaceListings(ctx, records); err != nil {
			s.logger.Warn("could not cache listing snapshot", "err", err)
		}
	}
}

// Delete asks the confirmer, removes the listing on the server, and only
// after a confirmed success drops it locally. Nothing ever needs rolling
// back: the collection does not change before the server agrees. A declined
// confirmation is a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	title := s.listings[i].Title
	s.mu.Unlock()

	if s.confirm == nil || !s.confirm.Confirm(fmt.Sprintf("Delete listing %q?", title)) {
		return
	}

	if err := s.gateway.Remove(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = "could not delete listing: " + err.Error()
		s.mu.Unlock()
		s.logger.Error("delete failed", "id", id, "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok = s.index[id]
	if !ok {
		return
	}
	s.listings = append(s.listings[:i], s.listings[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.listings); j++ {
		s.index[s.listings[j].ID] = j
	}
	s.lastErr = ""
}

// AppendCreated decodes and inserts a freshly created server record, making
// it visible without a full refresh.
func (s *Store) AppendCreated(record foodposts.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := listing.Decode(record, s.nowFn())
	if i, ok := s.index[record.ID]; ok {
		s.listings[i] = view
		return
	}
	s.index[record.ID] = len(s.listings)
	s.listings = append(s.listings, view)
}

// Listings returns a copy of the collection in insertion order.
func (s *Store) Listings() []listing.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]listing.View(nil), s.listings...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is the last operation failure, empty when the last operation succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
