package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mealbridge/donor-cli/internal/foodposts"
	"github.com/mealbridge/donor-cli/internal/listing"
	"github.com/mealbridge/donor-cli/internal/search"
)

type fakeGateway struct {
	listings    []foodposts.Listing
	listErr     error
	removeErr   error
	listCalls   int
	removeCalls int
	removedIDs  []string
}

func (f *fakeGateway) List(ctx context.Context) ([]foodposts.Listing, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listings, nil
}

func (f *fakeGateway) Remove(ctx context.Context, id string) error {
	f.removeCalls++
	f.removedIDs = append(f.removedIDs, id)
	return f.removeErr
}

type fakeCache struct {
	snapshots [][]foodposts.Listing
	err       error
}

func (f *fakeCache) ReplaceListings(ctx context.Context, listings []foodposts.Listing) error {
	f.snapshots = append(f.snapshots, listings)
	return f.err
}

func accept() Confirmer  { return ConfirmerFunc(func(string) bool { return true }) }
func decline() Confirmer { return ConfirmerFunc(func(string) bool { return false }) }

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
}

func wireFixtures() []foodposts.Listing {
	return []foodposts.Listing{
		{ID: "1", Title: "Day-old bread", OrganizationName: "City Bakery", DietaryRestrictions: "Vegan", ExpirationDate: "2026-08-25T13:30:00Z"},
		{ID: "2", Title: "Vegetable soup", OrganizationName: "Soup Kitchen", ExpirationDate: "2026-08-25T12:30:00Z"},
	}
}

func TestRefresh_ReplacesCollectionWithSharedTimestamp(t *testing.T) {
	gateway := &fakeGateway{listings: wireFixtures()}
	s := New(gateway, accept(), nil, fixedClock(), nil, nil)

	s.Refresh(context.Background())

	require.Empty(t, s.Err())
	require.False(t, s.Loading())

	got := s.Listings()
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "2", got[1].ID)
	// Both durations derive from the same evaluation instant.
	require.Equal(t, 2, got[0].DurationHours)
	require.Equal(t, 1, got[1].DurationHours)
}

func TestRefresh_FailureLeavesPreviousCollection(t *testing.T) {
	clock := fixedClock()
	initial := []listing.View{listing.Decode(wireFixtures()[0], clock())}
	gateway := &fakeGateway{listErr: &foodposts.HTTPError{Status: 500, Message: "boom"}}
	s := New(gateway, accept(), nil, clock, nil, initial)

	s.Refresh(context.Background())

	require.NotEmpty(t, s.Err())
	require.Contains(t, s.Err(), "boom")
	require.Len(t, s.Listings(), 1, "failed refresh must not touch the collection")
	require.Equal(t, "1", s.Listings()[0].ID)
}

func TestRefresh_WritesSnapshotToCache(t *testing.T) {
	gateway := &fakeGateway{listings: wireFixtures()}
	cache := &fakeCache{}
	s := New(gateway, accept(), cache, fixedClock(), nil, nil)

	s.Refresh(context.Background())

	require.Len(t, cache.snapshots, 1)
	require.Len(t, cache.snapshots[0], 2)
}

func TestRefresh_SuccessClearsPreviousError(t *testing.T) {
	gateway := &fakeGateway{listErr: &foodposts.HTTPError{Status: 500}}
	s := New(gateway, accept(), nil, fixedClock(), nil, nil)

	s.Refresh(context.Background())
	require.NotEmpty(t, s.Err())

	gateway.listErr = nil
	gateway.listings = wireFixtures()
	s.Refresh(context.Background())
	require.Empty(t, s.Err())
	require.Len(t, s.Listings(), 2)
}

func TestDelete_DeclinedConfirmationIsSilentNoOp(t *testing.T) {
	clock := fixedClock()
	gateway := &fakeGateway{listings: wireFixtures()}
	s := New(gateway, decline(), nil, clock, nil, nil)
	s.Refresh(context.Background())

	s.Delete(context.Background(), "1")

	require.Zero(t, gateway.removeCalls, "declined confirmation must not reach the network")
	require.Len(t, s.Listings(), 2)
	require.Empty(t, s.Err())
}

func TestDelete_GatewayRejectionLeavesCollectionIntact(t *testing.T) {
	gateway := &fakeGateway{listings: wireFixtures(), removeErr: &foodposts.HTTPError{Status: 404, Message: "post not found"}}
	s := New(gateway, accept(), nil, fixedClock(), nil, nil)
	s.Refresh(context.Background())
	before := len(s.Listings())

	s.Delete(context.Background(), "1")

	require.Equal(t, before, len(s.Listings()))
	require.NotEmpty(t, s.Err())
	require.Contains(t, s.Err(), "post not found")
}

func TestDelete_RemovesOnlyAfterConfirmedSuccess(t *testing.T) {
	gateway := &fakeGateway{listings: wireFixtures()}
	s := New(gateway, accept(), nil, fixedClock(), nil, nil)
	s.Refresh(context.Background())

	s.Delete(context.Background(), "1")

	require.Equal(t, []string{"1"}, gateway.removedIDs)
	got := s.Listings()
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	// Remaining entries stay addressable after reindexing.
	s.Delete(context.Background(), "2")
	require.Empty(t, s.Listings())
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	gateway := &fakeGateway{listings: wireFixtures()}
	s := New(gateway, accept(), nil, fixedClock(), nil, nil)
	s.Refresh(context.Background())

	s.Delete(context.Background(), "no-such-id")

	require.Zero(t, gateway.removeCalls)
	require.Len(t, s.Listings(), 2)
}

func TestAppendCreated_MakesListingVisibleToSearch(t *testing.T) {
	gateway := &fakeGateway{listings: wireFixtures()}
	s := New(gateway, accept(), nil, fixedClock(), nil, nil)
	s.Refresh(context.Background())

	s.AppendCreated(foodposts.Listing{
		ID:                  "9",
		Title:               "Rescue pastries",
		OrganizationName:    "City Bakery",
		DietaryRestrictions: "Vegetarian",
		ExpirationDate:      "2026-08-26T12:00:00Z",
	})

	got := s.Listings()
	require.Len(t, got, 3)
	require.Equal(t, "9", got[2].ID, "created listing appends at the end")

	matched := search.Filter(got, "pastries")
	require.Len(t, matched, 1)
	require.Equal(t, "9", matched[0].ID)
}
