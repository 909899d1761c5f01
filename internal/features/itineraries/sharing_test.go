package itineraries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	errs "github.com/lumafilm/locsched/pkg/errors"
)

type fakeStore struct {
	byToken map[string]*Itinerary
	saves   int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byToken: make(map[string]*Itinerary)}
}

func (f *fakeStore) FindByToken(_ context.Context, shareToken string) (*Itinerary, error) {
	it, ok := f.byToken[shareToken]
	if !ok || !it.IsShared {
		return nil, nil
	}
	return it, nil
}

func (f *fakeStore) SaveShareState(_ context.Context, itinerary *Itinerary) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	for token, it := range f.byToken {
		if it == itinerary {
			delete(f.byToken, token)
		}
	}
	if itinerary.ShareToken != "" {
		f.byToken[itinerary.ShareToken] = itinerary
	}
	return nil
}

type fakeOwners struct {
	owner *OwnerInfo
}

func (f *fakeOwners) GetOwner(_ context.Context, _ string) (*OwnerInfo, error) {
	if f.owner == nil {
		return nil, errors.New("owner not found")
	}
	return f.owner, nil
}

func testItinerary() *Itinerary {
	return &Itinerary{
		UserID: "user-1",
		Title:  "Day 3 - Downtown",
		Date:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Locations: []Location{
			{SetName: "Rooftop", Address: "1 Main St", Status: StatusPending},
		},
	}
}

func newTestService(store ShareStore) *Service {
	return NewService(store, &fakeOwners{owner: &OwnerInfo{Name: "Ada", Email: "ada@example.com"}})
}

func TestEnableSharingGeneratesTokenAndHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	token, sharedWith, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", nil)
	require.NoError(t, err)

	assert.Len(t, token, 32)
	assert.Equal(t, []string{"crew@example.com"}, sharedWith)
	assert.True(t, it.IsShared)
	assert.NotEqual(t, "abcd", it.SharePassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(it.SharePassword), []byte("abcd")))
	assert.Equal(t, 1, store.saves)
}

func TestEnableSharingPasswordTooShort(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, _, err := svc.EnableSharing(context.Background(), testItinerary(), []string{"crew@example.com"}, "abc", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Equal(t, 0, store.saves)
}

func TestEnableSharingRequiresRecipient(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, _, err := svc.EnableSharing(context.Background(), testItinerary(), nil, "abcd", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestEnableSharingTokenStableAcrossCalls(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	first, _, err := svc.EnableSharing(context.Background(), it, []string{"a@example.com"}, "abcd", nil)
	require.NoError(t, err)

	second, _, err := svc.EnableSharing(context.Background(), it, []string{"b@example.com"}, "newpass", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEnableSharingMergesRecipients(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	_, _, err := svc.EnableSharing(context.Background(), it, []string{"a@example.com", "b@example.com"}, "abcd", nil)
	require.NoError(t, err)

	_, sharedWith, err := svc.EnableSharing(context.Background(), it, []string{"B@Example.com", "c@example.com"}, "abcd", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, sharedWith)
}

func TestEnableSharingNotifyRunsBeforePersist(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	var notifiedToken string
	var notifiedRecipients []string
	notify := func(token string, recipients []string) error {
		notifiedToken = token
		notifiedRecipients = recipients
		assert.Equal(t, 0, store.saves)
		return nil
	}

	token, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", notify)
	require.NoError(t, err)

	assert.Equal(t, token, notifiedToken)
	assert.Equal(t, []string{"crew@example.com"}, notifiedRecipients)
	assert.Equal(t, 1, store.saves)
}

func TestEnableSharingNotifyFailureLeavesStoreUntouched(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	notify := func(string, []string) error {
		return errors.New("smtp connection refused")
	}

	_, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", notify)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrMailDelivery))
	assert.Equal(t, 0, store.saves)
	assert.Empty(t, store.byToken)
}

func TestEnableSharingPersistFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("mongo: connection reset")
	svc := newTestService(store)

	_, _, err := svc.EnableSharing(context.Background(), testItinerary(), []string{"crew@example.com"}, "abcd", nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, errs.ErrValidation))
	assert.False(t, errors.Is(err, errs.ErrMailDelivery))
}

func TestAccessSharedHappyPath(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	token, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", nil)
	require.NoError(t, err)

	view, err := svc.AccessShared(context.Background(), token, "abcd")
	require.NoError(t, err)

	assert.Equal(t, it.Title, view.Title)
	assert.Equal(t, it.Date, view.Date)
	assert.Len(t, view.Locations, 1)
	assert.Equal(t, "Ada", view.Owner.Name)
	assert.Equal(t, "ada@example.com", view.Owner.Email)
}

func TestAccessSharedWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	token, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", nil)
	require.NoError(t, err)

	view, err := svc.AccessShared(context.Background(), token, "wrong")
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, errs.ErrUnauthorized))
}

func TestAccessSharedUnknownToken(t *testing.T) {
	svc := newTestService(newFakeStore())

	view, err := svc.AccessShared(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef", "abcd")
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestAccessSharedStaleTokenAfterUnshare(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	token, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", nil)
	require.NoError(t, err)
	require.NoError(t, svc.DisableSharing(context.Background(), it))

	view, err := svc.AccessShared(context.Background(), token, "abcd")
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestAccessSharedNilLocationsBecomesEmptySlice(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()
	it.Locations = nil

	token, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", nil)
	require.NoError(t, err)

	view, err := svc.AccessShared(context.Background(), token, "abcd")
	require.NoError(t, err)
	assert.NotNil(t, view.Locations)
	assert.Empty(t, view.Locations)
}

func TestDisableSharingClearsState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	_, _, err := svc.EnableSharing(context.Background(), it, []string{"crew@example.com"}, "abcd", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DisableSharing(context.Background(), it))
	assert.False(t, it.IsShared)
	assert.Empty(t, it.ShareToken)
	assert.Empty(t, it.SharePassword)
}

func TestDisableSharingIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	it := testItinerary()

	require.NoError(t, svc.DisableSharing(context.Background(), it))
	assert.Equal(t, 0, store.saves)
}

func TestMergeRecipients(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{
			name:     "empty existing",
			incoming: []string{"a@example.com"},
			want:     []string{"a@example.com"},
		},
		{
			name:     "case insensitive dedup",
			existing: []string{"a@example.com"},
			incoming: []string{"A@EXAMPLE.COM", "b@example.com"},
			want:     []string{"a@example.com", "b@example.com"},
		},
		{
			name:     "whitespace trimmed and blanks dropped",
			incoming: []string{"  a@example.com ", "", "a@example.com"},
			want:     []string{"a@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeRecipients(tt.existing, tt.incoming))
		})
	}
}
