package itineraries

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/lumafilm/locsched/pkg/errors"
)

// shareTokenBytes gives 128 bits of entropy, hex-encoded to 32 characters.
const shareTokenBytes = 16

// ShareStore is the persistence surface the sharing service needs.
// *Repository implements it; tests use an in-memory fake.
type ShareStore interface {
	FindByToken(ctx context.Context, shareToken string) (*Itinerary, error)
	SaveShareState(ctx context.Context, itinerary *Itinerary) error
}

// OwnerSource resolves an itinerary owner's public identity.
type OwnerSource interface {
	GetOwner(ctx context.Context, userID string) (*OwnerInfo, error)
}

// NotifyFunc delivers the share notification to the full recipient list.
// Called with the token and merged recipients before anything is persisted.
type NotifyFunc func(shareToken string, recipients []string) error

// Service manages the password-gated public read view of itineraries.
type Service struct {
	store  ShareStore
	owners OwnerSource
}

func NewService(store ShareStore, owners OwnerSource) *Service {
	return &Service{store: store, owners: owners}
}

// EnableSharing validates the request, merges the recipient list, hashes the
// password and generates a token if the itinerary doesn't have one yet. The
// notification runs before the share state is persisted: if delivery fails
// the itinerary is left untouched, so a "shared" itinerary always means the
// recipients were told about it.
func (s *Service) EnableSharing(ctx context.Context, itinerary *Itinerary, emails []string, password string, notify NotifyFunc) (string, []string, error) {
	if err := ValidateShare(emails, password); err != nil {
		return "", nil, fmt.Errorf("%w: %s", errs.ErrValidation, err.Error())
	}

	if itinerary.ShareToken == "" {
		token, err := newShareToken()
		if err != nil {
			return "", nil, err
		}
		itinerary.ShareToken = token
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	itinerary.SharePassword = string(hash)

	itinerary.SharedWith = mergeRecipients(itinerary.SharedWith, emails)
	itinerary.IsShared = true

	if notify != nil {
		if err := notify(itinerary.ShareToken, itinerary.SharedWith); err != nil {
			return "", nil, fmt.Errorf("%w: %s", errs.ErrMailDelivery, err.Error())
		}
	}

	if err := s.store.SaveShareState(ctx, itinerary); err != nil {
		return "", nil, err
	}

	return itinerary.ShareToken, itinerary.SharedWith, nil
}

// DisableSharing clears the token and password hash. Calling it on an
// already-unshared itinerary succeeds with no observable change.
func (s *Service) DisableSharing(ctx context.Context, itinerary *Itinerary) error {
	if !itinerary.IsShared && itinerary.ShareToken == "" && itinerary.SharePassword == "" {
		return nil
	}

	itinerary.IsShared = false
	itinerary.ShareToken = ""
	itinerary.SharePassword = ""

	return s.store.SaveShareState(ctx, itinerary)
}

// AccessShared returns the sanitized view of a shared itinerary. Unknown
// token, unshared itinerary and stale token all come back as ErrNotFound so
// callers can't probe which itineraries exist. A wrong password is
// ErrUnauthorized with no itinerary data attached.
func (s *Service) AccessShared(ctx context.Context, shareToken, password string) (*SharedItineraryView, error) {
	itinerary, err := s.store.FindByToken(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	if itinerary == nil || !itinerary.IsShared || itinerary.SharePassword == "" {
		return nil, errs.ErrNotFound
	}

	// bcrypt comparison is constant-time over the hash
	if err := bcrypt.CompareHashAndPassword([]byte(itinerary.SharePassword), []byte(password)); err != nil {
		return nil, errs.ErrUnauthorized
	}

	view := &SharedItineraryView{
		Title:         itinerary.Title,
		Date:          itinerary.Date,
		StartLocation: itinerary.StartLocation,
		EndLocation:   itinerary.EndLocation,
		Locations:     itinerary.Locations,
	}
	if view.Locations == nil {
		view.Locations = []Location{}
	}

	if s.owners != nil {
		if owner, err := s.owners.GetOwner(ctx, itinerary.UserID); err == nil && owner != nil {
			view.Owner = *owner
		}
	}

	return view, nil
}

func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// mergeRecipients appends new addresses to the existing set, deduplicated
// case-insensitively, preserving first-seen order.
func mergeRecipients(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))

	for _, list := range [][]string{existing, incoming} {
		for _, email := range list {
			normalized := strings.ToLower(strings.TrimSpace(email))
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			merged = append(merged, normalized)
		}
	}

	return merged
}
