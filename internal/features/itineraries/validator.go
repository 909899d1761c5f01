package itineraries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lumafilm/locsched/internal/pkg/validator"
)

const minSharePasswordLength = 4

func validStatus(status string) bool {
	switch status {
	case "", StatusPending, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

func validateLocations(locations []Location) error {
	for i, loc := range locations {
		if strings.TrimSpace(loc.SetName) == "" {
			return fmt.Errorf("location %d: set name is required", i+1)
		}
		if strings.TrimSpace(loc.Address) == "" {
			return fmt.Errorf("location %d: address is required", i+1)
		}
		if !validStatus(loc.Status) {
			return fmt.Errorf("location %d: status must be pending, completed or skipped", i+1)
		}
		if loc.ContactPhone != "" && !validator.IsValidPhone(loc.ContactPhone) {
			return fmt.Errorf("location %d: contact phone is not a valid phone number", i+1)
		}
	}
	return nil
}

// ValidateCreate checks an itinerary creation request
func ValidateCreate(req *CreateItineraryRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title is required")
	}
	if req.Date == nil {
		return errors.New("date is required")
	}
	return validateLocations(req.Locations)
}

// ValidateUpdate checks an itinerary update request
func ValidateUpdate(req *UpdateItineraryRequest) error {
	if req.Locations != nil {
		if err := validateLocations(req.Locations); err != nil {
			return err
		}
	}
	return nil
}

// ValidateShare checks the recipient list and the share password. The
// 4-character minimum matches the product requirement; it is short enough
// that the shared endpoint is additionally rate limited.
func ValidateShare(emails []string, password string) error {
	if len(password) < minSharePasswordLength {
		return fmt.Errorf("password must be at least %d characters", minSharePasswordLength)
	}
	if len(emails) == 0 {
		return errors.New("at least one recipient email is required")
	}
	for _, email := range emails {
		if !validator.IsValidEmail(email) {
			return fmt.Errorf("invalid email address: %s", email)
		}
	}
	return nil
}
