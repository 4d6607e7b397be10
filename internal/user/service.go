package user

import (
	"context"
	"errors"
	"time"

	"github.com/tripweaver/tripweaver/internal/api/models"
)

// Service provides user profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureProfile creates a profile for a fresh account. Called at signup; a
// profile that already exists is left untouched.
func (s *Service) EnsureProfile(ctx context.Context, userID, displayName string) error {
	if _, err := s.repo.Get(ctx, userID); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	profile := DefaultUser(userID)
	profile.DisplayName = displayName
	return s.repo.Create(ctx, profile)
}

// GetMe retrieves the user's profile. A missing profile is materialized with
// defaults rather than reported as an error, so accounts created before the
// profile table existed still resolve.
func (s *Service) GetMe(ctx context.Context, userID string) (*models.Me, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		profile = DefaultUser(userID)
		if err := s.repo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	return s.toAPI(profile), nil
}

// UpdateMe updates the user's profile fields. Absent fields are left as-is.
// A missing profile is materialized with defaults first, mirroring GetMe.
func (s *Service) UpdateMe(ctx context.Context, userID string, input *models.MeInput) (*models.Me, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		profile = DefaultUser(userID)
		if err := s.repo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	// Apply updates
	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return s.toAPI(profile), nil
}

// AvatarURL returns the user's avatar URL, or empty when no profile or
// avatar exists. Used to stamp the creator image onto new itineraries.
func (s *Service) AvatarURL(ctx context.Context, userID string) string {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		return ""
	}
	return profile.AvatarURL
}

// Delete removes the user's profile.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func (s *Service) toAPI(profile *User) *models.Me {
	return &models.Me{
		UserID:      profile.ID,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		CreatedAt:   models.Timestamp(profile.CreatedAt),
	}
}
