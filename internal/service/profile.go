package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// ProfileAPI is the backend surface the profile service depends on
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error)
}

// ProfileService provides read-through access to the user's profile: fresh
// from the backend when it answers, from the persisted snapshot when it is
// unreachable.
type ProfileService struct {
	api      ProfileAPI
	state    domain.StateRepository
	validate *validator.Validate
}

// NewProfileService creates a new profile service
func NewProfileService(api ProfileAPI, state domain.StateRepository) *ProfileService {
	return &ProfileService{
		api:      api,
		state:    state,
		validate: validator.New(),
	}
}

// Get fetches the profile. When the backend is unreachable the persisted
// snapshot is served instead and the second return value is true.
// Authentication errors are never masked by the snapshot.
func (s *ProfileService) Get(ctx context.Context) (*domain.Profile, bool, error) {
	profile, err := s.api.GetProfile(ctx)
	if err == nil {
		s.persistSnapshot(ctx, profile)
		return profile, false, nil
	}
	if !errors.Is(err, domain.ErrBackendUnreachable) {
		return nil, false, err
	}

	snapshot, snapErr := s.loadSnapshot(ctx)
	if snapErr != nil || snapshot == nil {
		return nil, false, err
	}
	log.Warn().Msg("Backend unreachable, serving cached profile snapshot")
	return snapshot, true, nil
}

// Update validates and submits a profile edit, refreshing the snapshot on
// success.
func (s *ProfileService) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}

	profile, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		// Backend acknowledged without echoing; refetch for the snapshot.
		profile, err = s.api.GetProfile(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to refresh profile after update")
			return nil, nil
		}
	}
	s.persistSnapshot(ctx, profile)
	return profile, nil
}

func (s *ProfileService) persistSnapshot(ctx context.Context, profile *domain.Profile) {
	data, err := json.Marshal(profile)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal profile snapshot")
		return
	}
	if err := s.state.Set(ctx, domain.StateKeyProfile, string(data)); err != nil {
		log.Warn().Err(err).Msg("Failed to persist profile snapshot")
	}
	if profile.Picture != "" {
		if err := s.state.Set(ctx, domain.StateKeyProfilePicture, profile.Picture); err != nil {
			log.Warn().Err(err).Msg("Failed to persist profile picture")
		}
	}
}

func (s *ProfileService) loadSnapshot(ctx context.Context) (*domain.Profile, error) {
	raw, err := s.state.Get(ctx, domain.StateKeyProfile)
	if err != nil || raw == "" {
		return nil, err
	}
	var profile domain.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile snapshot: %w", err)
	}
	return &profile, nil
}
