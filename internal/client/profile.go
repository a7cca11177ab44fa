package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// GetProfile fetches the user's profile, discovering the route if needed.
// Concurrent calls are coalesced into a single in-flight request.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	v, err, _ := c.flight.Do(opProfileRead, func() (any, error) {
		return c.resolve(ctx, opProfileRead, profileReadCandidates, nil)
	})
	if err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(v.([]byte), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile submits a profile edit, discovering both the route and the
// HTTP verb the backend accepts. Returns the updated profile when the backend
// echoes it back, nil otherwise.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile update: %w", err)
	}

	body, err := c.resolve(ctx, opProfileUpdate, profileUpdateCandidates, payload)
	if err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(body, &profile); err != nil || profile.ID == 0 {
		// Backend acknowledged without echoing the profile.
		return nil, nil
	}
	return &profile, nil
}
