package store

import (
	"context"
	"errors"
	"fmt"

	"storefront-server/internal/kv"
)

// CreateCampaign puts the campaign at the head of the admin list.
func (s *Store) CreateCampaign(ctx context.Context, campaign Campaign) (Campaign, error) {
	err := s.kv.Update(ctx, []string{KeyAdminCampaigns}, func(tx kv.Txn) error {
		campaigns, _, err := kv.TxGetJSON[[]Campaign](tx, KeyAdminCampaigns)
		if err != nil {
			return err
		}
		for _, c := range campaigns {
			if c.ID == campaign.ID {
				return ErrAlreadyExists
			}
		}
		campaigns = append([]Campaign{campaign}, campaigns...)
		return kv.TxSetJSON(tx, KeyAdminCampaigns, campaigns)
	})
	if err != nil {
		return Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns returns campaigns in list order, newest first.
func (s *Store) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	campaigns, _, err := kv.GetJSON[[]Campaign](ctx, s.kv, KeyAdminCampaigns)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	if campaigns == nil {
		campaigns = []Campaign{}
	}
	return campaigns, nil
}

// GetCampaign finds a campaign by id.
func (s *Store) GetCampaign(ctx context.Context, campaignID string) (Campaign, error) {
	campaigns, err := s.ListCampaigns(ctx)
	if err != nil {
		return Campaign{}, err
	}
	for _, c := range campaigns {
		if c.ID == campaignID {
			return c, nil
		}
	}
	return Campaign{}, ErrNotFound
}

// UpdateCampaign applies fn to the stored campaign in place.
func (s *Store) UpdateCampaign(ctx context.Context, campaignID string, fn func(c *Campaign) error) (Campaign, error) {
	var updated Campaign
	err := s.kv.Update(ctx, []string{KeyAdminCampaigns}, func(tx kv.Txn) error {
		campaigns, _, err := kv.TxGetJSON[[]Campaign](tx, KeyAdminCampaigns)
		if err != nil {
			return err
		}
		for i := range campaigns {
			if campaigns[i].ID != campaignID {
				continue
			}
			if err := fn(&campaigns[i]); err != nil {
				return err
			}
			campaigns[i].ID = campaignID
			updated = campaigns[i]
			return kv.TxSetJSON(tx, KeyAdminCampaigns, campaigns)
		}
		return ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Campaign{}, ErrNotFound
		}
		return Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return updated, nil
}

// DeleteCampaign removes a campaign from the admin list.
func (s *Store) DeleteCampaign(ctx context.Context, campaignID string) error {
	err := s.kv.Update(ctx, []string{KeyAdminCampaigns}, func(tx kv.Txn) error {
		campaigns, _, err := kv.TxGetJSON[[]Campaign](tx, KeyAdminCampaigns)
		if err != nil {
			return err
		}
		for i := range campaigns {
			if campaigns[i].ID == campaignID {
				campaigns = append(campaigns[:i], campaigns[i+1:]...)
				return kv.TxSetJSON(tx, KeyAdminCampaigns, campaigns)
			}
		}
		return ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// GetUserCampaigns returns the session's participation map keyed by campaign id.
func (s *Store) GetUserCampaigns(ctx context.Context, sessionID string) (map[string]UserCampaignState, error) {
	states, _, err := kv.GetJSON[map[string]UserCampaignState](ctx, s.kv, SessionKey(sessionID, SlotUserCampaigns))
	if err != nil {
		return nil, fmt.Errorf("failed to get user campaigns: %w", err)
	}
	if states == nil {
		states = make(map[string]UserCampaignState)
	}
	return states, nil
}

// UpdateUserCampaign applies fn to one participation entry. exists is false
// when the session has never touched the campaign; fn then receives a zero state.
func (s *Store) UpdateUserCampaign(ctx context.Context, sessionID, campaignID string, fn func(state *UserCampaignState, exists bool) error) (UserCampaignState, error) {
	key := SessionKey(sessionID, SlotUserCampaigns)
	var updated UserCampaignState

	err := s.kv.Update(ctx, []string{key}, func(tx kv.Txn) error {
		states, _, err := kv.TxGetJSON[map[string]UserCampaignState](tx, key)
		if err != nil {
			return err
		}
		if states == nil {
			states = make(map[string]UserCampaignState)
		}
		state, exists := states[campaignID]
		if err := fn(&state, exists); err != nil {
			return err
		}
		state.ID = campaignID
		states[campaignID] = state
		updated = state
		return kv.TxSetJSON(tx, key, states)
	})
	if err != nil {
		return UserCampaignState{}, fmt.Errorf("failed to update user campaign: %w", err)
	}
	return updated, nil
}
