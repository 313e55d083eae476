package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"storefront-server/internal/observability"
	"storefront-server/internal/store"

	"github.com/google/uuid"
)

// CampaignStore defines the persistence operations required by CampaignProcessor
type CampaignStore interface {
	CreateCampaign(ctx context.Context, campaign store.Campaign) (store.Campaign, error)
	ListCampaigns(ctx context.Context) ([]store.Campaign, error)
	GetCampaign(ctx context.Context, campaignID string) (store.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID string, fn func(c *store.Campaign) error) (store.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string) error
	GetUserCampaigns(ctx context.Context, sessionID string) (map[string]store.UserCampaignState, error)
	UpdateUserCampaign(ctx context.Context, sessionID, campaignID string, fn func(state *store.UserCampaignState, exists bool) error) (store.UserCampaignState, error)
}

// EventPublisher announces proof submissions
type EventPublisher interface {
	CampaignSubmitted(ctx context.Context, sessionID, campaignID string)
}

var (
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrCampaignTitleRequired   = errors.New("campaign title is required")
	ErrCampaignNotActive       = errors.New("campaign is not active")
	ErrCampaignAlreadyStarted  = errors.New("campaign already started")
	ErrCampaignAlreadyApproved = errors.New("campaign submission already approved")
	ErrParticipationNotFound   = errors.New("campaign not started")
	ErrProofRequired           = errors.New("proof text or url is required")
	ErrInvalidProofURL         = errors.New("proof url must be an http or https link")
	ErrInvalidTransition       = errors.New("invalid campaign state transition")
)

type CampaignProcessor struct {
	store  CampaignStore
	events EventPublisher
	logger *observability.Logger
	now    func() time.Time
}

func New(store CampaignStore, events EventPublisher, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		store:  store,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateCampaignRequest represents an admin campaign definition
type CreateCampaignRequest struct {
	Title       string
	Description string
	Platforms   []string
	Images      []string
	Active      *bool
}

// CreateCampaign adds a campaign to the top of the catalog. Campaigns are
// active unless explicitly created inactive.
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (store.Campaign, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return store.Campaign{}, ErrCampaignTitleRequired
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	campaign := store.Campaign{
		ID:          newCampaignID(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Platforms:   cleanList(req.Platforms, true),
		Images:      cleanList(req.Images, false),
		Active:      active,
		CreatedAt:   p.now(),
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaign.ID})

	created, err := p.store.CreateCampaign(ctx, campaign)
	if err != nil {
		p.logger.Error(ctx, "failed to create campaign", err)
		return store.Campaign{}, err
	}

	p.logger.Info(ctx, "campaign created")
	return created, nil
}

// ListCampaigns returns the whole catalog for the admin screen.
func (p *CampaignProcessor) ListCampaigns(ctx context.Context) ([]store.Campaign, error) {
	campaigns, err := p.store.ListCampaigns(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list campaigns", err)
		return nil, err
	}
	return campaigns, nil
}

// UpdateCampaignRequest is a partial update; nil fields are left unchanged
type UpdateCampaignRequest struct {
	Title       *string
	Description *string
	Platforms   *[]string
	Images      *[]string
	Active      *bool
}

func (p *CampaignProcessor) UpdateCampaign(ctx context.Context, campaignID string, req UpdateCampaignRequest) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return store.Campaign{}, ErrCampaignTitleRequired
	}

	return p.updateCampaign(ctx, campaignID, func(c *store.Campaign) {
		if req.Title != nil {
			c.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			c.Description = strings.TrimSpace(*req.Description)
		}
		if req.Platforms != nil {
			c.Platforms = cleanList(*req.Platforms, true)
		}
		if req.Images != nil {
			c.Images = cleanList(*req.Images, false)
		}
		if req.Active != nil {
			c.Active = *req.Active
		}
	})
}

// ToggleCampaign flips the campaign's active flag.
func (p *CampaignProcessor) ToggleCampaign(ctx context.Context, campaignID string) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	return p.updateCampaign(ctx, campaignID, func(c *store.Campaign) {
		c.Active = !c.Active
	})
}

func (p *CampaignProcessor) updateCampaign(ctx context.Context, campaignID string, fn func(c *store.Campaign)) (store.Campaign, error) {
	updated, err := p.store.UpdateCampaign(ctx, campaignID, func(c *store.Campaign) error {
		fn(c)
		now := p.now()
		c.UpdatedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to update campaign", err)
		return store.Campaign{}, err
	}

	p.logger.Info(ctx, "campaign updated")
	return updated, nil
}

func (p *CampaignProcessor) DeleteCampaign(ctx context.Context, campaignID string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	if err := p.store.DeleteCampaign(ctx, campaignID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to delete campaign", err)
		return err
	}

	p.logger.Info(ctx, "campaign deleted")
	return nil
}

// AvailableCampaign is an active campaign with the session's progress on it
type AvailableCampaign struct {
	store.Campaign
	Participation store.UserCampaignState `json:"participation"`
}

// ListAvailable returns active campaigns in catalog order with the
// session's participation state.
func (p *CampaignProcessor) ListAvailable(ctx context.Context, sessionID string) ([]AvailableCampaign, error) {
	campaigns, err := p.store.ListCampaigns(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list campaigns", err)
		return nil, err
	}
	states, err := p.store.GetUserCampaigns(ctx, sessionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get user campaigns", err)
		return nil, err
	}

	available := make([]AvailableCampaign, 0, len(campaigns))
	for _, c := range campaigns {
		if !c.Active {
			continue
		}
		state, ok := states[c.ID]
		if !ok {
			state = store.UserCampaignState{ID: c.ID, Status: store.CampaignStatusNotStarted}
		}
		available = append(available, AvailableCampaign{Campaign: c, Participation: state})
	}
	return available, nil
}

// StartCampaign moves the session from not_started to started.
func (p *CampaignProcessor) StartCampaign(ctx context.Context, sessionID, campaignID string) (store.UserCampaignState, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	if err := p.requireActive(ctx, campaignID); err != nil {
		return store.UserCampaignState{}, err
	}

	return p.updateParticipation(ctx, sessionID, campaignID, func(state *store.UserCampaignState, exists bool) error {
		if exists && state.Status != store.CampaignStatusNotStarted {
			return ErrCampaignAlreadyStarted
		}
		now := p.now()
		state.Status = store.CampaignStatusStarted
		state.StartedAt = &now
		return nil
	})
}

// SubmitProof records a proof of the promotion. A campaign that was never
// started is started implicitly.
func (p *CampaignProcessor) SubmitProof(ctx context.Context, sessionID, campaignID, text, proofURL string) (store.UserCampaignState, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	text = strings.TrimSpace(text)
	proofURL = strings.TrimSpace(proofURL)
	if text == "" && proofURL == "" {
		return store.UserCampaignState{}, ErrProofRequired
	}
	if proofURL != "" && !isHTTPURL(proofURL) {
		return store.UserCampaignState{}, ErrInvalidProofURL
	}

	if err := p.requireActive(ctx, campaignID); err != nil {
		return store.UserCampaignState{}, err
	}

	state, err := p.updateParticipation(ctx, sessionID, campaignID, func(state *store.UserCampaignState, exists bool) error {
		if state.Status == store.CampaignStatusApproved {
			return ErrCampaignAlreadyApproved
		}
		now := p.now()
		if !exists || state.StartedAt == nil {
			state.StartedAt = &now
		}
		state.Status = store.CampaignStatusSubmitted
		state.Submissions = append(state.Submissions, store.CampaignSubmission{
			Text:      text,
			URL:       proofURL,
			CreatedAt: now,
		})
		return nil
	})
	if err != nil {
		return store.UserCampaignState{}, err
	}

	p.events.CampaignSubmitted(ctx, sessionID, campaignID)
	return state, nil
}

// WithdrawSubmission moves a submitted campaign back to started and drops
// its submissions.
func (p *CampaignProcessor) WithdrawSubmission(ctx context.Context, sessionID, campaignID string) (store.UserCampaignState, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	return p.updateParticipation(ctx, sessionID, campaignID, func(state *store.UserCampaignState, exists bool) error {
		switch {
		case !exists || state.Status == store.CampaignStatusNotStarted:
			return ErrParticipationNotFound
		case state.Status == store.CampaignStatusApproved:
			return ErrCampaignAlreadyApproved
		case state.Status != store.CampaignStatusSubmitted:
			return ErrInvalidTransition
		}
		state.Status = store.CampaignStatusStarted
		state.Submissions = nil
		return nil
	})
}

// ApproveSubmission is the admin step from submitted to approved.
func (p *CampaignProcessor) ApproveSubmission(ctx context.Context, sessionID, campaignID string) (store.UserCampaignState, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaignID},
		observability.Field{Key: "participant_session_id", Value: sessionID},
	)

	if _, err := p.getCampaign(ctx, campaignID); err != nil {
		return store.UserCampaignState{}, err
	}

	return p.updateParticipation(ctx, sessionID, campaignID, func(state *store.UserCampaignState, exists bool) error {
		if !exists {
			return ErrParticipationNotFound
		}
		if state.Status != store.CampaignStatusSubmitted {
			return ErrInvalidTransition
		}
		now := p.now()
		state.Status = store.CampaignStatusApproved
		state.ApprovedAt = &now
		return nil
	})
}

func (p *CampaignProcessor) updateParticipation(ctx context.Context, sessionID, campaignID string, fn func(state *store.UserCampaignState, exists bool) error) (store.UserCampaignState, error) {
	state, err := p.store.UpdateUserCampaign(ctx, sessionID, campaignID, fn)
	if err != nil {
		for _, domainErr := range []error{
			ErrCampaignAlreadyStarted,
			ErrCampaignAlreadyApproved,
			ErrParticipationNotFound,
			ErrInvalidTransition,
		} {
			if errors.Is(err, domainErr) {
				return store.UserCampaignState{}, domainErr
			}
		}
		p.logger.Error(ctx, "failed to update campaign participation", err)
		return store.UserCampaignState{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "campaign_status", Value: state.Status},
	), "campaign participation updated")
	return state, nil
}

func (p *CampaignProcessor) getCampaign(ctx context.Context, campaignID string) (store.Campaign, error) {
	campaign, err := p.store.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return store.Campaign{}, err
	}
	return campaign, nil
}

func (p *CampaignProcessor) requireActive(ctx context.Context, campaignID string) error {
	campaign, err := p.getCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if !campaign.Active {
		return ErrCampaignNotActive
	}
	return nil
}

func newCampaignID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("CAMP-%s", strings.ToUpper(id[:8]))
}

func cleanList(items []string, lower bool) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if lower {
			item = strings.ToLower(item)
		}
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
