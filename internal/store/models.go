package store

import (
	"fmt"
	"time"
)

// Order statuses the admin screens know about. Status stays open-ended.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Campaign participation states
const (
	CampaignStatusNotStarted = "not_started"
	CampaignStatusStarted    = "started"
	CampaignStatusSubmitted  = "submitted"
	CampaignStatusApproved   = "approved"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Storefront is a user's referral store. TotalOrders and TotalPoints always
// equal the length and the points sum of Orders.
type Storefront struct {
	Name             string    `json:"name"`
	ReferralCode     string    `json:"referralCode"`
	SelectedProducts []string  `json:"selectedProducts"`
	TotalPoints      int       `json:"totalPoints"`
	TotalOrders      int       `json:"totalOrders"`
	Orders           []Order   `json:"orders"`
	OwnerSessionID   string    `json:"ownerSessionId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CheckTotals verifies the counters against the order history.
func (s Storefront) CheckTotals() error {
	if s.TotalOrders != len(s.Orders) {
		return fmt.Errorf("totalOrders %d but %d orders: %w", s.TotalOrders, len(s.Orders), ErrInvalidStoreData)
	}
	sum := 0
	for _, o := range s.Orders {
		sum += o.Points
	}
	if s.TotalPoints != sum {
		return fmt.Errorf("totalPoints %d but orders sum to %d: %w", s.TotalPoints, sum, ErrInvalidStoreData)
	}
	return nil
}

// HasProduct reports whether productID is selected.
func (s Storefront) HasProduct(productID string) bool {
	for _, id := range s.SelectedProducts {
		if id == productID {
			return true
		}
	}
	return false
}

// Order is a purchase snapshot. Product fields are copied at purchase time.
type Order struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"productId"`
	ProductName    string         `json:"productName"`
	ProductImage   string         `json:"productImage"`
	Price          float64        `json:"price"`
	Points         int            `json:"points"`
	ReferralCode   string         `json:"referralCode"`
	BillingDetails BillingDetails `json:"billingDetails"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

type BillingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Campaign is an admin-defined social promotion task.
type Campaign struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`
	Images      []string   `json:"images,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// UserCampaignState tracks one session's participation in one campaign.
type UserCampaignState struct {
	ID          string               `json:"id"`
	Status      string               `json:"status"`
	StartedAt   *time.Time           `json:"startedAt,omitempty"`
	Submissions []CampaignSubmission `json:"submissions,omitempty"`
	ApprovedAt  *time.Time           `json:"approvedAt,omitempty"`
}

type CampaignSubmission struct {
	Text      string    `json:"text,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the session's identity flags, spread across several slots.
type Profile struct {
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	ReferralCode  string `json:"referralCode,omitempty"`
	Language      string `json:"language,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// IsAdmin reports whether the session logged in as admin.
func (p Profile) IsAdmin() bool {
	return p.Authenticated && p.Role == RoleAdmin
}

// VoucherClaims are the per-session one-way claim flags.
type VoucherClaims struct {
	Welcome  bool `json:"welcome"`
	Referral bool `json:"referral"`
}
