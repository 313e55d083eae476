package processor

import (
	"context"
	"math"
	"sort"
	"time"

	"storefront-server/internal/store"
)

const monthLayout = "Jan 2006"

// PointsSummary aggregates a store's order history
type PointsSummary struct {
	ReferralCode      string          `json:"referral_code"`
	TotalPoints       int             `json:"total_points"`
	TotalOrders       int             `json:"total_orders"`
	TotalEarnings     float64         `json:"total_earnings"`
	AveragePoints     int             `json:"average_points"`
	AverageOrderValue float64         `json:"average_order_value"`
	Monthly           []MonthlyPoints `json:"monthly"`
}

type MonthlyPoints struct {
	Month    string  `json:"month"`
	Points   int     `json:"points"`
	Orders   int     `json:"orders"`
	Earnings float64 `json:"earnings"`
}

// GetPointsSummary reports the session store's points and sales.
func (p *StorefrontProcessor) GetPointsSummary(ctx context.Context, sessionID string) (PointsSummary, error) {
	current, err := p.GetCurrentStore(ctx, sessionID)
	if err != nil {
		return PointsSummary{}, err
	}
	return Summarize(current), nil
}

// Summarize computes the points summary of st. Months are in calendar order.
func Summarize(st store.Storefront) PointsSummary {
	summary := PointsSummary{
		ReferralCode: st.ReferralCode,
		TotalPoints:  st.TotalPoints,
		TotalOrders:  st.TotalOrders,
		Monthly:      []MonthlyPoints{},
	}

	buckets := make(map[time.Time]*MonthlyPoints)
	for _, order := range st.Orders {
		summary.TotalEarnings += order.Price

		created := order.CreatedAt.UTC()
		month := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[month]
		if !ok {
			b = &MonthlyPoints{Month: month.Format(monthLayout)}
			buckets[month] = b
		}
		b.Points += order.Points
		b.Orders++
		b.Earnings += order.Price
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	for _, m := range months {
		b := buckets[m]
		b.Earnings = round2(b.Earnings)
		summary.Monthly = append(summary.Monthly, *b)
	}

	summary.TotalEarnings = round2(summary.TotalEarnings)
	if n := len(st.Orders); n > 0 {
		summary.AveragePoints = int(math.Round(float64(st.TotalPoints) / float64(n)))
		summary.AverageOrderValue = round2(summary.TotalEarnings / float64(n))
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
