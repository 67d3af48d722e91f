package orders

import (
	"context"
	"fmt"
	"time"
)

// Notification is one row of the seller's polling feed, derived from the
// order store on every read. Nothing here is stored separately.
type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Amount  int    `json:"amount"`
	OrderID string `json:"order_id"`
	TimeAgo string `json:"time_ago"`
	Status  Status `json:"status"`
	Urgent  bool   `json:"urgent"`
}

const DefaultFeedLimit = 20

type Feed struct {
	Orders Store

	// UrgentThreshold marks orders whose total exceeds it.
	UrgentThreshold int

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (f *Feed) List(ctx context.Context, sellerID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	recent, err := f.Orders.ListBySeller(ctx, sellerID, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if f.Now != nil {
		now = f.Now()
	}
	out := make([]Notification, 0, len(recent))
	for _, o := range recent {
		out = append(out, Notification{
			ID:      o.ID,
			Type:    "order",
			Message: fmt.Sprintf("Order from %s - %d items", o.Customer.Name, len(o.Items)),
			Amount:  o.Total,
			OrderID: o.ID,
			TimeAgo: TimeAgo(o.CreatedAt, now),
			Status:  o.Status,
			Urgent:  o.Total > f.UrgentThreshold,
		})
	}
	return out, nil
}

// TimeAgo buckets elapsed time into the largest applicable fixed-length unit.
// Buckets are not calendar-aware: a month is always 30 days, a year 365.
func TimeAgo(created, now time.Time) string {
	seconds := int(now.Sub(created).Seconds())
	intervals := []struct {
		label   string
		seconds int
	}{
		{"year", 31536000},
		{"month", 2592000},
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
	}
	for _, iv := range intervals {
		if count := seconds / iv.seconds; count >= 1 {
			if count > 1 {
				return fmt.Sprintf("%d %ss ago", count, iv.label)
			}
			return fmt.Sprintf("1 %s ago", iv.label)
		}
	}
	return "Just now"
}
