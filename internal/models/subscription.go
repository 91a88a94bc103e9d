package models

import "time"

// Subscription statuses. A stored "active" row is only effectively
// active while now is before EndDate; readers must go through
// Subscription.EffectiveStatus (or the repository queries, which
// filter on end_date) instead of trusting the stored field.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// Subscription ties a user to a plan for a paid period.
// EndDate is always StartDate plus the plan duration in days.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlanID    int       `json:"plan_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"-"`
}

// EffectiveStatus resolves the stored status against the clock:
// an "active" row past its end date reports as expired.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if s.Status == StatusActive && !now.Before(s.EndDate) {
		return StatusExpired
	}
	return s.Status
}

// SubscriptionWithPlan is a subscription joined with its plan,
// the shape returned by subscribe and my-subscription.
type SubscriptionWithPlan struct {
	Subscription
	Plan Plan `json:"plan"`
}

// AdminSubscriptionEntry is a subscription enriched with the owning
// user summary and the plan, used by the admin listing.
type AdminSubscriptionEntry struct {
	Subscription
	User UserSummary `json:"user"`
	Plan Plan        `json:"plan"`
}
