// Package entitlement decides whether a user may access the paid feature
// set. The decision is a pure function of the user record and the clock,
// so callers can evaluate cached snapshots without touching storage.
package entitlement

import (
	"time"

	"github.com/garilangu/gari-langu/internal/models"
)

// Reasons attached to an entitlement decision, ordered by precedence:
// a disabled account loses regardless of subscription state, the admin
// role wins regardless of trial state.
const (
	ReasonAccountDisabled     = "account_disabled"
	ReasonAdmin               = "admin"
	ReasonActiveSubscription  = "active_subscription"
	ReasonActiveTrial         = "active_trial"
	ReasonSubscriptionExpired = "subscription_expired"
	ReasonTrialExpired        = "trial_expired"
)

// Result is an entitlement decision with its dominant reason.
type Result struct {
	Entitled bool   `json:"entitled"`
	Reason   string `json:"reason"`
}

// Evaluate returns the entitlement decision for a user at the given
// instant. Boundary instants are inclusive: a subscription or trial ending
// exactly at now still counts as active.
func Evaluate(u *models.User, now time.Time) Result {
	if !u.IsActive {
		return Result{Entitled: false, Reason: ReasonAccountDisabled}
	}
	if u.Role == models.RoleAdmin {
		return Result{Entitled: true, Reason: ReasonAdmin}
	}
	if u.IsSubscribed && u.SubscriptionExpire != nil && !u.SubscriptionExpire.Before(now) {
		return Result{Entitled: true, Reason: ReasonActiveSubscription}
	}
	if u.TrialEndDate != nil && !u.TrialEndDate.Before(now) {
		return Result{Entitled: true, Reason: ReasonActiveTrial}
	}
	// Neither window is open. A user who ever held a subscription gets
	// the subscription reason, a trial-only user the trial reason.
	if u.IsSubscribed {
		return Result{Entitled: false, Reason: ReasonSubscriptionExpired}
	}
	return Result{Entitled: false, Reason: ReasonTrialExpired}
}
