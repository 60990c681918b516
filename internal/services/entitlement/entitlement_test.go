package entitlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/services/entitlement"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	tests := []struct {
		name         string
		user         models.User
		wantEntitled bool
		wantReason   string
	}{
		{
			name: "disabled account loses even with active subscription",
			user: models.User{
				IsActive:           false,
				Role:               models.RoleUser,
				IsSubscribed:       true,
				SubscriptionExpire: &future,
			},
			wantEntitled: false,
			wantReason:   entitlement.ReasonAccountDisabled,
		},
		{
			name: "disabled admin loses too",
			user: models.User{
				IsActive: false,
				Role:     models.RoleAdmin,
			},
			wantEntitled: false,
			wantReason:   entitlement.ReasonAccountDisabled,
		},
		{
			name: "admin wins with everything expired",
			user: models.User{
				IsActive:           true,
				Role:               models.RoleAdmin,
				IsSubscribed:       true,
				SubscriptionExpire: &past,
				TrialEndDate:       &past,
			},
			wantEntitled: true,
			wantReason:   entitlement.ReasonAdmin,
		},
		{
			name: "active subscription",
			user: models.User{
				IsActive:           true,
				Role:               models.RoleUser,
				IsSubscribed:       true,
				SubscriptionExpire: &future,
			},
			wantEntitled: true,
			wantReason:   entitlement.ReasonActiveSubscription,
		},
		{
			name: "subscription beats a still-running trial",
			user: models.User{
				IsActive:           true,
				Role:               models.RoleUser,
				IsSubscribed:       true,
				SubscriptionExpire: &future,
				TrialEndDate:       &future,
			},
			wantEntitled: true,
			wantReason:   entitlement.ReasonActiveSubscription,
		},
		{
			name: "expired subscription falls through to active trial",
			user: models.User{
				IsActive:           true,
				Role:               models.RoleUser,
				IsSubscribed:       true,
				SubscriptionExpire: &past,
				TrialEndDate:       &future,
			},
			wantEntitled: true,
			wantReason:   entitlement.ReasonActiveTrial,
		},
		{
			name: "active trial only",
			user: models.User{
				IsActive:     true,
				Role:         models.RoleUser,
				TrialEndDate: &future,
			},
			wantEntitled: true,
			wantReason:   entitlement.ReasonActiveTrial,
		},
		{
			name: "expired subscription and expired trial",
			user: models.User{
				IsActive:           true,
				Role:               models.RoleUser,
				IsSubscribed:       true,
				SubscriptionExpire: &past,
				TrialEndDate:       &past,
			},
			wantEntitled: false,
			wantReason:   entitlement.ReasonSubscriptionExpired,
		},
		{
			name: "expired trial, never subscribed",
			user: models.User{
				IsActive:     true,
				Role:         models.RoleUser,
				TrialEndDate: &past,
			},
			wantEntitled: false,
			wantReason:   entitlement.ReasonTrialExpired,
		},
		{
			name: "no trial and no subscription at all",
			user: models.User{
				IsActive: true,
				Role:     models.RoleUser,
			},
			wantEntitled: false,
			wantReason:   entitlement.ReasonTrialExpired,
		},
		{
			name: "subscribed flag set but expiry missing",
			user: models.User{
				IsActive:     true,
				Role:         models.RoleUser,
				IsSubscribed: true,
			},
			wantEntitled: false,
			wantReason:   entitlement.ReasonSubscriptionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entitlement.Evaluate(&tt.user, now)
			assert.Equal(t, tt.wantEntitled, got.Entitled)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestEvaluate_BoundaryIsInclusive(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("subscription ending exactly now is still active", func(t *testing.T) {
		expiry := now
		u := models.User{
			IsActive:           true,
			Role:               models.RoleUser,
			IsSubscribed:       true,
			SubscriptionExpire: &expiry,
		}
		got := entitlement.Evaluate(&u, now)
		assert.True(t, got.Entitled)
		assert.Equal(t, entitlement.ReasonActiveSubscription, got.Reason)
	})

	t.Run("trial ending exactly now is still active", func(t *testing.T) {
		end := now
		u := models.User{
			IsActive:     true,
			Role:         models.RoleUser,
			TrialEndDate: &end,
		}
		got := entitlement.Evaluate(&u, now)
		assert.True(t, got.Entitled)
		assert.Equal(t, entitlement.ReasonActiveTrial, got.Reason)
	})

	t.Run("one second past the end is expired", func(t *testing.T) {
		expiry := now.Add(-time.Second)
		u := models.User{
			IsActive:           true,
			Role:               models.RoleUser,
			IsSubscribed:       true,
			SubscriptionExpire: &expiry,
		}
		got := entitlement.Evaluate(&u, now)
		assert.False(t, got.Entitled)
		assert.Equal(t, entitlement.ReasonSubscriptionExpired, got.Reason)
	})
}
