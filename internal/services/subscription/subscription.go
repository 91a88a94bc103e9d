// Package subscription contains the business logic around the plan
// catalog and the subscription ledger: subscribing, answering the
// my-subscription query and the admin views.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/storage/repository"
)

var (
	// ErrPlanNotFound is returned when the requested plan id is not in
	// the catalog.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrAlreadySubscribed is returned when the user already holds an
	// active subscription.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrNoActiveSubscription is returned when the user has no
	// effectively active subscription.
	ErrNoActiveSubscription = errors.New("no active subscription")
)

const (
	plansCacheKey = "plans"
	cacheTTL      = time.Hour
	defaultLimit  = 1000
)

// SubscriptionRepository defines the ledger operations the service needs.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	GetActiveSubscriptionByUser(ctx context.Context, userID string) (*models.Subscription, error)
	ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.AdminSubscriptionEntry, error)
	CountUsersWithActiveSubscription(ctx context.Context) (int, error)
}

// PlanRepository defines the catalog operations the service needs.
type PlanRepository interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	GetPlanByID(ctx context.Context, id int) (*models.Plan, error)
}

// UserCounter counts registered users for the stats view.
type UserCounter interface {
	CountUsers(ctx context.Context) (int, error)
}

// Cache describes the caching methods used for plans and
// my-subscription lookups.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service implements the subscription business logic.
type Service struct {
	subs  SubscriptionRepository
	plans PlanRepository
	users UserCounter
	cache Cache
	log   *slog.Logger
}

// New creates a subscription Service.
func New(subs SubscriptionRepository, plans PlanRepository, users UserCounter, cache Cache, log *slog.Logger) *Service {
	return &Service{
		subs:  subs,
		plans: plans,
		users: users,
		cache: cache,
		log:   log,
	}
}

func userSubscriptionKey(userID string) string {
	return fmt.Sprintf("subscription:user:%s", userID)
}

// Subscribe creates an active subscription for the user. The end date
// is the start plus the plan duration in days, exactly. The
// one-active-per-user invariant is enforced by the storage layer; a
// losing concurrent subscribe comes back as ErrAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, userID string, planID int) (*models.SubscriptionWithPlan, error) {
	const op = "subscription.Subscribe"

	plan, err := s.plans.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	startDate := time.Now().UTC()
	sub := models.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: startDate,
		EndDate:   startDate.AddDate(0, 0, plan.DurationDays),
		Status:    models.StatusActive,
	}

	id, err := s.subs.CreateSubscription(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrActiveSubscriptionExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadySubscribed)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.ID = id
	s.log.Info("created new subscription",
		slog.String("id", id), slog.String("user_id", userID), slog.Int("plan_id", plan.ID))

	result := &models.SubscriptionWithPlan{Subscription: sub, Plan: *plan}

	cacheKey := userSubscriptionKey(userID)
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}

	return result, nil
}

// GetMySubscription returns the user's effectively active subscription
// joined with its plan, or ErrNoActiveSubscription.
func (s *Service) GetMySubscription(ctx context.Context, userID string) (*models.SubscriptionWithPlan, error) {
	const op = "subscription.GetMySubscription"

	cacheKey := userSubscriptionKey(userID)
	var cached models.SubscriptionWithPlan
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read subscription from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	// The cached row may have expired since it was written.
	if found && cached.EffectiveStatus(time.Now().UTC()) == models.StatusActive {
		return &cached, nil
	}

	sub, err := s.subs.GetActiveSubscriptionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoActiveSubscription)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plan, err := s.plans.GetPlanByID(ctx, sub.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.SubscriptionWithPlan{Subscription: *sub, Plan: *plan}
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListPlans returns the plan catalog through the cache.
func (s *Service) ListPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "subscription.ListPlans"

	var cached []models.Plan
	found, err := s.cache.Get(ctx, plansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.plans.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, plansCacheKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", sl.Err(err))
	}
	return plans, nil
}

// ListAll returns every subscription enriched with user summary and
// plan, in creation order. The effective status of each row is
// resolved against the clock before it leaves the service.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*models.AdminSubscriptionEntry, error) {
	const op = "subscription.ListAll"

	if limit <= 0 {
		limit = defaultLimit
	}
	entries, err := s.subs.ListAllSubscriptions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		entry.Status = entry.EffectiveStatus(now)
	}
	return entries, nil
}

// UserStats aggregates account counts: total users, users holding an
// active subscription and the complement.
func (s *Service) UserStats(ctx context.Context) (*models.UserStats, error) {
	const op = "subscription.UserStats"

	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	withSub, err := s.subs.CountUsersWithActiveSubscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.UserStats{
		Total:               total,
		WithSubscription:    withSub,
		WithoutSubscription: total - withSub,
	}, nil
}
