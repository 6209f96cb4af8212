package tier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartroute/internal/geo"
	"smartroute/internal/repository"
	"smartroute/internal/types"
)

// AccountStore is the persistence surface the manager needs.
type AccountStore interface {
	IncrementUsage(ctx context.Context, userID int64) error
	DecrementUsage(ctx context.Context, userID int64) error
	ResetMonthlyCount(ctx context.Context, userID int64, resetAt time.Time) error
	UpdateTier(ctx context.Context, userID int64, tier string, resetAt time.Time) error
}

// UsageStats is the account's current quota snapshot. Nil limits mean the
// plan is unlimited on that axis.
type UsageStats struct {
	Tier              string   `json:"tier"`
	TierName          string   `json:"tier_name"`
	RequestsUsed      int      `json:"requests_used"`
	RequestsLimit     *int     `json:"requests_limit"`
	RequestsRemaining *int     `json:"requests_remaining"`
	RequestsUnlimited bool     `json:"requests_unlimited"`
	ResetDate         string   `json:"reset_date"`
	DaysUntilReset    int      `json:"days_until_reset"`
	Features          Features `json:"features"`
	MaxDistanceKm     *float64 `json:"max_distance_km"`
	DistanceUnlimited bool     `json:"distance_unlimited"`
	Description       string   `json:"description"`
}

// Manager enforces per-plan usage limits.
type Manager struct {
	store  AccountStore
	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates the manager.
func NewManager(store AccountStore, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.With("component", "tier"),
		now:    time.Now,
	}
}

// ConfigFor resolves the plan for a user. Unknown tiers degrade to free.
func (m *Manager) ConfigFor(user *repository.User) Config {
	cfg, ok := configs[user.Tier]
	if !ok {
		m.logger.Warn("unknown tier, treating as free", "username", user.Username, "tier", user.Tier)
		return configs["free"]
	}
	return cfg
}

// CheckCanMakeRequest validates the user's quota for a route request. The
// monthly reset runs before the cap check, then the request counter, then
// the straight-line distance limit. Returns whether the request may proceed,
// a user-facing error message when it may not, and the current stats.
func (m *Manager) CheckCanMakeRequest(ctx context.Context, user *repository.User, origin, destination types.Coordinate) (bool, string, UsageStats) {
	m.resetCounterIfNeeded(ctx, user)

	cfg := m.ConfigFor(user)
	stats := m.UsageStats(user)

	if cfg.MaxRequestsPerMonth != nil && user.MonthlyRequestsCount >= *cfg.MaxRequestsPerMonth {
		msg := fmt.Sprintf(
			"Limite de %d requisições mensais atingido. Upgrade para %s para continuar.",
			*cfg.MaxRequestsPerMonth, m.SuggestUpgrade(user.Tier))
		m.logger.Warn("request limit reached", "username", user.Username, "tier", user.Tier)
		return false, msg, stats
	}

	// Straight-line distance is a conservative lower bound on the real
	// route length.
	distanceKm := geo.DistanceKm(origin, destination)
	if cfg.MaxDistanceKm != nil && distanceKm > *cfg.MaxDistanceKm {
		msg := fmt.Sprintf(
			"Distância de %.1fkm excede o limite de %.0fkm do plano %s. Upgrade para %s para rotas maiores.",
			distanceKm, *cfg.MaxDistanceKm, cfg.Name, m.SuggestUpgrade(user.Tier))
		m.logger.Warn("distance limit exceeded",
			"username", user.Username, "distance_km", distanceKm, "limit_km", *cfg.MaxDistanceKm)
		return false, msg, stats
	}

	return true, "", stats
}

// resetCounterIfNeeded zeroes the counter when the account has no reset
// stamp yet or the stamp is from an earlier month. The in-memory user is
// updated even when persistence fails so the current request is judged
// against the fresh window.
func (m *Manager) resetCounterIfNeeded(ctx context.Context, user *repository.User) bool {
	now := m.now()

	needsReset := user.LastResetDate == nil ||
		now.Year() > user.LastResetDate.Year() ||
		(now.Year() == user.LastResetDate.Year() && now.Month() > user.LastResetDate.Month())
	if !needsReset {
		return false
	}

	m.logger.Info("resetting monthly counter", "username", user.Username)
	user.MonthlyRequestsCount = 0
	user.LastResetDate = &now

	if err := m.store.ResetMonthlyCount(ctx, user.ID, now); err != nil {
		m.logger.Error("failed to persist monthly reset", "username", user.Username, "error", err)
	}
	return true
}

// IncrementUsage bumps the counter after a successful request.
func (m *Manager) IncrementUsage(ctx context.Context, user *repository.User) error {
	if err := m.store.IncrementUsage(ctx, user.ID); err != nil {
		return err
	}
	user.MonthlyRequestsCount++
	m.logger.Info("usage incremented", "username", user.Username, "count", user.MonthlyRequestsCount)
	return nil
}

// RollbackUsage undoes an increment when the request failed after counting.
func (m *Manager) RollbackUsage(ctx context.Context, user *repository.User) {
	if err := m.store.DecrementUsage(ctx, user.ID); err != nil {
		m.logger.Error("failed to roll back usage", "username", user.Username, "error", err)
		return
	}
	if user.MonthlyRequestsCount > 0 {
		user.MonthlyRequestsCount--
	}
}

// UsageStats builds the quota snapshot for the user. Reading stats never
// mutates the account.
func (m *Manager) UsageStats(user *repository.User) UsageStats {
	cfg := m.ConfigFor(user)
	now := m.now()

	var resetDate time.Time
	if now.Month() == time.December {
		resetDate = time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
	} else {
		resetDate = time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	}

	stats := UsageStats{
		Tier:              user.Tier,
		TierName:          cfg.Name,
		RequestsUsed:      user.MonthlyRequestsCount,
		RequestsLimit:     cfg.MaxRequestsPerMonth,
		RequestsUnlimited: cfg.MaxRequestsPerMonth == nil,
		ResetDate:         resetDate.Format(time.RFC3339),
		DaysUntilReset:    int(resetDate.Sub(now).Hours() / 24),
		Features:          cfg.Features,
		MaxDistanceKm:     cfg.MaxDistanceKm,
		DistanceUnlimited: cfg.MaxDistanceKm == nil,
		Description:       cfg.Description,
	}
	if cfg.MaxRequestsPerMonth != nil {
		remaining := *cfg.MaxRequestsPerMonth - user.MonthlyRequestsCount
		stats.RequestsRemaining = &remaining
	}
	return stats
}

// SuggestUpgrade names the next plan up from the current tier. The top plan
// suggests itself and unknown tiers suggest Pro.
func (m *Manager) SuggestUpgrade(currentTier string) string {
	for i, t := range hierarchy {
		if t != currentTier {
			continue
		}
		if i < len(hierarchy)-1 {
			return configs[hierarchy[i+1]].Name
		}
		return "o plano atual"
	}
	return "Pro"
}

// UpgradeTier changes a user's plan and resets their counter.
func (m *Manager) UpgradeTier(ctx context.Context, user *repository.User, newTier string) error {
	if !IsValid(newTier) {
		return fmt.Errorf("tier inválido: %s", newTier)
	}

	now := m.now()
	if err := m.store.UpdateTier(ctx, user.ID, newTier, now); err != nil {
		return err
	}

	oldTier := user.Tier
	user.Tier = newTier
	user.MonthlyRequestsCount = 0
	user.LastResetDate = &now
	m.logger.Info("tier changed", "username", user.Username, "old_tier", oldTier, "new_tier", newTier)
	return nil
}
