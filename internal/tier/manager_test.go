package tier

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"smartroute/internal/repository"
	"smartroute/internal/types"
)

type mockStore struct {
	incrementErr error
	decrementErr error
	resetErr     error
	updateErr    error

	increments int
	decrements int
	resets     int
	updates    []string
}

func (m *mockStore) IncrementUsage(ctx context.Context, userID int64) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	m.increments++
	return nil
}

func (m *mockStore) DecrementUsage(ctx context.Context, userID int64) error {
	if m.decrementErr != nil {
		return m.decrementErr
	}
	m.decrements++
	return nil
}

func (m *mockStore) ResetMonthlyCount(ctx context.Context, userID int64, resetAt time.Time) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resets++
	return nil
}

func (m *mockStore) UpdateTier(ctx context.Context, userID int64, tier string, resetAt time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, tier)
	return nil
}

var (
	shortOrigin = types.Coordinate{Latitude: -23.5505, Longitude: -46.6333}
	// ~1.5 km away, inside every plan's distance limit.
	shortDestination = types.Coordinate{Latitude: -23.5629, Longitude: -46.6544}
	// Rio de Janeiro, ~360 km away, past the free and pro limits.
	farDestination = types.Coordinate{Latitude: -22.9068, Longitude: -43.1729}
)

func newTestManager(store *mockStore, now time.Time) *Manager {
	m := NewManager(store, slog.Default())
	m.now = func() time.Time { return now }
	return m
}

func testUser(tier string, count int, lastReset *time.Time) *repository.User {
	return &repository.User{
		ID:                   1,
		Username:             "maria",
		Tier:                 tier,
		MonthlyRequestsCount: count,
		LastResetDate:        lastReset,
	}
}

func TestCheckCanMakeRequest(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	currentMonth := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		user        *repository.User
		destination types.Coordinate
		wantAllowed bool
		wantMessage string
	}{
		{
			name:        "free user under limit",
			user:        testUser("free", 4, &currentMonth),
			destination: shortDestination,
			wantAllowed: true,
		},
		{
			name:        "free user at request limit",
			user:        testUser("free", 5, &currentMonth),
			destination: shortDestination,
			wantAllowed: false,
			wantMessage: "Limite de 5 requisições mensais atingido. Upgrade para Pro para continuar.",
		},
		{
			name:        "free user over distance limit",
			user:        testUser("free", 0, &currentMonth),
			destination: farDestination,
			wantAllowed: false,
			wantMessage: "limite de 20km do plano Free",
		},
		{
			name:        "pro user over distance limit",
			user:        testUser("pro", 0, &currentMonth),
			destination: farDestination,
			wantAllowed: false,
			wantMessage: "limite de 200km do plano Pro",
		},
		{
			name:        "master user has no distance limit",
			user:        testUser("master", 499, &currentMonth),
			destination: farDestination,
			wantAllowed: true,
		},
		{
			name:        "admin user has no limits",
			user:        testUser("admin", 100000, &currentMonth),
			destination: farDestination,
			wantAllowed: true,
		},
		{
			name:        "unknown tier treated as free",
			user:        testUser("platinum", 5, &currentMonth),
			destination: shortDestination,
			wantAllowed: false,
			wantMessage: "Limite de 5 requisições",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(&mockStore{}, now)
			allowed, msg, _ := m.CheckCanMakeRequest(context.Background(), tt.user, shortOrigin, tt.destination)
			if allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v (msg=%q)", allowed, tt.wantAllowed, msg)
			}
			if tt.wantMessage != "" && !strings.Contains(msg, tt.wantMessage) {
				t.Errorf("message %q does not contain %q", msg, tt.wantMessage)
			}
		})
	}
}

func TestCheckCanMakeRequest_ResetsBeforeCapCheck(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	store := &mockStore{}
	m := newTestManager(store, now)

	// Maxed out last month. A new month must reopen the window.
	user := testUser("free", 5, &lastMonth)
	allowed, msg, stats := m.CheckCanMakeRequest(context.Background(), user, shortOrigin, shortDestination)

	if !allowed {
		t.Fatalf("expected request allowed after monthly reset, got %q", msg)
	}
	if user.MonthlyRequestsCount != 0 {
		t.Errorf("counter = %d, want 0 after reset", user.MonthlyRequestsCount)
	}
	if store.resets != 1 {
		t.Errorf("persisted resets = %d, want 1", store.resets)
	}
	if stats.RequestsUsed != 0 {
		t.Errorf("stats.RequestsUsed = %d, want 0", stats.RequestsUsed)
	}
}

func TestCheckCanMakeRequest_FirstUseInitializesResetDate(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	m := newTestManager(store, now)

	user := testUser("free", 3, nil)
	allowed, _, _ := m.CheckCanMakeRequest(context.Background(), user, shortOrigin, shortDestination)

	if !allowed {
		t.Fatal("expected request allowed")
	}
	if user.LastResetDate == nil || !user.LastResetDate.Equal(now) {
		t.Errorf("LastResetDate = %v, want %v", user.LastResetDate, now)
	}
	if user.MonthlyRequestsCount != 0 {
		t.Errorf("counter = %d, want 0 on first use", user.MonthlyRequestsCount)
	}
}

func TestCheckCanMakeRequest_ResetPersistFailureStillAllows(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	store := &mockStore{resetErr: errors.New("disk full")}
	m := newTestManager(store, now)

	user := testUser("free", 5, &lastMonth)
	allowed, msg, _ := m.CheckCanMakeRequest(context.Background(), user, shortOrigin, shortDestination)

	if !allowed {
		t.Errorf("expected in-memory reset to allow the request, got %q", msg)
	}
}

func TestIncrementAndRollback(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	m := newTestManager(store, now)
	user := testUser("free", 2, &now)

	if err := m.IncrementUsage(context.Background(), user); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}
	if user.MonthlyRequestsCount != 3 {
		t.Errorf("counter = %d, want 3", user.MonthlyRequestsCount)
	}

	m.RollbackUsage(context.Background(), user)
	if user.MonthlyRequestsCount != 2 {
		t.Errorf("counter = %d, want 2 after rollback", user.MonthlyRequestsCount)
	}
	if store.increments != 1 || store.decrements != 1 {
		t.Errorf("store calls = %d/%d, want 1/1", store.increments, store.decrements)
	}
}

func TestIncrementUsage_PersistFailureDoesNotCount(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &mockStore{incrementErr: errors.New("locked")}
	m := newTestManager(store, now)
	user := testUser("free", 2, &now)

	if err := m.IncrementUsage(context.Background(), user); err == nil {
		t.Fatal("expected error from failed persist")
	}
	if user.MonthlyRequestsCount != 2 {
		t.Errorf("counter = %d, want unchanged 2", user.MonthlyRequestsCount)
	}
}

func TestUsageStats(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	m := newTestManager(&mockStore{}, now)
	user := testUser("free", 3, &now)

	stats := m.UsageStats(user)

	if stats.Tier != "free" || stats.TierName != "Free" {
		t.Errorf("tier = %s/%s, want free/Free", stats.Tier, stats.TierName)
	}
	if stats.RequestsLimit == nil || *stats.RequestsLimit != 5 {
		t.Errorf("RequestsLimit = %v, want 5", stats.RequestsLimit)
	}
	if stats.RequestsRemaining == nil || *stats.RequestsRemaining != 2 {
		t.Errorf("RequestsRemaining = %v, want 2", stats.RequestsRemaining)
	}
	if !strings.HasPrefix(stats.ResetDate, "2026-04-01") {
		t.Errorf("ResetDate = %s, want first of April", stats.ResetDate)
	}
	if stats.DaysUntilReset != 16 {
		t.Errorf("DaysUntilReset = %d, want 16", stats.DaysUntilReset)
	}
	if stats.Features.TrafficOptimization {
		t.Error("free plan should not include traffic optimization")
	}
}

func TestUsageStats_DecemberRollsToJanuary(t *testing.T) {
	now := time.Date(2026, time.December, 20, 12, 0, 0, 0, time.UTC)
	m := newTestManager(&mockStore{}, now)
	user := testUser("pro", 10, &now)

	stats := m.UsageStats(user)

	if !strings.HasPrefix(stats.ResetDate, "2027-01-01") {
		t.Errorf("ResetDate = %s, want first of January 2027", stats.ResetDate)
	}
}

func TestUsageStats_IsIdempotent(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	m := newTestManager(store, now)
	user := testUser("admin", 42, &now)

	first := m.UsageStats(user)
	second := m.UsageStats(user)

	if first != second {
		t.Errorf("stats changed between reads: %+v vs %+v", first, second)
	}
	if !first.RequestsUnlimited || first.RequestsLimit != nil {
		t.Errorf("admin plan should be unlimited: %+v", first)
	}
	if store.resets != 0 || store.increments != 0 {
		t.Error("reading stats must not mutate the account")
	}
}

func TestSuggestUpgrade(t *testing.T) {
	m := newTestManager(&mockStore{}, time.Now())

	tests := []struct {
		tier string
		want string
	}{
		{tier: "free", want: "Pro"},
		{tier: "pro", want: "Master"},
		{tier: "master", want: "Admin"},
		{tier: "admin", want: "o plano atual"},
		{tier: "platinum", want: "Pro"},
	}

	for _, tt := range tests {
		if got := m.SuggestUpgrade(tt.tier); got != tt.want {
			t.Errorf("SuggestUpgrade(%q) = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

func TestUpgradeTier(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	m := newTestManager(store, now)
	user := testUser("free", 4, &now)

	if err := m.UpgradeTier(context.Background(), user, "pro"); err != nil {
		t.Fatalf("UpgradeTier() error = %v", err)
	}
	if user.Tier != "pro" {
		t.Errorf("tier = %s, want pro", user.Tier)
	}
	if user.MonthlyRequestsCount != 0 {
		t.Errorf("counter = %d, want 0 after upgrade", user.MonthlyRequestsCount)
	}
	if len(store.updates) != 1 || store.updates[0] != "pro" {
		t.Errorf("persisted updates = %v, want [pro]", store.updates)
	}
}

func TestUpgradeTier_InvalidTier(t *testing.T) {
	m := newTestManager(&mockStore{}, time.Now())
	user := testUser("free", 0, nil)

	if err := m.UpgradeTier(context.Background(), user, "platinum"); err == nil {
		t.Fatal("expected error for unknown tier")
	}
	if user.Tier != "free" {
		t.Errorf("tier = %s, want unchanged free", user.Tier)
	}
}
