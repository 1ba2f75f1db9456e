package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/navassist/nav-reconciler/internal/config"
	"github.com/navassist/nav-reconciler/internal/notify"
	"github.com/navassist/nav-reconciler/internal/repository"
	"github.com/navassist/nav-reconciler/internal/secrets"
	"github.com/navassist/nav-reconciler/internal/service"
	"github.com/navassist/nav-reconciler/internal/tsetmc"
)

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)

	return service.NewFundService(fundRepo)
}

func NewTestConfigurationService(t *testing.T, db *sql.DB) *service.ConfigurationService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	configRepo := repository.NewConfigurationRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	return service.NewConfigurationService(
		fundRepo,
		configRepo,
		templateRepo,
	)
}

// NewTestAlertService creates an AlertService that dispatches through the
// given notifier instead of a real Telegram bot. The environment fallback
// credentials are always populated so every dispatch reaches the notifier.
func NewTestAlertService(t *testing.T, db *sql.DB, notifier notify.Notifier) *service.AlertService {
	t.Helper()

	alertRepo := repository.NewAlertRepository(db)
	fallback := config.TelegramConfig{BotToken: "test-token", ChatID: 42}

	return service.NewAlertService(alertRepo, nil, fallback,
		func(_ string, _ int64) (notify.Notifier, error) {
			return notifier, nil
		})
}

// NewTestAlertServiceWithBox creates an AlertService with a freshly
// generated encryption key and no environment fallback, so stored
// credentials are the only dispatch path.
func NewTestAlertServiceWithBox(t *testing.T, db *sql.DB, notifier notify.Notifier) *service.AlertService {
	t.Helper()

	alertRepo := repository.NewAlertRepository(db)
	box, err := secrets.NewBox(MakeSecretKey(t))
	if err != nil {
		t.Fatalf("Failed to create secret box: %v", err)
	}

	return service.NewAlertService(alertRepo, box, config.TelegramConfig{},
		func(_ string, _ int64) (notify.Notifier, error) {
			return notifier, nil
		})
}

// MakeSecretKey generates an encoded fernet key for tests.
func MakeSecretKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

// NewTestReconcileService creates a ReconcileService wired to the given
// market client mock and notifier mock.
func NewTestReconcileService(t *testing.T, db *sql.DB, market tsetmc.Client, notifier notify.Notifier) *service.ReconcileService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	logRepo := repository.NewLogRepository(db)
	configService := NewTestConfigurationService(t, db)
	alertService := NewTestAlertService(t, db, notifier)

	return service.NewReconcileService(
		fundRepo,
		logRepo,
		configService,
		alertService,
		market,
	)
}

func NewTestSymbolService(t *testing.T, db *sql.DB, market tsetmc.Client) *service.SymbolService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	symbolRepo := repository.NewSymbolRepository(db)

	return service.NewSymbolService(fundRepo, symbolRepo, market)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a display symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("NAV")
//	// Returns: "NAV1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Growth Fund")
//	// Returns: "Growth Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// FloatPtr returns a pointer to the given float, for optional request fields.
func FloatPtr(v float64) *float64 {
	return &v
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
