package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given name does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrConfigurationNotFound indicates that no configuration row exists for a fund.
	ErrConfigurationNotFound = errors.New("configuration not found")

	// ErrTemplateNotFound indicates that a template with the given name does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLogEntryNotFound indicates that a reconciliation log entry does not exist.
	ErrLogEntryNotFound = errors.New("log entry not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrAlertSettingNotFound indicates the alert channel has not been configured.
	ErrAlertSettingNotFound = errors.New("alert setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrNegativeTolerance indicates a tolerance below zero was submitted.
	ErrNegativeTolerance = errors.New("tolerance cannot be negative")

	// ErrEmptyName indicates that a required name parameter is empty or missing.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrSecretKeyMissing indicates that no encryption key is configured, so
	// credentials cannot be stored at rest.
	ErrSecretKeyMissing = errors.New("secret key not configured")
)

// Upstream errors represent failures of the external board price source.
var (
	// ErrBoardPriceUnavailable indicates the board price could not be obtained
	// from the market data source. Surfaced to callers as a retryable 503;
	// the underlying transport or parse failure is logged, never propagated.
	ErrBoardPriceUnavailable = errors.New("board price unavailable")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveFunds         = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveConfiguration = errors.New("failed to retrieve configuration")
	ErrFailedToRetrieveTemplates     = errors.New("failed to retrieve templates")
	ErrFailedToRetrieveLogs          = errors.New("failed to retrieve logs")
	ErrFailedToGetVersionInfo        = errors.New("failed to get version information")
)
