package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrQuoteNotFound indicates that no market quote is available for a ticker.
	ErrQuoteNotFound = errors.New("quote not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientFunds indicates that a buy or withdrawal exceeds the available cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientQuantity indicates that a sell exceeds the quantity currently held.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrInvalidTransaction indicates that a transaction is missing a field required
	// for its kind or carries an out-of-range value.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveAccount      = errors.New("failed to retrieve account")
	ErrFailedToCreateAccount        = errors.New("failed to create account")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRecordTransaction    = errors.New("failed to record transaction")
	ErrFailedToGetPortfolioSummary  = errors.New("failed to get portfolio summary")
	ErrFailedToGetPortfolioHistory  = errors.New("failed to get portfolio history")
	ErrFailedToGetHoldings          = errors.New("failed to get holdings")
	ErrFailedToRetrieveQuotes       = errors.New("failed to retrieve quotes")
	ErrFailedToRefreshQuotes        = errors.New("failed to refresh quotes")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
	ErrFailedToAuditAccount         = errors.New("failed to audit account")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that derived state disagrees with a full replay
	// of the transaction log.
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
