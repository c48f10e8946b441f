package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrProjectNotFound indicates that a project with the given ID does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrDividendPaymentNotFound indicates that a dividend payment with the given ID does not exist.
	ErrDividendPaymentNotFound = errors.New("dividend payment not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidStatusTransition indicates that a record cannot move from its
	// current status to the requested one (e.g. refunding a pending investment).
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrProjectNotOpen indicates that a project no longer accepts investments.
	ErrProjectNotOpen = errors.New("project is not open for investment")

	// ErrInsufficientPendingRevenue indicates that the requested distribution is
	// larger than the revenue that has not been distributed yet.
	ErrInsufficientPendingRevenue = errors.New("distribution exceeds pending revenue")

	// ErrInvalidAmountPrecision indicates a monetary amount with more than two decimal places.
	ErrInvalidAmountPrecision = errors.New("amount cannot have more than two decimal places")

	// ErrNonPositiveAmount indicates that an amount must be greater than zero.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// Concurrency errors are returned when two writers race on the same project.
// Callers are expected to retry the whole operation.
var (
	// ErrConcurrentModification indicates the project row changed between read and write.
	ErrConcurrentModification = errors.New("project was modified concurrently")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveProjects    = errors.New("failed to retrieve projects")
	ErrFailedToRetrieveProject     = errors.New("failed to retrieve project")
	ErrFailedToCreateProject       = errors.New("failed to create project")
	ErrFailedToRecordRevenue       = errors.New("failed to record revenue")
	ErrFailedToRetrieveInvestment  = errors.New("failed to retrieve investment")
	ErrFailedToCreateInvestment    = errors.New("failed to create investment")
	ErrFailedToUpdateInvestment    = errors.New("failed to update investment")
	ErrFailedToCalculateDividends  = errors.New("failed to calculate dividends")
	ErrFailedToDistributeDividends = errors.New("failed to distribute dividends")
	ErrFailedToRetrieveDividends   = errors.New("failed to retrieve dividends")
	ErrFailedToUpdateDividend      = errors.New("failed to update dividend payment")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., completed investments do not add up to the project's current funding).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
