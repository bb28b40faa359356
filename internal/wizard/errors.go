package wizard

import (
	"errors"
	"fmt"
)

// UsageError represents a caller error detected by the wizard.
//
// Usage errors include:
//   - Missing configuration: cluster set or scoring function never registered
//   - No pivot: similarity query with no explicit pivot and no best cluster
//   - Invalid suppression: Ignore called with a zero-value suppression
//
// UsageError includes structured fields for diagnostics.
type UsageError struct {
	// Code identifies the error category.
	Code UsageErrorCode

	// Message is a human-readable description.
	Message string
}

// UsageErrorCode categorizes usage errors.
type UsageErrorCode string

const (
	// ErrCodeClustersUnset indicates the cluster set was never configured.
	ErrCodeClustersUnset UsageErrorCode = "CLUSTERS_UNSET"

	// ErrCodeQualityUnset indicates no quality function is registered.
	ErrCodeQualityUnset UsageErrorCode = "QUALITY_UNSET"

	// ErrCodeSimilarityUnset indicates no similarity function is registered.
	ErrCodeSimilarityUnset UsageErrorCode = "SIMILARITY_UNSET"

	// ErrCodeNoPivot indicates a similarity query could not resolve a pivot
	// because every cluster is suppressed or the cluster set is empty.
	ErrCodeNoPivot UsageErrorCode = "NO_PIVOT"

	// ErrCodeInvalidSuppression indicates Ignore was called with a
	// suppression that names neither a cluster nor a pair.
	ErrCodeInvalidSuppression UsageErrorCode = "INVALID_SUPPRESSION"
)

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPreconditionError returns true if the error reports missing
// configuration (cluster set or scoring function not registered).
// Uses errors.As to handle wrapped errors.
func IsPreconditionError(err error) bool {
	var ue *UsageError
	if !errors.As(err, &ue) {
		return false
	}
	switch ue.Code {
	case ErrCodeClustersUnset, ErrCodeQualityUnset, ErrCodeSimilarityUnset:
		return true
	}
	return false
}

// IsInvalidSuppressionError returns true if the error reports a malformed
// suppression argument. Uses errors.As to handle wrapped errors.
func IsInvalidSuppressionError(err error) bool {
	var ue *UsageError
	if errors.As(err, &ue) {
		return ue.Code == ErrCodeInvalidSuppression
	}
	return false
}

func newUsageError(code UsageErrorCode, message string) *UsageError {
	return &UsageError{Code: code, Message: message}
}
