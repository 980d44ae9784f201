package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	val := NewValidationError("qty", "must not be negative")
	risk := &RiskViolationError{Rule: "max_order_qty", Detail: "too big"}
	inv := &InternalInvariantError{OrderID: "o-1", Detail: "overfill"}

	assert.True(t, IsValidation(val))
	assert.False(t, IsValidation(risk))

	assert.True(t, IsRiskViolation(risk))
	assert.False(t, IsRiskViolation(inv))

	assert.True(t, IsInternalInvariant(inv))
	assert.False(t, IsInternalInvariant(val))
}

func TestErrorClassificationSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("submit failed: %w", NewValidationError("symbol", "required"))
	assert.True(t, IsValidation(err))
}
