package budget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sdch/pkg/budget"
)

func TestInvariantWindowSum(t *testing.T) {
	cfg := budget.DefaultConfig()
	b := budget.Allocate(cfg, 5000)

	assert.Equal(t, b.TotalWindow, b.System+b.History+b.ResponseBuffer+b.DocumentMax)
	assert.GreaterOrEqual(t, b.System, 0)
	assert.GreaterOrEqual(t, b.History, 0)
	assert.GreaterOrEqual(t, b.ResponseBuffer, 0)
	assert.GreaterOrEqual(t, b.DocumentAllocated, 0)
}

func TestTruncationWhenRequestExceedsMax(t *testing.T) {
	cfg := budget.DefaultConfig()
	b := budget.Allocate(cfg, cfg.TotalWindow*2)

	assert.True(t, b.Truncated)
	assert.Equal(t, b.DocumentMax, b.DocumentAllocated)
}

func TestUtilizationIsPercentOfRequested(t *testing.T) {
	cfg := budget.DefaultConfig()
	b := budget.Allocate(cfg, 1000)

	assert.Equal(t, 100, b.UtilizationPercent)
}

func TestUtilizationOnTruncation(t *testing.T) {
	cfg := budget.Config{TotalWindow: 100, ReservedSystem: 0, ReservedHistory: 0, ReservedResponse: 0}
	b := budget.Allocate(cfg, 200)

	assert.Equal(t, 50, b.UtilizationPercent)
}
