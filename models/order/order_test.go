package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tailor-booking/models/fulfillment"
)

func newTestOrder() *Order {
	return &Order{
		OrderNumber: "ORD-2026-001",
		Status:      StatusInProgress,
		Steps:       fulfillment.FullSteps(),
	}
}

func TestApplyStepMarksEarlierDoneAndLaterReset(t *testing.T) {
	ord := newTestOrder()

	err := ord.ApplyStep(2, "2026-08-30", "2:00 PM")
	assert.NoError(t, err)

	assert.True(t, ord.Steps[0].Done)
	assert.False(t, ord.Steps[0].Active)
	assert.True(t, ord.Steps[1].Done)
	assert.False(t, ord.Steps[1].Active)

	assert.False(t, ord.Steps[2].Done)
	assert.True(t, ord.Steps[2].Active)
	assert.Equal(t, "2026-08-30", ord.Steps[2].Date)
	assert.Equal(t, "2:00 PM", ord.Steps[2].Time)

	assert.False(t, ord.Steps[3].Done)
	assert.False(t, ord.Steps[3].Active)
	assert.False(t, ord.Steps[4].Done)
	assert.False(t, ord.Steps[4].Active)

	assert.Equal(t, StatusInProgress, ord.Status)
}

func TestApplyStepExactlyOneActive(t *testing.T) {
	ord := newTestOrder()

	for idx := range ord.Steps {
		err := ord.ApplyStep(idx, "", "")
		assert.NoError(t, err)

		active := 0
		for _, s := range ord.Steps {
			if s.Active {
				active++
			}
		}
		assert.Equal(t, 1, active, "step %d should leave exactly one active step", idx)
	}
}

func TestApplyStepLastStepCompletesOrder(t *testing.T) {
	ord := newTestOrder()

	err := ord.ApplyStep(len(ord.Steps)-1, "2026-09-05", "4:00 PM")
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, ord.Status)

	for i := 0; i < len(ord.Steps)-1; i++ {
		assert.True(t, ord.Steps[i].Done)
	}
}

func TestApplyStepMovingBackwardResetsLaterSteps(t *testing.T) {
	ord := newTestOrder()

	assert.NoError(t, ord.ApplyStep(3, "2026-08-30", "1:00 PM"))
	assert.NoError(t, ord.ApplyStep(1, "2026-08-31", "10:00 AM"))

	assert.True(t, ord.Steps[0].Done)
	assert.True(t, ord.Steps[1].Active)
	assert.False(t, ord.Steps[2].Done)
	assert.False(t, ord.Steps[3].Done)
	assert.False(t, ord.Steps[3].Active)
}

func TestApplyStepOutOfRange(t *testing.T) {
	ord := newTestOrder()

	assert.Error(t, ord.ApplyStep(-1, "", ""))
	assert.Error(t, ord.ApplyStep(len(ord.Steps), "", ""))
}

func TestApplyStepRepairPipeline(t *testing.T) {
	ord := &Order{
		Status: StatusInProgress,
		Steps:  fulfillment.RepairSteps(),
	}

	err := ord.ApplyStep(2, "2026-08-30", "3:00 PM")
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, ord.Status)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanBeCancelled())
	assert.True(t, StatusInProgress.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}
