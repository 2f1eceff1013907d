package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderCanTransitionTable(t *testing.T) {
	cases := []struct {
		from   string
		to     string
		expect bool
	}{
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusFailed, true},
		{OrderStatusConfirmed, OrderStatusCompleted, true},
		{OrderStatusFailed, OrderStatusPending, true},
		{OrderStatusFailed, OrderStatusCompleted, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
	}
	for _, tc := range cases {
		o := Order{Status: tc.from}
		assert.Equal(t, tc.expect, o.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderIsTerminal(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusCompleted}).IsTerminal())
	assert.True(t, (&Order{Status: OrderStatusCancelled}).IsTerminal())
	assert.False(t, (&Order{Status: OrderStatusPending}).IsTerminal())
	assert.False(t, (&Order{Status: OrderStatusFailed}).IsTerminal())
}
