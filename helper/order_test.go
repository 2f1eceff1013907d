package helper

import (
	"strings"
	"testing"

	"game_store/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotal(t *testing.T) {
	items := []model.OrderItem{
		{Price: decimal.RequireFromString("150000.00")},
		{Price: decimal.RequireFromString("89000.50")},
		{Price: decimal.RequireFromString("0.50")},
	}

	total := ComputeOrderTotal(items)
	assert.True(t, total.Equal(decimal.RequireFromString("239001.00")), "total = %s", total)
}

func TestComputeOrderTotalEmpty(t *testing.T) {
	assert.True(t, ComputeOrderTotal(nil).IsZero())
}

func TestComputeCartTotal(t *testing.T) {
	items := []model.CartItem{
		{Game: model.Game{Price: decimal.NewFromInt(120000)}},
		{Game: model.Game{Price: decimal.NewFromInt(35000)}},
	}

	total := ComputeCartTotal(items)
	assert.True(t, total.Equal(decimal.NewFromInt(155000)))
}

func TestNewTransactionRefFormat(t *testing.T) {
	ref := NewTransactionRef(42)
	assert.True(t, strings.HasPrefix(ref, "GS42-"))
	assert.Len(t, ref, len("GS42-")+8)

	// Hai lần sinh cho cùng đơn phải khác nhau
	assert.NotEqual(t, ref, NewTransactionRef(42))
}
