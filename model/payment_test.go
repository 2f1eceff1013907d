package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentApplyOutcomeSuccess(t *testing.T) {
	p := Payment{Status: PaymentStatusPending}

	changed, err := p.ApplyOutcome(true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, PaymentStatusCompleted, p.Status)
	assert.NotNil(t, p.PaymentDate)
}

func TestPaymentApplyOutcomeSuccessIdempotent(t *testing.T) {
	p := Payment{Status: PaymentStatusPending}

	changed, err := p.ApplyOutcome(true)
	require.NoError(t, err)
	require.True(t, changed)
	firstDate := p.PaymentDate

	// Webhook gửi lại lần 2, lần 3
	for i := 0; i < 2; i++ {
		changed, err = p.ApplyOutcome(true)
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.Equal(t, PaymentStatusCompleted, p.Status)
	assert.Equal(t, firstDate, p.PaymentDate)
}

func TestPaymentApplyOutcomeFailureIdempotent(t *testing.T) {
	p := Payment{Status: PaymentStatusPending}

	changed, err := p.ApplyOutcome(false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, PaymentStatusFailed, p.Status)

	changed, err = p.ApplyOutcome(false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, PaymentStatusFailed, p.Status)
}

func TestPaymentCompletedIsNotDowngraded(t *testing.T) {
	p := Payment{Status: PaymentStatusCompleted}

	changed, err := p.ApplyOutcome(false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, PaymentStatusCompleted, p.Status)
}

func TestPaymentStaleSuccessAfterFailed(t *testing.T) {
	// Callback "thành công" đến sau khi giao dịch đã FAILED phải bị từ chối,
	// FAILED chỉ mở lại qua khởi tạo thanh toán mới.
	p := Payment{Status: PaymentStatusFailed}

	changed, err := p.ApplyOutcome(true)
	assert.ErrorIs(t, err, ErrStaleOutcome)
	assert.False(t, changed)
	assert.Equal(t, PaymentStatusFailed, p.Status)
}

func TestPaymentRefundedIsTerminal(t *testing.T) {
	p := Payment{Status: PaymentStatusRefunded}

	changed, err := p.ApplyOutcome(false)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = p.ApplyOutcome(true)
	assert.ErrorIs(t, err, ErrStaleOutcome)
	assert.False(t, changed)
}

func TestPaymentResetForRetry(t *testing.T) {
	now := decimal.NewFromInt(150000)
	p := Payment{
		Status:        PaymentStatusFailed,
		TransactionId: "GS1-aaaa",
		Method:        PaymentMethodMoMo,
	}

	err := p.ResetForRetry("GS1-bbbb", "https://pay.example/2", PaymentMethodVNPay, now)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Equal(t, "GS1-bbbb", p.TransactionId)
	assert.Equal(t, PaymentMethodVNPay, p.Method)
	assert.True(t, p.Amount.Equal(now))
	assert.Nil(t, p.PaymentDate)
}

func TestPaymentResetForRetryFromProcessing(t *testing.T) {
	p := Payment{Status: PaymentStatusProcessing}

	err := p.ResetForRetry("GS2-cccc", "", PaymentMethodMoMo, decimal.NewFromInt(90000))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, p.Status)
}

func TestPaymentResetForRetryRejectsCompleted(t *testing.T) {
	p := Payment{Status: PaymentStatusCompleted}

	err := p.ResetForRetry("GS3-dddd", "", PaymentMethodMoMo, decimal.NewFromInt(90000))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PaymentStatusCompleted, p.Status)
}

func TestPaymentCanTransitionTable(t *testing.T) {
	cases := []struct {
		from   string
		to     string
		expect bool
	}{
		{PaymentStatusPending, PaymentStatusCompleted, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},
		{PaymentStatusFailed, PaymentStatusPending, true},
		{PaymentStatusFailed, PaymentStatusCompleted, false},
		{PaymentStatusCompleted, PaymentStatusRefunded, true},
		{PaymentStatusCompleted, PaymentStatusPending, false},
		{PaymentStatusRefunded, PaymentStatusPending, false},
	}
	for _, tc := range cases {
		p := Payment{Status: tc.from}
		assert.Equal(t, tc.expect, p.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
