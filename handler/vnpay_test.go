package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"

	"game_store/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVNPay() *VNPay {
	return NewVNPayWithConfig(model.VNPayConfig{
		TmnCode:    "TESTTMN1",
		HashSecret: "vnpaysecret",
		BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://api.example/vnpay/return",
		IPNURL:     "https://api.example/vnpay/ipn",
	})
}

func signVNPay(secret, data string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVNPayBuildHashDataSortedAndEncoded(t *testing.T) {
	v := testVNPay()

	params := url.Values{}
	params.Set("vnp_TxnRef", "GS5-deadbeef")
	params.Set("vnp_Amount", "15000000")
	params.Set("vnp_OrderInfo", "Thanh toan don hang ORD-ABC123")
	params.Set("other_param", "phai-bi-bo-qua")

	hashData := v.BuildHashData(params)

	// Chỉ param vnp_, sắp theo key, value được URL-encode
	assert.Equal(t,
		"vnp_Amount=15000000&vnp_OrderInfo=Thanh+toan+don+hang+ORD-ABC123&vnp_TxnRef=GS5-deadbeef",
		hashData)
	assert.NotContains(t, hashData, "other_param")
}

func TestVNPayBuildPaymentUrl(t *testing.T) {
	v := testVNPay()

	paymentUrl, err := v.BuildPaymentUrl(model.VNPayPaymentRequest{
		Amount:    150000,
		OrderInfo: "Thanh toan don hang",
		TxnRef:    "GS5-deadbeef",
		IPAddr:    "203.0.113.7",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(paymentUrl)
	require.NoError(t, err)
	query := parsed.Query()

	assert.True(t, strings.HasPrefix(paymentUrl, v.Config.BaseURL))
	assert.Equal(t, "2.1.0", query.Get("vnp_Version"))
	assert.Equal(t, "pay", query.Get("vnp_Command"))
	assert.Equal(t, "TESTTMN1", query.Get("vnp_TmnCode"))
	// Amount nhân 100 theo quy ước VNPay
	assert.Equal(t, "15000000", query.Get("vnp_Amount"))
	assert.Equal(t, "GS5-deadbeef", query.Get("vnp_TxnRef"))
	assert.NotEmpty(t, query.Get("vnp_SecureHash"))

	// Chữ ký trên URL phải khớp dữ liệu ký
	data := url.Values{}
	for k, vals := range query {
		if k == "vnp_SecureHash" {
			continue
		}
		data[k] = vals
	}
	assert.Equal(t, signVNPay("vnpaysecret", v.BuildHashData(data)), query.Get("vnp_SecureHash"))
}

func vnpCallbackQuery(secret string, responseCode string) url.Values {
	query := url.Values{}
	query.Set("vnp_TmnCode", "TESTTMN1")
	query.Set("vnp_Amount", "15000000")
	query.Set("vnp_TxnRef", "GS5-deadbeef")
	query.Set("vnp_ResponseCode", responseCode)
	query.Set("vnp_TransactionNo", "14226112")
	query.Set("vnp_BankCode", "NCB")

	v := testVNPay()
	query.Set("vnp_SecureHash", signVNPay(secret, v.BuildHashData(query)))
	return query
}

func TestVNPayVerifyCallbackSuccess(t *testing.T) {
	v := testVNPay()
	result := v.VerifyCallback(vnpCallbackQuery("vnpaysecret", "00"))

	assert.True(t, result.IsValid)
	assert.True(t, result.IsSuccess)
	assert.Equal(t, "GS5-deadbeef", result.TxnRef)
	assert.Equal(t, int64(150000), result.Amount)
}

func TestVNPayVerifyCallbackFailureCode(t *testing.T) {
	v := testVNPay()
	result := v.VerifyCallback(vnpCallbackQuery("vnpaysecret", "24"))

	assert.True(t, result.IsValid)
	assert.False(t, result.IsSuccess)
	assert.Contains(t, result.Message, "24")
}

func TestVNPayVerifyCallbackRejectsBadSignature(t *testing.T) {
	v := testVNPay()
	result := v.VerifyCallback(vnpCallbackQuery("sai-secret", "00"))

	assert.False(t, result.IsValid)
	assert.False(t, result.IsSuccess)
}

func TestVNPayVerifyCallbackRejectsMissingSignature(t *testing.T) {
	v := testVNPay()
	query := vnpCallbackQuery("vnpaysecret", "00")
	query.Del("vnp_SecureHash")

	result := v.VerifyCallback(query)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Missing signature", result.Message)
}

func TestVNPayVerifyCallbackRejectsTamperedAmount(t *testing.T) {
	v := testVNPay()
	query := vnpCallbackQuery("vnpaysecret", "00")
	query.Set("vnp_Amount", "100")

	result := v.VerifyCallback(query)
	assert.False(t, result.IsValid)
}

func TestVNPayVerifyCallbackIgnoresSecureHashType(t *testing.T) {
	// vnp_SecureHashType không nằm trong dữ liệu ký
	v := testVNPay()
	query := vnpCallbackQuery("vnpaysecret", "00")
	query.Set("vnp_SecureHashType", "HMACSHA512")

	result := v.VerifyCallback(query)
	assert.True(t, result.IsValid)
}

func TestVNPayVerifyCallbackAcceptsUppercaseSignature(t *testing.T) {
	v := testVNPay()
	query := vnpCallbackQuery("vnpaysecret", "00")
	query.Set("vnp_SecureHash", strings.ToUpper(query.Get("vnp_SecureHash")))

	result := v.VerifyCallback(query)
	assert.True(t, result.IsValid)
}
