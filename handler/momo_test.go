package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"game_store/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMoMo() *MoMo {
	return NewMoMoWithConfig(model.MoMoConfig{
		PartnerCode: "MOMOTEST",
		AccessKey:   "access123",
		SecretKey:   "secret456",
		Endpoint:    "https://test-payment.momo.vn",
		RedirectURL: "https://shop.example/thank-you",
		IPNURL:      "https://api.example/momo/webhook",
	})
}

func testWebhookPayload() model.MoMoWebhookPayload {
	return model.MoMoWebhookPayload{
		PartnerCode:  "MOMOTEST",
		OrderId:      "GS42-ab12cd34",
		RequestId:    "req-001",
		Amount:       150000,
		OrderInfo:    "Thanh toán đơn hàng ORD-ABC123",
		OrderType:    "momo_wallet",
		TransId:      2147483650,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1726000000000,
		ExtraData:    "",
	}
}

func TestMoMoWebhookRawSignatureFixedOrder(t *testing.T) {
	m := testMoMo()
	raw := m.BuildWebhookRawSignature(testWebhookPayload())

	expected := "accessKey=access123" +
		"&amount=150000" +
		"&extraData=" +
		"&message=Successful." +
		"&orderId=GS42-ab12cd34" +
		"&orderInfo=Thanh toán đơn hàng ORD-ABC123" +
		"&orderType=momo_wallet" +
		"&partnerCode=MOMOTEST" +
		"&payType=qr" +
		"&requestId=req-001" +
		"&responseTime=1726000000000" +
		"&resultCode=0" +
		"&transId=2147483650"
	assert.Equal(t, expected, raw)
}

func TestMoMoVerifyWebhookSignature(t *testing.T) {
	m := testMoMo()
	payload := testWebhookPayload()

	h := hmac.New(sha256.New, []byte("secret456"))
	h.Write([]byte(m.BuildWebhookRawSignature(payload)))
	payload.Signature = hex.EncodeToString(h.Sum(nil))

	assert.True(t, m.VerifyWebhookSignature(payload))
}

func TestMoMoVerifyWebhookSignatureRejectsTampered(t *testing.T) {
	m := testMoMo()
	payload := testWebhookPayload()

	h := hmac.New(sha256.New, []byte("secret456"))
	h.Write([]byte(m.BuildWebhookRawSignature(payload)))
	payload.Signature = hex.EncodeToString(h.Sum(nil))
	require.True(t, m.VerifyWebhookSignature(payload))

	// Đổi amount sau khi ký: chữ ký phải không khớp
	payload.Amount = 1
	assert.False(t, m.VerifyWebhookSignature(payload))
}

func TestMoMoVerifyWebhookSignatureRejectsMissing(t *testing.T) {
	m := testMoMo()
	payload := testWebhookPayload()
	payload.Signature = ""

	assert.False(t, m.VerifyWebhookSignature(payload))
}

func TestMoMoVerifyWebhookSignatureRejectsWrongKey(t *testing.T) {
	m := testMoMo()
	payload := testWebhookPayload()

	h := hmac.New(sha256.New, []byte("khac-secret"))
	h.Write([]byte(m.BuildWebhookRawSignature(payload)))
	payload.Signature = hex.EncodeToString(h.Sum(nil))

	assert.False(t, m.VerifyWebhookSignature(payload))
}

func TestMoMoEachFieldAffectsSignature(t *testing.T) {
	m := testMoMo()
	base := m.BuildWebhookRawSignature(testWebhookPayload())

	mutations := []func(p *model.MoMoWebhookPayload){
		func(p *model.MoMoWebhookPayload) { p.Amount = 999 },
		func(p *model.MoMoWebhookPayload) { p.OrderId = "GS42-khac" },
		func(p *model.MoMoWebhookPayload) { p.ResultCode = 1006 },
		func(p *model.MoMoWebhookPayload) { p.TransId = 1 },
		func(p *model.MoMoWebhookPayload) { p.Message = "Failed." },
		func(p *model.MoMoWebhookPayload) { p.ExtraData = "x" },
	}
	for i, mutate := range mutations {
		p := testWebhookPayload()
		mutate(&p)
		assert.NotEqual(t, base, m.BuildWebhookRawSignature(p), "mutation %d", i)
	}
}

func TestMoMoCreateRawSignature(t *testing.T) {
	m := testMoMo()
	req := model.MoMoCreateRequest{
		PartnerCode: "MOMOTEST",
		RequestId:   "req-002",
		Amount:      90000,
		OrderId:     "GS7-ff00aa11",
		OrderInfo:   "Thanh toán đơn hàng ORD-XYZ789",
		RedirectUrl: "https://shop.example/thank-you",
		IpnUrl:      "https://api.example/momo/webhook",
		RequestType: "captureWallet",
		ExtraData:   "",
	}

	raw := m.buildCreateRawSignature(req)
	expected := "accessKey=access123" +
		"&amount=90000" +
		"&extraData=" +
		"&ipnUrl=https://api.example/momo/webhook" +
		"&orderId=GS7-ff00aa11" +
		"&orderInfo=Thanh toán đơn hàng ORD-XYZ789" +
		"&partnerCode=MOMOTEST" +
		"&redirectUrl=https://shop.example/thank-you" +
		"&requestId=req-002" +
		"&requestType=captureWallet"
	assert.Equal(t, expected, raw)
}
