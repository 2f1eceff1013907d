package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"game_store/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Các test dưới đây chỉ đi qua nhánh từ chối sớm của webhook
// (payload hỏng, sai chữ ký) nên không cần database.

func newWebhookApp() *fiber.App {
	app := fiber.New()
	app.Post("/momo/webhook", MoMoWebhook)
	app.Get("/vnpay/ipn", VNPayIPN)
	return app
}

func TestMoMoWebhookRejectsMalformedBody(t *testing.T) {
	app := newWebhookApp()

	req := httptest.NewRequest("POST", "/momo/webhook", strings.NewReader("khong-phai-json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMoMoWebhookRejectsEmptyOrderId(t *testing.T) {
	app := newWebhookApp()

	body, _ := json.Marshal(model.MoMoWebhookPayload{Signature: "abc"})
	req := httptest.NewRequest("POST", "/momo/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMoMoWebhookRejectsInvalidSignature(t *testing.T) {
	app := newWebhookApp()

	payload := model.MoMoWebhookPayload{
		PartnerCode: "MOMOTEST",
		OrderId:     "GS42-ab12cd34",
		Amount:      150000,
		ResultCode:  0,
		Signature:   "deadbeef",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/momo/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Message trả về chung chung, không lộ chi tiết chữ ký
	respBody, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(respBody), "Invalid signature")
	assert.NotContains(t, string(respBody), "deadbeef")
}

func TestVNPayIPNRejectsInvalidSignature(t *testing.T) {
	app := newWebhookApp()

	req := httptest.NewRequest("GET", "/vnpay/ipn?vnp_TxnRef=GS5-deadbeef&vnp_ResponseCode=00&vnp_SecureHash=deadbeef", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	respBody, _ := io.ReadAll(resp.Body)
	var ack map[string]string
	require.NoError(t, json.Unmarshal(respBody, &ack))
	assert.Equal(t, "97", ack["RspCode"])
}

func TestVNPayIPNRejectsMissingSignature(t *testing.T) {
	app := newWebhookApp()

	req := httptest.NewRequest("GET", "/vnpay/ipn?vnp_TxnRef=GS5-deadbeef&vnp_ResponseCode=00", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	respBody, _ := io.ReadAll(resp.Body)
	var ack map[string]string
	require.NoError(t, json.Unmarshal(respBody, &ack))
	assert.Equal(t, "97", ack["RspCode"])
}
