package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"game_store/config"
	"game_store/model"

	"github.com/google/uuid"
)

var (
	// ErrGatewayUnavailable: lỗi mạng/5xx từ gateway, khách có thể thử lại.
	ErrGatewayUnavailable = errors.New("cổng thanh toán đang gián đoạn")
	// ErrGatewayProtocol: gateway trả về dữ liệu không như kỳ vọng,
	// lần khởi tạo này coi như thất bại.
	ErrGatewayProtocol = errors.New("cổng thanh toán trả về dữ liệu không hợp lệ")
)

// MoMo Service
type MoMo struct {
	Config model.MoMoConfig
	Client *http.Client
}

func NewMoMo() *MoMo {
	return NewMoMoWithConfig(model.MoMoConfig{
		PartnerCode: config.Config("MOMO_PARTNER_CODE"),
		AccessKey:   config.Config("MOMO_ACCESS_KEY"),
		SecretKey:   config.Config("MOMO_SECRET_KEY"),
		Endpoint:    config.Config("MOMO_ENDPOINT"),
		RedirectURL: config.Config("FRONTEND_URL") + "/thank-you",
		IPNURL:      config.Config("APP_URL") + "/momo/webhook",
	})
}

func NewMoMoWithConfig(cfg model.MoMoConfig) *MoMo {
	return &MoMo{
		Config: cfg,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePayment gọi /v2/gateway/api/create (captureWallet) và trả về
// response chứa payUrl để redirect khách sang MoMo.
func (m *MoMo) CreatePayment(amount int64, txnRef, orderInfo string) (*model.MoMoCreateResponse, error) {
	req := model.MoMoCreateRequest{
		PartnerCode: m.Config.PartnerCode,
		RequestId:   uuid.NewString(),
		Amount:      amount,
		OrderId:     txnRef,
		OrderInfo:   orderInfo,
		RedirectUrl: m.Config.RedirectURL,
		IpnUrl:      m.Config.IPNURL,
		RequestType: "captureWallet",
		ExtraData:   "",
		Lang:        "vi",
	}
	req.Signature = m.sign(m.buildCreateRawSignature(req))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpResp, err := m.Client.Post(
		m.Config.Endpoint+"/v2/gateway/api/create",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: http %d", ErrGatewayUnavailable, httpResp.StatusCode)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d", ErrGatewayProtocol, httpResp.StatusCode)
	}

	var resp model.MoMoCreateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayProtocol, err)
	}
	if resp.ResultCode != 0 || resp.PayUrl == "" {
		return nil, fmt.Errorf("%w: resultCode=%d message=%s", ErrGatewayProtocol, resp.ResultCode, resp.Message)
	}

	return &resp, nil
}

// buildCreateRawSignature: chuỗi ký request khởi tạo, thứ tự field cố định
// theo tài liệu MoMo.
func (m *MoMo) buildCreateRawSignature(req model.MoMoCreateRequest) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		m.Config.AccessKey,
		req.Amount,
		req.ExtraData,
		req.IpnUrl,
		req.OrderId,
		req.OrderInfo,
		m.Config.PartnerCode,
		req.RedirectUrl,
		req.RequestId,
		req.RequestType,
	)
}

// BuildWebhookRawSignature: chuỗi ký IPN, thứ tự field cố định theo MoMo
// quy định, KHÔNG sắp xếp theo alphabet.
func (m *MoMo) BuildWebhookRawSignature(p model.MoMoWebhookPayload) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.Config.AccessKey,
		p.Amount,
		p.ExtraData,
		p.Message,
		p.OrderId,
		p.OrderInfo,
		p.OrderType,
		p.PartnerCode,
		p.PayType,
		p.RequestId,
		p.ResponseTime,
		p.ResultCode,
		p.TransId,
	)
}

// VerifyWebhookSignature so khớp chữ ký IPN bằng so sánh constant-time.
// Hàm thuần, không side effect.
func (m *MoMo) VerifyWebhookSignature(p model.MoMoWebhookPayload) bool {
	if p.Signature == "" {
		return false
	}
	expected := m.sign(m.BuildWebhookRawSignature(p))
	return hmac.Equal([]byte(expected), []byte(p.Signature))
}

func (m *MoMo) sign(data string) string {
	h := hmac.New(sha256.New, []byte(m.Config.SecretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
