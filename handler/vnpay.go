package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"game_store/config"
	"game_store/model"
)

// VNPay Service
type VNPay struct {
	Config model.VNPayConfig
}

func NewVNPay() *VNPay {
	return NewVNPayWithConfig(model.VNPayConfig{
		TmnCode:    config.Config("VNP_TMNCODE"),
		HashSecret: config.Config("VNP_HASHSECRET"),
		BaseURL:    config.Config("VNP_URL"),
		ReturnURL:  config.Config("APP_URL") + "/vnpay/return",
		IPNURL:     config.Config("APP_URL") + "/vnpay/ipn",
	})
}

func NewVNPayWithConfig(cfg model.VNPayConfig) *VNPay {
	return &VNPay{Config: cfg}
}

// BuildPaymentUrl tạo URL thanh toán đã ký cho VNPay hosted checkout.
func (v *VNPay) BuildPaymentUrl(req model.VNPayPaymentRequest) (string, error) {
	params := url.Values{}
	params.Add("vnp_Version", "2.1.0")
	params.Add("vnp_Command", "pay")
	params.Add("vnp_TmnCode", v.Config.TmnCode)
	params.Add("vnp_Amount", strconv.FormatInt(req.Amount*100, 10)) // VND * 100
	params.Add("vnp_CreateDate", time.Now().Format("20060102150405"))
	params.Add("vnp_CurrCode", "VND")
	params.Add("vnp_IpAddr", req.IPAddr)
	params.Add("vnp_Locale", "vn")
	params.Add("vnp_OrderInfo", req.OrderInfo)
	params.Add("vnp_OrderType", "other")
	params.Add("vnp_ReturnUrl", v.Config.ReturnURL)
	params.Add("vnp_TxnRef", req.TxnRef)
	params.Add("vnp_ExpireDate", time.Now().Add(15*time.Minute).Format("20060102150405"))

	query := v.BuildHashData(params)
	hash := v.sign(query)
	fullQuery := query + "&vnp_SecureHash=" + hash

	return v.Config.BaseURL + "?" + fullQuery, nil
}

// VerifyCallback kiểm tra chữ ký và đọc kết quả từ query của return URL
// hoặc IPN. Hàm thuần, không side effect; chữ ký so sánh constant-time.
func (v *VNPay) VerifyCallback(query url.Values) model.VNPayVerifyResult {
	secureHash := query.Get("vnp_SecureHash")
	if secureHash == "" {
		return model.VNPayVerifyResult{IsValid: false, Message: "Missing signature"}
	}

	// Bỏ các param hash khỏi dữ liệu ký
	data := url.Values{}
	for k, vals := range query {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		data[k] = vals
	}

	expected := v.sign(v.BuildHashData(data))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(secureHash))) {
		return model.VNPayVerifyResult{IsValid: false, Message: "Invalid signature"}
	}

	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	result := model.VNPayVerifyResult{
		IsValid: true,
		TxnRef:  query.Get("vnp_TxnRef"),
		Amount:  amount / 100,
	}

	if query.Get("vnp_ResponseCode") == "00" {
		result.IsSuccess = true
	} else {
		result.Message = "Payment failed with code " + query.Get("vnp_ResponseCode")
	}

	return result
}

// BuildHashData: chỉ lấy các param có prefix vnp_, sắp xếp theo key,
// value được URL-encode, nối thành key=value&...
func (v *VNPay) BuildHashData(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if strings.HasPrefix(k, "vnp_") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+url.QueryEscape(params.Get(k)))
	}
	return strings.Join(pairs, "&")
}

func (v *VNPay) sign(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
