package model

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	IPNURL     string
}

type VNPayPaymentRequest struct {
	Amount    int64  `json:"amount"` // VND, chưa nhân 100
	OrderInfo string `json:"orderInfo"`
	TxnRef    string `json:"txnRef"`
	IPAddr    string `json:"ipAddr"`
}

type VNPayVerifyResult struct {
	IsValid   bool   `json:"isValid"` // chữ ký hợp lệ
	IsSuccess bool   `json:"isSuccess"`
	TxnRef    string `json:"txnRef"`
	Amount    int64  `json:"amount"`
	Message   string `json:"message"`
}
