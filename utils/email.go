package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// PaymentSuccessData dữ liệu cho template email xác nhận thanh toán
type PaymentSuccessData struct {
	OrderCode     string
	Games         []string
	TotalAmount   string
	PaymentMethod string
	LibraryLink   string
}

// SendPaymentSuccessEmail gửi email xác nhận thanh toán (async).
// Chỉ được gọi đúng một lần cho mỗi lần Payment chuyển sang COMPLETED.
func SendPaymentSuccessEmail(to string, data PaymentSuccessData) {
	go func() { // Async để không delay response webhook
		tmplPath := "templates/payment_success.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Xác nhận thanh toán đơn hàng #"+data.OrderCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}
