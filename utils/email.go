package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email via the configured SMTP server
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendInviteEmail sends an affiliator invitation with the accept link
func SendInviteEmail(to, name, inviteURL string) error {
	subject := "Undangan Program Afiliasi Warungin"
	body := fmt.Sprintf(`
		<p>Halo %s,</p>
		<p>Anda diundang untuk bergabung dengan program afiliasi Warungin.
		Klik tautan di bawah untuk membuat akun dan mulai mendapatkan komisi:</p>
		<p><a href="%s">%s</a></p>
		<p>Tautan ini berlaku selama 7 hari.</p>
	`, name, inviteURL, inviteURL)

	return SendEmail(to, subject, body)
}
