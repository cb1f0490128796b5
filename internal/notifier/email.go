package notifier

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers notification emails over SMTP.
type EmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailSenderFromEnv() *EmailSender {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	return &EmailSender{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (e *EmailSender) Send(recipient string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", e.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(e.host, e.port, e.username, e.password)
	return dialer.DialAndSend(msg)
}
