package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// Mailer sends mail through a plain SMTP relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a message with a plain-text body and an optional HTML
// alternative. Each call dials the relay independently and succeeds or
// fails on its own.
func (m *Mailer) Send(to, subject, text, html string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	msg := m.buildMessage(to, subject, text, html)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}

	return nil
}

func (m *Mailer) buildMessage(to, subject, text, html string) []byte {
	var b strings.Builder

	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if html == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(text)
		b.WriteString("\r\n")
		return []byte(b.String())
	}

	const boundary = "profit-backend-alt"
	b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")

	return []byte(b.String())
}
