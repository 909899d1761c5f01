package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SendFunc matches smtp.SendMail so handlers can be tested without a server.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends plain-text mail over SMTP.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	send     SendFunc
}

func New(host, port, user, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		send:     smtp.SendMail,
	}
}

// WithSendFunc replaces the underlying send function. Used in tests.
func (m *Mailer) WithSendFunc(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

// Send delivers one message to all recipients in a single SMTP transaction.
func (m *Mailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.from, strings.Join(to, ", "), subject, body,
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return m.send(m.host+":"+m.port, auth, m.from, to, msg)
}

// ShareNotification composes the email sent when an itinerary is shared.
func ShareNotification(title, date, shareLink, password, personalMessage string) (subject, body string) {
	subject = fmt.Sprintf("Location itinerary shared with you: %s", title)

	var b strings.Builder
	b.WriteString("A location itinerary has been shared with you.\n\n")
	fmt.Fprintf(&b, "Itinerary: %s\n", title)
	if date != "" {
		fmt.Fprintf(&b, "Date: %s\n", date)
	}
	fmt.Fprintf(&b, "\nView it here: %s\n", shareLink)
	fmt.Fprintf(&b, "Access password: %s\n", password)
	if personalMessage != "" {
		fmt.Fprintf(&b, "\nMessage from the sender:\n%s\n", personalMessage)
	}
	b.WriteString("\nThe password is required to open the itinerary. Please do not forward it.\n")

	return subject, b.String()
}
