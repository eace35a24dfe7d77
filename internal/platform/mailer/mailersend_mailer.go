package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendCheckInConfirmation(toEmail, visitorName, hostName, department string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "You are checked in"
	html := fmt.Sprintf(`
		<h2>Welcome, %s</h2>
		<p>You are checked in to visit <strong>%s</strong> (%s).</p>
		<p>Please keep your visitor badge visible at all times and check out at the front desk when you leave.</p>
	`, visitorName, hostName, department)

	text := fmt.Sprintf("Welcome, %s. You are checked in to visit %s (%s). Please check out at the front desk when you leave.",
		visitorName, hostName, department)

	return m.sendEmail(toEmail, visitorName, subject, text, html)
}

func (m *MailerSendClient) SendCheckOutConfirmation(toEmail, visitorName, durationFormatted string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Thanks for visiting"
	html := fmt.Sprintf(`
		<h2>Goodbye, %s</h2>
		<p>You have been checked out. Your visit lasted <strong>%s</strong>.</p>
	`, visitorName, durationFormatted)

	text := fmt.Sprintf("Goodbye, %s. You have been checked out. Your visit lasted %s.", visitorName, durationFormatted)

	return m.sendEmail(toEmail, visitorName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
