package mailer

import (
	"github.com/entryline/visitdesk/pkg/logger"
)

// DevMailer prints mail to the logs instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendCheckInConfirmation(toEmail, visitorName, hostName, department string) error {
	logger.Info("[DEV MAIL] Check-in confirmation",
		"to", toEmail,
		"visitor", visitorName,
		"host", hostName,
		"department", department,
	)
	return nil
}

func (d *DevMailer) SendCheckOutConfirmation(toEmail, visitorName, durationFormatted string) error {
	logger.Info("[DEV MAIL] Check-out confirmation",
		"to", toEmail,
		"visitor", visitorName,
		"duration", durationFormatted,
	)
	return nil
}
