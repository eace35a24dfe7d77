package mailer

type Service interface {
	SendCheckInConfirmation(toEmail, visitorName, hostName, department string) error
	SendCheckOutConfirmation(toEmail, visitorName string, durationFormatted string) error
}
