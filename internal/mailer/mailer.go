// Package mailer delivers registration confirmation emails.
package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"marathon-registration/internal/model"
)

// Event carries the details printed in confirmations.
type Event struct {
	Name  string
	Date  string
	Venue string
}

// Sender delivers a confirmation for a registered participant. Delivery is
// best-effort from the caller's point of view.
type Sender interface {
	SendConfirmation(p model.Participant) error
}

// Mailer sends confirmations over SMTP with a PDF bib receipt attached.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	event  Event
}

func New(host string, port int, from, password string, event Event) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, from, password),
		from:   from,
		event:  event,
	}
}

func (m *Mailer) SendConfirmation(p model.Participant) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", p.Email)
	msg.SetHeader("Subject", fmt.Sprintf("%s Registration Confirmation", m.event.Name))
	msg.SetBody("text/plain", confirmationBody(p, m.event))

	pdf := buildReceipt(p, m.event)
	msg.Attach("registration.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		return pdf.Output(w)
	}))

	return m.dialer.DialAndSend(msg)
}

func confirmationBody(p model.Participant, event Event) string {
	return fmt.Sprintf(`Hello %s,

Thank you for registering for the %s!

Your Chest Number: %d
Category: %s

Event Details:
- Date: %s
- Venue: %s

See you at the event!

Warm Regards,
%s Team`, p.Name, event.Name, p.ChestNumber, p.Category, event.Date, event.Venue, event.Name)
}
