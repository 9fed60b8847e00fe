// Package mail sends the contact-form messages: a notification to the studio
// inbox and a confirmation back to the sender.
package mail

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	gomail "github.com/wneessen/go-mail"
)

// ContactForm is the payload of the public contact form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}

// Dialer sends prepared messages over SMTP.
type Dialer interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*gomail.Msg) error
}

type Service struct {
	dialer     Dialer
	adminEmail string
	logger     *log.Logger
}

// NewDialer builds the SMTP client. Port 465 switches to implicit TLS.
func NewDialer(host string, port int, username, password string) (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
	}
	if port == 465 {
		opts = append(opts, gomail.WithSSL())
	}
	return gomail.NewClient(host, opts...)
}

func NewService(dialer Dialer, adminEmail string) *Service {
	return &Service{
		dialer:     dialer,
		adminEmail: adminEmail,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "mail"}),
	}
}

// Send delivers the admin notification and the sender confirmation in one
// SMTP session.
func (s *Service) Send(ctx context.Context, form ContactForm) error {
	toAdmin, err := s.adminMessage(form)
	if err != nil {
		return err
	}
	toUser, err := s.confirmationMessage(form)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSendWithContext(ctx, toAdmin, toUser); err != nil {
		return fmt.Errorf("failed to send contact mail: %w", err)
	}

	s.logger.Info("contact form delivered", "from", form.Email)
	return nil
}

func (s *Service) adminMessage(form ContactForm) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("Formularz Nautil", s.adminEmail); err != nil {
		return nil, fmt.Errorf("invalid admin sender address: %w", err)
	}
	if err := msg.To(s.adminEmail); err != nil {
		return nil, fmt.Errorf("invalid admin recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Nowe zapytanie od %s", form.Name))

	phone := form.Phone
	if phone == "" {
		phone = "nie podano"
	}
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Imię i nazwisko: %s\nEmail: %s\nTelefon: %s\nWiadomość:\n%s\n",
		form.Name, form.Email, phone, form.Message))

	return msg, nil
}

func (s *Service) confirmationMessage(form ContactForm) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("Nautil", s.adminEmail); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(form.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", form.Email, err)
	}
	msg.Subject("Dziękujemy za kontakt")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Cześć %s,\n\nDziękujemy za przesłanie zapytania do firmy Nautil.\n"+
			"Wkrótce się z Tobą skontaktujemy.\n\nTreść Twojej wiadomości:\n%q\n\n"+
			"Pozdrawiamy,\nZespół Nautil\n",
		form.Name, form.Message))

	return msg, nil
}
