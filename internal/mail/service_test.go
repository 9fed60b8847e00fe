package mail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	gomail "github.com/wneessen/go-mail"
)

type fakeDialer struct {
	sent []*gomail.Msg
	err  error
}

func (f *fakeDialer) DialAndSendWithContext(_ context.Context, msgs ...*gomail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func testForm() ContactForm {
	return ContactForm{
		Name:    "Anna Kowalska",
		Email:   "anna@example.com",
		Phone:   "600700800",
		Message: "Proszę o wycenę sesji.",
		Consent: true,
	}
}

func TestSend_DeliversNotificationAndConfirmation(t *testing.T) {
	dialer := &fakeDialer{}
	svc := NewService(dialer, "studio@example.com")

	if err := svc.Send(context.Background(), testForm()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(dialer.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(dialer.sent))
	}

	adminRcpt, err := dialer.sent[0].GetRecipients()
	if err != nil {
		t.Fatalf("failed to read admin recipients: %v", err)
	}
	if len(adminRcpt) != 1 || adminRcpt[0] != "studio@example.com" {
		t.Errorf("expected notification to the studio inbox, got %v", adminRcpt)
	}

	userRcpt, err := dialer.sent[1].GetRecipients()
	if err != nil {
		t.Fatalf("failed to read confirmation recipients: %v", err)
	}
	if len(userRcpt) != 1 || userRcpt[0] != "anna@example.com" {
		t.Errorf("expected confirmation to the sender, got %v", userRcpt)
	}

	subjects := dialer.sent[0].GetGenHeader(gomail.HeaderSubject)
	if len(subjects) != 1 || !strings.Contains(subjects[0], "Anna Kowalska") {
		t.Errorf("expected the sender's name in the notification subject, got %v", subjects)
	}
}

func TestSend_InvalidRecipientAddress(t *testing.T) {
	dialer := &fakeDialer{}
	svc := NewService(dialer, "studio@example.com")

	form := testForm()
	form.Email = "not-an-address"

	if err := svc.Send(context.Background(), form); err == nil {
		t.Error("expected an error for an invalid recipient address")
	}
	if len(dialer.sent) != 0 {
		t.Errorf("expected nothing sent, got %d messages", len(dialer.sent))
	}
}

func TestSend_DialerFailure(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	svc := NewService(dialer, "studio@example.com")

	if err := svc.Send(context.Background(), testForm()); err == nil {
		t.Error("expected the SMTP failure to surface")
	}
}

func TestSendMail_RequiresConsent(t *testing.T) {
	e := echo.New()
	handler := NewHandler(NewService(&fakeDialer{}, "studio@example.com"))

	body := `{"name":"Anna","email":"anna@example.com","message":"Hej","consent":false}`
	req := httptest.NewRequest(http.MethodPost, "/api/sendmail", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := handler.SendMail(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without consent, got %d", rec.Code)
	}
}

func TestSendMail_Success(t *testing.T) {
	e := echo.New()
	dialer := &fakeDialer{}
	handler := NewHandler(NewService(dialer, "studio@example.com"))

	body := `{"name":"Anna","email":"anna@example.com","message":"Hej","consent":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/sendmail", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := handler.SendMail(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(dialer.sent) != 2 {
		t.Errorf("expected 2 messages, got %d", len(dialer.sent))
	}
}
