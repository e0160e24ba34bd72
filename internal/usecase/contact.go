package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tekmakon-site/internal/domain"
)

// emailPattern accepts local@domain.tld with a single @ and no whitespace,
// Unicode separators and the BOM included.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Sender delivers a rendered email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg domain.Email) (string, error)
}

type providerMessager interface {
	ProviderMessage() string
}

// ContactConfig fixes the envelope of every contact email.
type ContactConfig struct {
	From     domain.Address
	To       domain.Address
	Category string
	Location *time.Location
}

type ContactOutput struct {
	MessageID string
	// InquiryType is the category the email was filed under after defaulting.
	InquiryType string
}

// ContactService validates contact submissions and mails them to the
// internal inbox.
type ContactService struct {
	sender Sender
	cfg    ContactConfig
	now    func() time.Time
}

func NewContactService(sender Sender, cfg ContactConfig) (*ContactService, error) {
	if sender == nil {
		return nil, errors.New("usecase: sender must not be nil")
	}
	if strings.TrimSpace(cfg.From.Email) == "" {
		return nil, errors.New("usecase: sender address must not be empty")
	}
	if strings.TrimSpace(cfg.To.Email) == "" {
		return nil, errors.New("usecase: recipient address must not be empty")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ContactService{sender: sender, cfg: cfg, now: time.Now}, nil
}

// Submit validates sub, renders it and makes exactly one send attempt.
func (s *ContactService) Submit(ctx context.Context, sub domain.ContactSubmission) (ContactOutput, error) {
	sub = normalizeSubmission(sub)
	if err := validateSubmission(sub); err != nil {
		return ContactOutput{}, err
	}

	subject, html, text, err := renderContactEmail(sub, s.now().In(s.cfg.Location))
	if err != nil {
		return ContactOutput{}, newError(ErrorInternal, "render_error", MsgInternalFailure, err)
	}

	id, err := s.sender.Send(ctx, domain.Email{
		From:     s.cfg.From,
		To:       []domain.Address{s.cfg.To},
		Subject:  subject,
		HTML:     html,
		Text:     text,
		Category: s.cfg.Category,
	})
	if err != nil {
		return ContactOutput{}, newError(ErrorTransport, "send_error", MsgSendFailed, err)
	}
	return ContactOutput{MessageID: id, InquiryType: sub.InquiryType}, nil
}

func normalizeSubmission(sub domain.ContactSubmission) domain.ContactSubmission {
	sub.FirstName = strings.TrimSpace(sub.FirstName)
	sub.LastName = strings.TrimSpace(sub.LastName)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)
	sub.InquiryType = strings.TrimSpace(sub.InquiryType)
	if sub.InquiryType == "" {
		sub.InquiryType = domain.DefaultInquiryType
	}
	return sub
}

// validateSubmission reports missing fields before a malformed email.
func validateSubmission(sub domain.ContactSubmission) error {
	err := validate.Struct(sub)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newError(ErrorInternal, "validator_error", MsgInternalFailure, err)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return newError(ErrorValidation, "missing_field", MsgFieldsRequired, err)
		}
	}
	return newError(ErrorValidation, "invalid_email", MsgInvalidEmail, err)
}

// ProviderDetail extracts the mail provider's own error text, if any.
// It is meant for operator logs, not for callers.
func ProviderDetail(err error) string {
	var pm providerMessager
	if errors.As(err, &pm) {
		return pm.ProviderMessage()
	}
	return ""
}
