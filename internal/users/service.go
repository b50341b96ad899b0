package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/mailer"
	"github.com/listygo/listygo-backend/pkg/security"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const incorrectCurrentPassword = "incorrect current password"

// Service is the self-service surface for user accounts.
type Service interface {
	Me(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateDetailsRequest) (*UserDTO, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, req UpdatePasswordRequest) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]PaymentMethodDTO, error)
	AddPaymentMethod(ctx context.Context, userID uuid.UUID, req AddPaymentMethodRequest) ([]PaymentMethodDTO, error)
	UpdatePaymentMethod(ctx context.Context, userID, id uuid.UUID, req UpdatePaymentMethodRequest) ([]PaymentMethodDTO, error)
	DeletePaymentMethod(ctx context.Context, userID, id uuid.UUID) ([]PaymentMethodDTO, error)
	SetDefaultPaymentMethod(ctx context.Context, userID, id uuid.UUID) ([]PaymentMethodDTO, error)

	Contact(ctx context.Context, req ContactRequest) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        *Repository
	methods     *PaymentMethodRepository
	tx          txRunner
	passwordCfg config.PasswordConfig
	smtpCfg     config.SMTPConfig
	mail        mailer.Sender
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo           *Repository
	PaymentMethods *PaymentMethodRepository
	Tx             txRunner
	PasswordConfig config.PasswordConfig
	SMTPConfig     config.SMTPConfig
	Mailer         mailer.Sender
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.PaymentMethods == nil {
		return nil, fmt.Errorf("payment method repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{
		repo:        params.Repo,
		methods:     params.PaymentMethods,
		tx:          params.Tx,
		passwordCfg: params.PasswordConfig,
		smtpCfg:     params.SMTPConfig,
		mail:        params.Mailer,
	}, nil
}

func (s *service) Me(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateDetailsRequest) (*UserDTO, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Preferences != nil {
		fields["preferences"] = req.Preferences
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
		}
	}

	return s.Me(ctx, id)
}

// UpdatePassword verifies the current credential before re-hashing. The new
// plaintext is hashed exactly once, here, never on save.
func (s *service) UpdatePassword(ctx context.Context, id uuid.UUID, req UpdatePasswordRequest) error {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, incorrectCurrentPassword)
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store password")
	}
	return nil
}

func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func (s *service) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]PaymentMethodDTO, error) {
	rows, err := s.methods.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list payment methods")
	}
	return PaymentMethodsFromModels(rows), nil
}

// AddPaymentMethod truncates the card number to its last four digits before
// anything is persisted. New methods are never the default implicitly.
func (s *service) AddPaymentMethod(ctx context.Context, userID uuid.UUID, req AddPaymentMethodRequest) ([]PaymentMethodDTO, error) {
	cardType := req.CardType
	if cardType == "" {
		cardType = "visa"
	}

	method := &models.PaymentMethod{
		UserID:         userID,
		CardholderName: req.CardholderName,
		Last4:          lastFour(req.CardNumber),
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		CardType:       cardType,
	}

	if err := s.methods.Create(ctx, method); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment method")
	}
	return s.ListPaymentMethods(ctx, userID)
}

func (s *service) UpdatePaymentMethod(ctx context.Context, userID, id uuid.UUID, req UpdatePaymentMethodRequest) ([]PaymentMethodDTO, error) {
	if _, err := s.getMethod(ctx, userID, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.CardholderName != nil {
		fields["cardholder_name"] = *req.CardholderName
	}
	if req.ExpiryMonth != nil {
		fields["expiry_month"] = *req.ExpiryMonth
	}
	if req.ExpiryYear != nil {
		fields["expiry_year"] = *req.ExpiryYear
	}
	if req.CardType != nil {
		fields["card_type"] = *req.CardType
	}

	if err := s.methods.UpdateFields(ctx, userID, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update payment method")
	}
	return s.ListPaymentMethods(ctx, userID)
}

func (s *service) DeletePaymentMethod(ctx context.Context, userID, id uuid.UUID) ([]PaymentMethodDTO, error) {
	if _, err := s.getMethod(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.methods.Delete(ctx, userID, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete payment method")
	}
	return s.ListPaymentMethods(ctx, userID)
}

// SetDefaultPaymentMethod clears the old default and sets the new one in a
// single transaction so concurrent calls serialize on the user's rows and
// at most one default survives.
func (s *service) SetDefaultPaymentMethod(ctx context.Context, userID, id uuid.UUID) ([]PaymentMethodDTO, error) {
	if _, err := s.getMethod(ctx, userID, id); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.methods.WithTx(tx)
		if err := txRepo.ClearDefault(ctx, userID); err != nil {
			return err
		}
		return txRepo.SetDefault(ctx, userID, id)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set default payment method")
	}
	return s.ListPaymentMethods(ctx, userID)
}

// Contact forwards the message to the site operators and sends the author a
// confirmation copy. Both sends are attempted; errors are combined.
func (s *service) Contact(ctx context.Context, req ContactRequest) error {
	if s.mail == nil || !s.smtpCfg.Enabled() || s.smtpCfg.AdminEmail == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "contact form is unavailable")
	}

	toAdmin := mailer.Message{
		To:      s.smtpCfg.AdminEmail,
		Subject: fmt.Sprintf("Contact form: %s", req.Subject),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message),
	}
	toSender := mailer.Message{
		To:      req.Email,
		Subject: "We received your message",
		Body:    fmt.Sprintf("Hi %s,\n\nThanks for reaching out. We received your message and will reply soon.\n\nYour message:\n%s", req.Name, req.Message),
	}

	err := multierr.Combine(
		s.mail.Send(ctx, toAdmin),
		s.mail.Send(ctx, toSender),
	)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send contact mail")
	}
	return nil
}

func (s *service) getUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}

func (s *service) getMethod(ctx context.Context, userID, id uuid.UUID) (*models.PaymentMethod, error) {
	method, err := s.methods.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup payment method")
	}
	return method, nil
}

func lastFour(cardNumber string) string {
	digits := make([]rune, 0, len(cardNumber))
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
