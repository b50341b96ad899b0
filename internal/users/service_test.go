package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/mailer"
	"github.com/listygo/listygo-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	usersDDL := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone TEXT,
  avatar TEXT,
  tier TEXT NOT NULL DEFAULT 'Bronze',
  preferences TEXT,
  member_since DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	methodsDDL := `
CREATE TABLE IF NOT EXISTS payment_methods (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  user_id TEXT NOT NULL,
  cardholder_name TEXT NOT NULL,
  last4 TEXT NOT NULL,
  expiry_month INTEGER NOT NULL,
  expiry_year INTEGER NOT NULL,
  card_type TEXT NOT NULL DEFAULT 'visa',
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersDDL).Error)
	require.NoError(t, db.Exec(methodsDDL).Error)
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type stubSender struct {
	sent []mailer.Message
	err  error
}

func (s *stubSender) Send(ctx context.Context, msg mailer.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newUsersTestService(t *testing.T, db *gorm.DB, smtpCfg config.SMTPConfig, sender mailer.Sender) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:           NewRepository(db),
		PaymentMethods: NewPaymentMethodRepository(db),
		Tx:             gormTxRunner{db: db},
		PasswordConfig: testPasswordConfig(),
		SMTPConfig:     smtpCfg,
		Mailer:         sender,
	})
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, db *gorm.DB, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: hash,
		Tier:         "Bronze",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)
	user := seedUser(t, db, "original-pw")

	err := svc.UpdatePassword(context.Background(), user.ID, UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "replacement",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "incorrect current password", typed.Message())
}

func TestUpdatePasswordRotatesHash(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)
	user := seedUser(t, db, "original-pw")

	err := svc.UpdatePassword(context.Background(), user.ID, UpdatePasswordRequest{
		CurrentPassword: "original-pw",
		NewPassword:     "replacement",
	})
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)

	ok, err := security.VerifyPassword("replacement", reloaded.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok, "new password should verify")

	ok, err = security.VerifyPassword("original-pw", reloaded.PasswordHash)
	require.NoError(t, err)
	assert.False(t, ok, "old password should no longer verify")
}

func TestAddPaymentMethodKeepsOnlyLastFour(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)
	user := seedUser(t, db, "pw-123456")

	methods, err := svc.AddPaymentMethod(context.Background(), user.ID, AddPaymentMethodRequest{
		CardholderName: "Test User",
		CardNumber:     "4242 4242 4242 4242",
		ExpiryMonth:    12,
		ExpiryYear:     2030,
	})
	require.NoError(t, err)
	require.Len(t, methods, 1)

	assert.Equal(t, "4242", methods[0].Last4)
	assert.Equal(t, "visa", methods[0].CardType)
	assert.False(t, methods[0].IsDefault, "new methods are never the default implicitly")

	var stored models.PaymentMethod
	require.NoError(t, db.First(&stored, "user_id = ?", user.ID).Error)
	assert.Equal(t, "4242", stored.Last4, "full card number must never reach the database")
}

func TestSetDefaultPaymentMethodIsExclusive(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)
	user := seedUser(t, db, "pw-123456")

	ctx := context.Background()
	_, err := svc.AddPaymentMethod(ctx, user.ID, AddPaymentMethodRequest{
		CardholderName: "Test User", CardNumber: "4111111111111111", ExpiryMonth: 1, ExpiryYear: 2030,
	})
	require.NoError(t, err)
	methods, err := svc.AddPaymentMethod(ctx, user.ID, AddPaymentMethodRequest{
		CardholderName: "Test User", CardNumber: "5555444433332222", ExpiryMonth: 2, ExpiryYear: 2031, CardType: "mastercard",
	})
	require.NoError(t, err)
	require.Len(t, methods, 2)

	first, second := methods[0].ID, methods[1].ID

	methods, err = svc.SetDefaultPaymentMethod(ctx, user.ID, first)
	require.NoError(t, err)
	assert.Equal(t, first, methods[0].ID, "default sorts first")
	assert.True(t, methods[0].IsDefault)

	methods, err = svc.SetDefaultPaymentMethod(ctx, user.ID, second)
	require.NoError(t, err)

	defaults := 0
	for _, m := range methods {
		if m.IsDefault {
			defaults++
			assert.Equal(t, second, m.ID)
		}
	}
	assert.Equal(t, 1, defaults, "at most one default survives")
}

func TestSetDefaultPaymentMethodUnknownID(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)
	user := seedUser(t, db, "pw-123456")

	_, err := svc.SetDefaultPaymentMethod(context.Background(), user.ID, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeletePaymentMethodReturnsRefreshedList(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)
	user := seedUser(t, db, "pw-123456")

	ctx := context.Background()
	methods, err := svc.AddPaymentMethod(ctx, user.ID, AddPaymentMethodRequest{
		CardholderName: "Test User", CardNumber: "4111111111111111", ExpiryMonth: 1, ExpiryYear: 2030,
	})
	require.NoError(t, err)
	require.Len(t, methods, 1)

	methods, err = svc.DeletePaymentMethod(ctx, user.ID, methods[0].ID)
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestContactUnavailableWithoutSMTP(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersTestService(t, db, config.SMTPConfig{}, nil)

	err := svc.Contact(context.Background(), ContactRequest{
		Name: "Visitor", Email: "visitor@example.com", Subject: "Hi", Message: "Hello",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestContactSendsAdminAndConfirmationCopies(t *testing.T) {
	db := setupUsersTestDB(t)
	sender := &stubSender{}
	smtpCfg := config.SMTPConfig{Host: "smtp.example.com", AdminEmail: "ops@listygo.dev"}
	svc := newUsersTestService(t, db, smtpCfg, sender)

	err := svc.Contact(context.Background(), ContactRequest{
		Name: "Visitor", Email: "visitor@example.com", Subject: "Broken listing", Message: "The map is wrong.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "ops@listygo.dev", sender.sent[0].To)
	assert.Equal(t, "visitor@example.com", sender.sent[1].To)
}

func TestContactSendFailure(t *testing.T) {
	db := setupUsersTestDB(t)
	sender := &stubSender{err: errors.New("smtp refused")}
	smtpCfg := config.SMTPConfig{Host: "smtp.example.com", AdminEmail: "ops@listygo.dev"}
	svc := newUsersTestService(t, db, smtpCfg, sender)

	err := svc.Contact(context.Background(), ContactRequest{
		Name: "Visitor", Email: "visitor@example.com", Subject: "Hi", Message: "Hello",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
	assert.Len(t, sender.sent, 2, "both sends are attempted even when the first fails")
}

func TestLastFour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4242424242424242", "4242"},
		{"4242 4242 4242 4111", "4111"},
		{"42-42", "4242"},
		{"123", "123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := lastFour(tt.in); got != tt.want {
			t.Fatalf("lastFour(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}
