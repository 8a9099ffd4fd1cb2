package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/hash"
	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/security"
)

const testPassword = "Password1!"

func seedAccount(t *testing.T, db *gorm.DB, id, email string) *models.UserAccount {
	t.Helper()

	pwHash, err := hash.HashPassword(testPassword)
	require.NoError(t, err)

	account := models.UserAccount{
		ID:           id,
		Email:        email,
		PasswordHash: pwHash,
		Name:         "Test Customer",
	}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

func newAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, Limiter: security.NewRateLimiter()}
}

func TestLogin_RestoresPersistedCartAndDiscardsGuestCart(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedProduct(t, db, "p1", 10, 4.50)
	seedProduct(t, db, "p2", 10, 2.00)
	account := seedAccount(t, db, "acct-1", "customer@example.com")

	// Persisted cart from a previous visit.
	require.NoError(t, db.Create(&models.CartLine{
		OwnerID: account.ID, ProductID: "p1",
		Name: models.LocalizedText{"en": "Product p1"}, Price: 4.50, Quantity: 2,
	}).Error)

	// Guest cart built before logging in.
	require.NoError(t, db.Create(&models.CartLine{
		OwnerID: "guest-sess", ProductID: "p2",
		Name: models.LocalizedText{"en": "Product p2"}, Price: 2.00, Quantity: 5,
	}).Error)

	svc := newAuthService(db)
	got, sessionID, err := svc.Login(context.Background(), account.Email, testPassword, "guest-sess")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	require.NotEmpty(t, sessionID)
	assert.NotEqual(t, "guest-sess", sessionID)

	session := cartOf(t, db, sessionID)
	require.Len(t, session, 1, "session cart is a copy of the persisted cart")
	assert.Equal(t, "p1", session[0].ProductID)
	assert.Equal(t, 2, session[0].Quantity)

	assert.Empty(t, cartOf(t, db, "guest-sess"), "guest cart is discarded, not merged")

	persisted := cartOf(t, db, account.ID)
	require.Len(t, persisted, 1, "persisted cart is untouched by login")
}

func TestLogin_WrongCredentials(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedAccount(t, db, "acct-1", "customer@example.com")
	svc := newAuthService(db)

	_, _, err := svc.Login(context.Background(), "customer@example.com", "wrong-password", "")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", testPassword, "")
	assert.ErrorIs(t, err, ErrAuthenticationFailed, "unknown email is indistinguishable from a bad password")
}

func TestLogin_MalformedEmail(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := newAuthService(db)

	_, _, err := svc.Login(context.Background(), "not-an-email", testPassword, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_RateLimitBeforeCredentialCheck(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	account := seedAccount(t, db, "acct-1", "customer@example.com")
	svc := newAuthService(db)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(context.Background(), account.Email, "wrong-password", "")
		require.ErrorIs(t, err, ErrAuthenticationFailed)
	}

	// The sixth attempt is refused before the password is even looked at.
	_, _, err := svc.Login(context.Background(), account.Email, testPassword, "")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestLogin_RateLimitIsPerEmail(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedAccount(t, db, "acct-1", "customer@example.com")
	seedAccount(t, db, "acct-2", "other@example.com")
	svc := newAuthService(db)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(context.Background(), "customer@example.com", "wrong-password", "")
		require.ErrorIs(t, err, ErrAuthenticationFailed)
	}
	_, _, err := svc.Login(context.Background(), "customer@example.com", testPassword, "")
	require.ErrorIs(t, err, ErrRateLimited)

	_, _, err = svc.Login(context.Background(), "other@example.com", testPassword, "")
	assert.NoError(t, err, "other accounts are unaffected")
}

func TestLogout_WritesCartBackLastWriteWins(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedProduct(t, db, "p1", 10, 4.50)
	seedProduct(t, db, "p2", 10, 2.00)
	account := seedAccount(t, db, "acct-1", "customer@example.com")

	// Stale persisted cart that the active session will overwrite.
	require.NoError(t, db.Create(&models.CartLine{
		OwnerID: account.ID, ProductID: "p1",
		Name: models.LocalizedText{"en": "Product p1"}, Price: 4.50, Quantity: 1,
	}).Error)
	require.NoError(t, db.Create(&models.CartLine{
		OwnerID: "sess-1", ProductID: "p2",
		Name: models.LocalizedText{"en": "Product p2"}, Price: 2.00, Quantity: 3,
	}).Error)

	svc := newAuthService(db)
	require.NoError(t, svc.Logout(context.Background(), "sess-1", account.ID))

	persisted := cartOf(t, db, account.ID)
	require.Len(t, persisted, 1)
	assert.Equal(t, "p2", persisted[0].ProductID)
	assert.Equal(t, 3, persisted[0].Quantity)

	assert.Empty(t, cartOf(t, db, "sess-1"), "session cart is destroyed on logout")
}

func TestLogout_GuestSessionJustClearsCart(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	require.NoError(t, db.Create(&models.CartLine{
		OwnerID: "sess-1", ProductID: "p1",
		Name: models.LocalizedText{"en": "Product p1"}, Price: 4.50, Quantity: 1,
	}).Error)

	svc := newAuthService(db)
	require.NoError(t, svc.Logout(context.Background(), "sess-1", ""))
	assert.Empty(t, cartOf(t, db, "sess-1"))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := newAuthService(db)

	account, err := svc.Register(context.Background(), "Jane Smith", "jane@example.com", testPassword, "Smith Packaging")
	require.NoError(t, err)
	assert.True(t, len(account.ID) > len("user-"))
	assert.Equal(t, "jane@example.com", account.Email)
	assert.False(t, account.IsAdmin)
	assert.NotEqual(t, testPassword, account.PasswordHash)
	assert.True(t, hash.CheckPassword(account.PasswordHash, testPassword))
	assert.Empty(t, cartOf(t, db, account.ID), "new accounts start with an empty cart")
}

func TestRegister_ValidationOrder(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedAccount(t, db, "acct-1", "taken@example.com")
	svc := newAuthService(db)

	// Malformed email wins even when the password is also weak.
	_, err := svc.Register(context.Background(), "X", "bad-email", "weak", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), "X", "new@example.com", "weak", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(context.Background(), "X", "taken@example.com", testPassword, "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_SanitizesNameFields(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := newAuthService(db)

	account, err := svc.Register(context.Background(), "<b>Jane</b>", "jane@example.com", testPassword, "  ACME <script> ")
	require.NoError(t, err)
	assert.Equal(t, "bJane/b", account.Name)
	assert.Equal(t, "ACME script", account.CompanyName)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	account := seedAccount(t, db, "acct-1", "customer@example.com")
	svc := newAuthService(db)

	updated, err := svc.UpdateProfile(context.Background(), account.ID, "New Name", "New Co", "SK123")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "New Co", updated.CompanyName)
	assert.Equal(t, "SK123", updated.TaxNumber)

	_, err = svc.UpdateProfile(context.Background(), "missing", "X", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAccount_RemovesPersistedCart(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	account := seedAccount(t, db, "acct-1", "customer@example.com")
	require.NoError(t, db.Create(&models.CartLine{
		OwnerID: account.ID, ProductID: "p1",
		Name: models.LocalizedText{"en": "Product p1"}, Price: 4.50, Quantity: 1,
	}).Error)

	svc := newAuthService(db)
	require.NoError(t, svc.DeleteAccount(context.Background(), account.ID))

	_, err := svc.GetAccount(context.Background(), account.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, cartOf(t, db, account.ID))
}
