package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/hash"
	"github.com/packwise/storefront/internal/logging"
	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/mykafka"
	"github.com/packwise/storefront/internal/security"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

type AuthService struct {
	DB       *gorm.DB
	Limiter  *security.RateLimiter
	Producer *mykafka.Producer
}

// Login authenticates an account and starts a fresh session for it. The
// attempt is rate limited per email before any credential work happens; a
// limited call performs no comparison and consumes no further attempt.
// Credentials are checked through the bcrypt hash boundary; the caller
// learns only that the pair did not match, not which half. On success the
// new session's cart is a wholesale copy of the account's persisted cart
// and the guest cart in progress is discarded.
func (s *AuthService) Login(ctx context.Context, email, password, prevSessionID string) (*models.UserAccount, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if !s.Limiter.Allow("login_"+email, loginMaxAttempts, loginWindow) {
		l.Warn("login rate limited", "email", email)
		return nil, "", ErrRateLimited
	}

	if !security.ValidateEmail(email) {
		return nil, "", fmt.Errorf("%w: email", ErrInvalidInput)
	}

	var account models.UserAccount
	if err := s.DB.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAuthenticationFailed
		}
		return nil, "", err
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		return nil, "", ErrAuthenticationFailed
	}

	sessionID := uuid.NewString()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if prevSessionID != "" {
			if err := tx.Where("owner_id = ?", prevSessionID).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
		}
		return copyCart(tx, account.ID, sessionID)
	})
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, account.ID, map[string]any{
		"type":      "user_logged_in",
		"accountID": account.ID,
		"email":     account.Email,
	})
	return &account, sessionID, nil
}

// Logout writes the active cart back to the account's persisted cart
// (last-write-wins) and destroys the session's cart.
func (s *AuthService) Logout(ctx context.Context, sessionID, accountID string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if accountID != "" {
			if err := tx.Where("owner_id = ?", accountID).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
			if err := copyCart(tx, sessionID, accountID); err != nil {
				return err
			}
		}
		return tx.Where("owner_id = ?", sessionID).Delete(&models.CartLine{}).Error
	})
	if err != nil {
		return err
	}

	if accountID != "" {
		s.publish(ctx, accountID, map[string]any{
			"type":      "user_logged_out",
			"accountID": accountID,
		})
	}
	return nil
}

// Register creates a new customer account. Email format, password strength
// and email uniqueness are checked in that order; the account starts with
// an empty cart, no orders and no admin rights. Registration does not log
// the customer in.
func (s *AuthService) Register(ctx context.Context, name, email, password, companyName string) (*models.UserAccount, error) {
	if !security.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if !security.ValidatePassword(password) {
		return nil, ErrWeakPassword
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := models.UserAccount{
		ID:           security.GenerateID("user-", 5),
		Email:        email,
		PasswordHash: pwHash,
		Name:         security.SanitizeInput(name),
		CompanyName:  security.SanitizeInput(companyName),
		IsAdmin:      false,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.UserAccount
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, account.ID, map[string]any{
		"type":      "user_registered",
		"accountID": account.ID,
		"email":     account.Email,
	})
	return &account, nil
}

// GetAccount resolves the session's weak account reference by id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*models.UserAccount, error) {
	var account models.UserAccount
	if err := s.DB.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &account, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id, name, companyName, taxNumber string) (*models.UserAccount, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	account.Name = security.SanitizeInput(name)
	account.CompanyName = security.SanitizeInput(companyName)
	account.TaxNumber = security.SanitizeInput(taxNumber)
	if err := s.DB.Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AuthService) ListAccounts(ctx context.Context) ([]models.UserAccount, error) {
	var accounts []models.UserAccount
	if err := s.DB.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteAccount removes the account and its persisted cart. Orders stay in
// the global ledger.
func (s *AuthService) DeleteAccount(ctx context.Context, id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserAccount{}, "id = ?", id).Error
	})
}

// copyCart replaces nothing on the source side: it clones fromOwner's
// lines onto toOwner in insertion order.
func copyCart(tx *gorm.DB, fromOwner, toOwner string) error {
	var lines []models.CartLine
	if err := tx.Where("owner_id = ?", fromOwner).Order("id ASC").Find(&lines).Error; err != nil {
		return err
	}
	for i := range lines {
		clone := models.CartLine{
			OwnerID:   toOwner,
			ProductID: lines[i].ProductID,
			Name:      lines[i].Name,
			Price:     lines[i].Price,
			Images:    lines[i].Images,
			Quantity:  lines[i].Quantity,
		}
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	publishEvent(ctx, s.Producer, mykafka.TopicUserEvents, key, event)
}
