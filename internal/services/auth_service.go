package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
	"smartcab/internal/repositories"
	"smartcab/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService resolves customer identity keyed by phone number. This is a
// deliberate lookup-first contract: possession of the phone number is the
// whole identity proof, and an existing record is returned unchanged even
// when the caller supplies a different name.
type AuthService struct {
	Repo      repositories.UserRepository
	RequestID string
}

// FindOrCreate returns the identity for phone, creating it on first login.
// The second return reports whether a new identity was created.
func (s AuthService) FindOrCreate(ctx context.Context, fullName, phone string) (models.User, bool, error) {
	fullName = utils.SanitizeText(fullName)
	phone = utils.SanitizeText(phone)
	if fullName == "" || phone == "" {
		return models.User{}, false, domain.ValidationError{
			Msg: "Invalid input. Full name and phone number are required.",
		}
	}

	existing, err := s.Repo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, false, nil
	}
	if !domain.IsNotFound(err) {
		return models.User{}, false, err
	}

	// Placeholder credential only: the hash of the phone number is never
	// verified anywhere, it just fills the NOT NULL column the way the
	// original login flow did.
	hash, err := bcrypt.GenerateFromPassword([]byte(phone), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false, domain.StorageError{Op: "credential hash", Err: err}
	}

	user := models.User{
		Username: synthesizeUsername(fullName),
		Email:    phone + "@example.com",
		Password: string(hash),
		FullName: fullName,
		Phone:    phone,
	}

	id, err := s.Repo.Insert(ctx, user)
	if domain.IsConflict(err) {
		// concurrent first login for the same phone; the other request won,
		// resolve as a plain lookup
		found, lookupErr := s.Repo.GetByPhone(ctx, phone)
		if lookupErr != nil {
			return models.User{}, false, lookupErr
		}
		return found, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}

	user.ID = id
	utils.LogEvent(s.RequestID, "auth", "create_user", fmt.Sprintf("user_id=%d", id))
	return user, true, nil
}

// GetByID returns the identity by numeric id.
func (s AuthService) GetByID(ctx context.Context, id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	return s.Repo.GetByID(ctx, id)
}

// synthesizeUsername lowercases the name, strips spaces and appends a random
// three-digit suffix.
func synthesizeUsername(fullName string) string {
	base := strings.ToLower(strings.ReplaceAll(fullName, " ", ""))
	return fmt.Sprintf("%s%d", base, 100+rand.Intn(900))
}
