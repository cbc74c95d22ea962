package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"smartcab/internal/domain"
	"smartcab/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

var userColumnsTest = []string{"id", "username", "email", "password", "full_name", "phone"}

func TestFindOrCreateReturnsExistingUnchanged(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE phone").
		WithArgs("0300123").
		WillReturnRows(sqlmock.NewRows(userColumnsTest).
			AddRow(int64(4), "alikhan512", "0300123@example.com", "hash", "Ali Khan", "0300123"))

	svc := AuthService{Repo: repositories.UserRepository{DB: db, Timeout: time.Second}}

	// different name on a later login must not overwrite the record
	user, created, err := svc.FindOrCreate(context.Background(), "Someone Else", "0300123")
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if created {
		t.Fatal("expected lookup, not creation")
	}
	if user.FullName != "Ali Khan" {
		t.Fatalf("name on file %q, want the original", user.FullName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOrCreateCreatesOnFirstLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE phone").
		WithArgs("0300123").
		WillReturnRows(sqlmock.NewRows(userColumnsTest))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(9, 1))

	svc := AuthService{Repo: repositories.UserRepository{DB: db, Timeout: time.Second}}
	user, created, err := svc.FindOrCreate(context.Background(), "Ali Khan", "0300123")
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if !created {
		t.Fatal("expected creation")
	}
	if user.ID != 9 {
		t.Fatalf("user id %d, want 9", user.ID)
	}
	if !regexp.MustCompile(`^alikhan\d{3}$`).MatchString(user.Username) {
		t.Fatalf("synthesized username %q", user.Username)
	}
	if user.Email != "0300123@example.com" {
		t.Fatalf("placeholder email %q", user.Email)
	}
	// the stored credential is just the hashed phone, not a secret
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("0300123")) != nil {
		t.Fatal("placeholder credential is not the hashed phone")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOrCreateResolvesInsertRaceAsLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE phone").
		WithArgs("0300123").
		WillReturnRows(sqlmock.NewRows(userColumnsTest))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectQuery("FROM users WHERE phone").
		WithArgs("0300123").
		WillReturnRows(sqlmock.NewRows(userColumnsTest).
			AddRow(int64(4), "alikhan512", "0300123@example.com", "hash", "Ali Khan", "0300123"))

	svc := AuthService{Repo: repositories.UserRepository{DB: db, Timeout: time.Second}}
	user, created, err := svc.FindOrCreate(context.Background(), "Ali Khan", "0300123")
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if created {
		t.Fatal("race must resolve as lookup")
	}
	if user.ID != 4 {
		t.Fatalf("user id %d, want the winner's row", user.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOrCreateValidatesInput(t *testing.T) {
	svc := AuthService{}
	if _, _, err := svc.FindOrCreate(context.Background(), "", "0300123"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, _, err := svc.FindOrCreate(context.Background(), "Ali Khan", " "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows(userColumnsTest))

	svc := AuthService{Repo: repositories.UserRepository{DB: db, Timeout: time.Second}}
	if _, err := svc.GetByID(context.Background(), 77); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
