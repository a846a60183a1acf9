package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	account := &Account{
		Email:        "owner@example.com",
		DisplayName:  "店主",
		PasswordHash: "hashed_password",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), account.Email, account.DisplayName,
			account.PasswordHash, account.CreatedAt, account.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if account.ID == "" {
		t.Error("expected account ID to be generated")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	accountID := "123e4567-e89b-12d3-a456-426614174000"
	email := "owner@example.com"

	rows := sqlmock.NewRows([]string{"id", "email", "display_name", "password_hash", "created_at", "updated_at"}).
		AddRow(accountID, email, "店主", "hashed_password", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs(accountID).
		WillReturnRows(rows)

	account, err := repo.GetByID(context.Background(), accountID)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if account == nil {
		t.Fatal("expected account to be returned")
	}
	if account.ID != accountID {
		t.Errorf("expected ID %s, got %s", accountID, account.ID)
	}
	if account.Email != email {
		t.Errorf("expected email %s, got %s", email, account.Email)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs("nonexistent").
		WillReturnError(sql.ErrNoRows)

	account, err := repo.GetByID(context.Background(), "nonexistent")
	if err != ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
	if account != nil {
		t.Error("expected nil account")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	accountID := "123e4567-e89b-12d3-a456-426614174000"
	email := "owner@example.com"

	rows := sqlmock.NewRows([]string{"id", "email", "display_name", "password_hash", "created_at", "updated_at"}).
		AddRow(accountID, email, "店主", "hashed_password", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs(email).
		WillReturnRows(rows)

	account, err := repo.GetByEmail(context.Background(), email)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if account == nil {
		t.Fatal("expected account to be returned")
	}
	if account.ID != accountID {
		t.Errorf("expected ID %s, got %s", accountID, account.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	account, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
	if account != nil {
		t.Error("expected nil account")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestJWTService_TokenRoundTrip(t *testing.T) {
	service := NewJWTService(Config{
		SecretKey:     "test-secret",
		Issuer:        "casetrace",
		TokenDuration: time.Hour,
	}, nil)

	account := &Account{ID: "acct-1", Email: "owner@example.com"}
	token, err := service.generateToken(account)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AccountID != account.ID {
		t.Errorf("expected account ID %s, got %s", account.ID, claims.AccountID)
	}
	if claims.Email != account.Email {
		t.Errorf("expected email %s, got %s", account.Email, claims.Email)
	}
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(Config{SecretKey: "secret-a", Issuer: "casetrace", TokenDuration: time.Hour}, nil)
	verifier := NewJWTService(Config{SecretKey: "secret-b", Issuer: "casetrace", TokenDuration: time.Hour}, nil)

	token, err := issuer.generateToken(&Account{ID: "acct-1", Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
