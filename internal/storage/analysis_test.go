package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestPostgresAnalysisRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresAnalysisRepository(db)

	analysis := &Analysis{
		AccountID:  uuid.New(),
		Text:       "今天下午3点,双方发生争执。",
		Result:     json.RawMessage(`{"confidence":0.55}`),
		Confidence: 0.55,
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(sqlmock.AnyArg(), analysis.AccountID, analysis.Text,
			analysis.Result, analysis.Confidence, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if analysis.ID == uuid.Nil {
		t.Error("expected analysis ID to be generated")
	}
	if analysis.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresAnalysisRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresAnalysisRepository(db)

	id := uuid.New()
	accountID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "account_id", "text", "result", "confidence", "created_at"}).
		AddRow(id, accountID, "案件描述", []byte(`{}`), 0.6, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id").
		WithArgs(id).
		WillReturnRows(rows)

	analysis, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if analysis.ID != id {
		t.Errorf("expected ID %s, got %s", id, analysis.ID)
	}
	if analysis.AccountID != accountID {
		t.Errorf("expected account ID %s, got %s", accountID, analysis.AccountID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresAnalysisRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresAnalysisRepository(db)

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), id); err != ErrAnalysisNotFound {
		t.Errorf("expected ErrAnalysisNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresAnalysisRepository_ListByAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresAnalysisRepository(db)

	accountID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "account_id", "text", "result", "confidence", "created_at"}).
		AddRow(uuid.New(), accountID, "案件一", []byte(`{}`), 0.7, time.Now()).
		AddRow(uuid.New(), accountID, "案件二", []byte(`{}`), 0.5, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE account_id").
		WithArgs(accountID).
		WillReturnRows(rows)

	analyses, err := repo.ListByAccount(context.Background(), accountID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(analyses) != 2 {
		t.Errorf("expected 2 analyses, got %d", len(analyses))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresAnalysisRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresAnalysisRepository(db)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM analyses").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), id); err != ErrAnalysisNotFound {
		t.Errorf("expected ErrAnalysisNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
