package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTime = time.Date(2024, 6, 5, 3, 42, 35, 0, time.UTC)

var recipeRowColumns = []string{
	"id", "title", "description", "serves", "prep_time", "cook_time",
	"ingredients", "method", "category", "rating", "image_path", "created_at", "updated_at",
}

// setupTestDB creates a mock database and a development logger
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return db, mock, logger
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
