package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"photoshare/internal/model"
)

type ctxKey struct{}

type capturedQuery struct {
	sql string
	ctx context.Context
}

// newDryRunDB returns a mysql-dialect DB that renders statements without a
// server and records every query statement it builds.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]capturedQuery) {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:password@tcp(127.0.0.1:3306)/photoshare?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var captured []capturedQuery
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		captured = append(captured, capturedQuery{sql: tx.Statement.SQL.String(), ctx: tx.Statement.Context})
	}))
	return db, &captured
}

func photoQuery(t *testing.T, captured []capturedQuery) capturedQuery {
	t.Helper()
	for _, q := range captured {
		if strings.Contains(q.sql, "FROM `photos`") {
			return q
		}
	}
	t.Fatalf("no photos query among %d captured", len(captured))
	return capturedQuery{}
}

func TestCommentsInOrder_BreaksTiesByID(t *testing.T) {
	db, _ := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return commentsInOrder(tx.Model(&model.Comment{})).Find(&[]model.Comment{})
	})

	assert.Contains(t, sql, "ORDER BY date_time ASC, id ASC")
}

func TestPhotoRepository_ListByOwnerOrder(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewPhotoRepository(db)
	ctx := context.WithValue(context.Background(), ctxKey{}, "list")

	_, err := repo.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)

	q := photoQuery(t, *captured)
	assert.Contains(t, q.sql, "ORDER BY date_time ASC, id ASC")
	assert.Equal(t, "list", q.ctx.Value(ctxKey{}))
}

func TestPhotoRepository_ListCommentedByUsesContext(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewPhotoRepository(db)
	ctx := context.WithValue(context.Background(), ctxKey{}, "commented")

	_, err := repo.ListCommentedBy(ctx, uuid.New())
	require.NoError(t, err)

	q := photoQuery(t, *captured)
	assert.Contains(t, q.sql, "id IN (SELECT")
	assert.Contains(t, q.sql, "FROM `comments` WHERE user_id = ?")
	assert.Contains(t, q.sql, "ORDER BY date_time ASC, id ASC")
	assert.Equal(t, "commented", q.ctx.Value(ctxKey{}))
}
