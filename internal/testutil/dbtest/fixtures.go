//go:build integration

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal surface fixtures need.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateUser(t *testing.T, db DBLike, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4)",
		id, id.String()+"@example.com", "Test "+role, role)
	require.NoError(t, err)
	return id
}

func CreateResource(t *testing.T, db DBLike, name string, capacity int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO resources (id, name, capacity) VALUES ($1, $2, $3)",
		id, name, capacity)
	require.NoError(t, err)
	return id
}

func CountBookings(t *testing.T, db DBLike, resourceID uuid.UUID, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE resource_id = $1 AND status = $2",
		resourceID, status).Scan(&n)
	require.NoError(t, err)
	return n
}
