package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/infra/repository"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries             = 3
	retryBase              = 100 * time.Millisecond
	defaultOperationBudget = 5 * time.Second
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// beginner is the part of *pgxpool.Pool the unit of work needs.
type beginner interface {
	sqlc.DBTX
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	db      beginner
	q       *sqlc.Queries
	timeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.Config) shared.UnitOfWork {
	return newPostgresUoW(pool, q, cfg.DB.OperationTimeout)
}

func newPostgresUoW(db beginner, q *sqlc.Queries, timeout time.Duration) *PostgresUoW {
	if timeout <= 0 {
		timeout = defaultOperationBudget
	}
	return &PostgresUoW{db: db, q: q, timeout: timeout}
}

// Within runs fn in a ReadCommitted transaction. Serialization failures and
// deadlocks rerun fn from the start, so fn must not leak state across attempts.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithinReadOnly gives fn a consistent multi-table snapshot.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

// WithDB runs fn against the pool; each statement is its own implicit transaction.
func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return fn(ctx, u.bind(u.db))
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := u.attempt(ctx, options, fn)
		if err == nil {
			return nil
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && infra.IsRetryable(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, retryBase)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) attempt(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	pgxTx, err := u.db.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, u.bind(pgxTx))
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	// Rollback must still run when ctx expired, so it gets a fresh budget.
	rbCtx, rbCancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer rbCancel()
	if rollbackErr := pgxTx.Rollback(rbCtx); rollbackErr != nil && !errs.Is(rollbackErr, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", rollbackErr.Error())
	}
	return err
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	pgxTx, err := u.db.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			if !errs.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, u.bind(pgxTx)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) bind(dbtx sqlc.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx, q: u.q}
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return infra.IsRetryable(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

// pgTx binds every repository to one dbtx, so they all share the transaction.
type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	bookingRepo      shared.BookingRepository
	resourceRepo     shared.ResourceRepository
	userRepo         shared.UserRepository
	notificationRepo shared.NotificationRepository
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.q, t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resourceRepo == nil {
		t.resourceRepo = repository.NewResourceRepository(t.q, t.dbtx)
	}
	return t.resourceRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.q, t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.q, t.dbtx)
	}
	return t.notificationRepo
}
