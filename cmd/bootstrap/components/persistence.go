package components

import (
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Repositories are bound per transaction inside the unit of work, so only the
// UoW itself is provided here.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}
