package components

import (
	"resource-booking/internal/infra/db"
	"resource-booking/internal/infra/readstore"
	"resource-booking/internal/infra/repository"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
	),
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(commands.BookingViewReader)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
			fx.As(new(commands.ResourceReader)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
			fx.As(new(commands.CredentialsReader)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewResourceRepository,
			fx.As(new(commands.ResourceRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
