package appuser

import (
	"embed"

	"github.com/jmoiron/sqlx"

	"github.com/appdeck/userbase/modules/appuser/infrastructure/persistence"
	"github.com/appdeck/userbase/modules/appuser/presentation/controllers"
	"github.com/appdeck/userbase/modules/appuser/services"
	"github.com/appdeck/userbase/pkg/application"
)

//go:embed infrastructure/persistence/schema/appuser-schema.sql
var migrationFiles embed.FS

type ModuleOptions struct {
	DB *sqlx.DB
	// Upper bound for CSV upload bodies, in bytes; zero means the
	// controller default.
	MaxUploadSize int64
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{db: opts.DB, maxUploadSize: opts.MaxUploadSize}
}

type Module struct {
	db            *sqlx.DB
	maxUploadSize int64
}

func (m *Module) Register(app application.Application) error {
	app.Schema().RegisterSchema(migrationFiles)

	repo := persistence.NewAppUserRepository(m.db, app.Logger())
	app.RegisterServices(
		services.NewAppUserService(repo, app.EventPublisher(), app.Logger()),
	)

	app.RegisterControllers(
		controllers.NewAppUserAPIController(app, m.maxUploadSize),
	)

	return nil
}

func (m *Module) Name() string {
	return "appuser"
}
