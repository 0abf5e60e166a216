package modules

import (
	"github.com/jmoiron/sqlx"

	"github.com/appdeck/userbase/modules/appuser"
	"github.com/appdeck/userbase/pkg/application"
)

type Options struct {
	DB            *sqlx.DB
	MaxUploadSize int64
}

func BuiltInModules(opts *Options) []application.Module {
	return []application.Module{
		appuser.NewModule(&appuser.ModuleOptions{DB: opts.DB, MaxUploadSize: opts.MaxUploadSize}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
