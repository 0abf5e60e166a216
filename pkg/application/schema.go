package application

import (
	"context"
	"io/fs"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaManager collects embedded schema files from modules and applies them
// at startup. Statements are idempotent (CREATE TABLE IF NOT EXISTS ...), so
// reapplying on every boot is safe.
type SchemaManager struct {
	pool    *pgxpool.Pool
	sources []fs.FS
}

func NewSchemaManager(pool *pgxpool.Pool) *SchemaManager {
	return &SchemaManager{pool: pool}
}

func (m *SchemaManager) RegisterSchema(fsys fs.FS) {
	m.sources = append(m.sources, fsys)
}

func (m *SchemaManager) Apply(ctx context.Context) error {
	for _, fsys := range m.sources {
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			content, err := fs.ReadFile(fsys, path)
			if err != nil {
				return gerrors.Wrapf(err, "read schema %s", path)
			}
			if _, err := m.pool.Exec(ctx, string(content)); err != nil {
				return gerrors.Wrapf(err, "apply schema %s", path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
