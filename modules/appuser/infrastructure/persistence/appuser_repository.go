package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/modules/appuser/infrastructure/persistence/models"
	"github.com/appdeck/userbase/pkg/serrors"
)

const uniqueViolationSQLState = "23505"

const (
	selectAppUserFields = `SELECT id, first_name, last_name, birth_date, phone_no FROM app_users`

	appUserInsertQuery = `
		INSERT INTO app_users (first_name, last_name, birth_date, phone_no)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	appUserByIDQuery        = selectAppUserFields + ` WHERE id = $1`
	appUsersByLastNameQuery = selectAppUserFields + ` WHERE last_name ILIKE '%' || $1 || '%' ORDER BY birth_date DESC, id`
	appUsersPageQuery       = selectAppUserFields + ` ORDER BY birth_date DESC, id LIMIT $1 OFFSET $2`
	oldestWithPhoneQuery    = selectAppUserFields + ` WHERE phone_no IS NOT NULL ORDER BY birth_date ASC, id LIMIT 1`

	appUsersCountQuery        = `SELECT COUNT(*) FROM app_users`
	appUserExistsByPhoneQuery = `SELECT EXISTS (SELECT 1 FROM app_users WHERE phone_no = $1)`
	appUserExistsByIDQuery    = `SELECT EXISTS (SELECT 1 FROM app_users WHERE id = $1)`
	appUserDeleteQuery        = `DELETE FROM app_users WHERE id = $1`
	appUsersDeleteAllQuery    = `DELETE FROM app_users`
)

type PgAppUserRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewAppUserRepository(db *sqlx.DB, log *logrus.Logger) appuser.Repository {
	return &PgAppUserRepository{db: db, log: log}
}

func (r *PgAppUserRepository) SaveAll(ctx context.Context, records []appuser.ImportRecord) ([]appuser.AppUser, error) {
	if records == nil {
		return nil, serrors.NewValidation("STORE_NIL_BATCH", "App users cannot be null")
	}

	saved := make([]appuser.AppUser, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record.PhoneNumber != "" {
			if _, dup := seen[record.PhoneNumber]; dup {
				r.logDuplicatePhone(record.PhoneNumber)
				continue
			}
			taken, err := r.ExistsByPhoneNumber(ctx, record.PhoneNumber)
			if err != nil {
				return nil, err
			}
			if taken {
				r.logDuplicatePhone(record.PhoneNumber)
				continue
			}
		}

		user, err := r.insert(ctx, record)
		if err != nil {
			return nil, err
		}
		if record.PhoneNumber != "" {
			seen[record.PhoneNumber] = struct{}{}
		}
		saved = append(saved, user)
	}
	return saved, nil
}

func (r *PgAppUserRepository) Save(ctx context.Context, record *appuser.ImportRecord) (appuser.AppUser, error) {
	if record == nil {
		return appuser.AppUser{}, serrors.NewValidation("STORE_NIL_RECORD", "App user cannot be null")
	}
	if record.PhoneNumber != "" {
		taken, err := r.ExistsByPhoneNumber(ctx, record.PhoneNumber)
		if err != nil {
			return appuser.AppUser{}, err
		}
		if taken {
			return appuser.AppUser{}, serrors.WrapError(appuser.ErrPhoneNumberTaken, serrors.KindValidation, "STORE_PHONE_TAKEN", "Phone number is not unique")
		}
	}
	return r.insert(ctx, *record)
}

func (r *PgAppUserRepository) GetByID(ctx context.Context, id int64) (appuser.AppUser, error) {
	if id <= 0 {
		return appuser.AppUser{}, serrors.NewValidation("STORE_BAD_ID", "Id cannot be null and has to be greater than 0")
	}
	var row models.AppUser
	if err := r.db.GetContext(ctx, &row, appUserByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appuser.AppUser{}, appuser.ErrNotFound
		}
		return appuser.AppUser{}, serrors.WrapStorage(err, "STORE_QUERY", "failed to query app user by id")
	}
	return ToDomainAppUser(row), nil
}

func (r *PgAppUserRepository) GetByLastName(ctx context.Context, lastName string) ([]appuser.AppUser, error) {
	if lastName == "" {
		return nil, serrors.NewValidation("STORE_BAD_LAST_NAME", "Last name cannot be null")
	}
	var rows []models.AppUser
	if err := r.db.SelectContext(ctx, &rows, appUsersByLastNameQuery, lastName); err != nil {
		return nil, serrors.WrapStorage(err, "STORE_QUERY", "failed to query app users by last name")
	}
	return ToDomainAppUsers(rows), nil
}

func (r *PgAppUserRepository) GetFirstPage(ctx context.Context) (appuser.Page, error) {
	return r.GetPage(ctx, 0)
}

func (r *PgAppUserRepository) GetPage(ctx context.Context, pageNumber int) (appuser.Page, error) {
	if pageNumber < 0 {
		return appuser.Page{}, serrors.NewValidation("STORE_BAD_PAGE", "Page number cannot be null and has to be greater or equal 0")
	}

	total, err := r.Count(ctx)
	if err != nil {
		return appuser.Page{}, err
	}

	var rows []models.AppUser
	offset := pageNumber * appuser.PageSize
	if err := r.db.SelectContext(ctx, &rows, appUsersPageQuery, appuser.PageSize, offset); err != nil {
		return appuser.Page{}, serrors.WrapStorage(err, "STORE_QUERY", "failed to query app users page")
	}

	return appuser.Page{
		Items:         ToDomainAppUsers(rows),
		PageNumber:    pageNumber,
		PageSize:      appuser.PageSize,
		TotalElements: total,
		TotalPages:    int((total + appuser.PageSize - 1) / appuser.PageSize),
	}, nil
}

func (r *PgAppUserRepository) GetOldestWithPhoneNumber(ctx context.Context) (appuser.AppUser, error) {
	var row models.AppUser
	if err := r.db.GetContext(ctx, &row, oldestWithPhoneQuery); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appuser.AppUser{}, appuser.ErrNotFound
		}
		return appuser.AppUser{}, serrors.WrapStorage(err, "STORE_QUERY", "failed to query oldest app user")
	}
	return ToDomainAppUser(row), nil
}

func (r *PgAppUserRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return serrors.NewValidation("STORE_BAD_ID", "Id cannot be null and has to be greater than 0")
	}
	result, err := r.db.ExecContext(ctx, appUserDeleteQuery, id)
	if err != nil {
		return serrors.WrapStorage(err, "STORE_DELETE", "failed to delete app user")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return serrors.WrapStorage(err, "STORE_DELETE", "failed to delete app user")
	}
	if affected == 0 {
		return appuser.ErrNotFound
	}
	return nil
}

func (r *PgAppUserRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, appUsersDeleteAllQuery); err != nil {
		return serrors.WrapStorage(err, "STORE_DELETE", "failed to delete app users")
	}
	return nil
}

func (r *PgAppUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, appUsersCountQuery); err != nil {
		return 0, serrors.WrapStorage(err, "STORE_QUERY", "failed to count app users")
	}
	return count, nil
}

func (r *PgAppUserRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	if phoneNumber == "" {
		return false, nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists, appUserExistsByPhoneQuery, phoneNumber); err != nil {
		return false, serrors.WrapStorage(err, "STORE_QUERY", "failed to check phone number")
	}
	return exists, nil
}

func (r *PgAppUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists, appUserExistsByIDQuery, id); err != nil {
		return false, serrors.WrapStorage(err, "STORE_QUERY", "failed to check app user id")
	}
	return exists, nil
}

func (r *PgAppUserRepository) insert(ctx context.Context, record appuser.ImportRecord) (appuser.AppUser, error) {
	user, err := record.ToAppUser()
	if err != nil {
		return appuser.AppUser{}, serrors.NewValidation("STORE_BAD_DATE", "Incorrect format of birth date")
	}

	row := ToDBAppUser(user)
	var id int64
	err = r.db.QueryRowxContext(ctx, appUserInsertQuery, row.FirstName, row.LastName, row.BirthDate, row.PhoneNo).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationSQLState {
			return appuser.AppUser{}, serrors.WrapError(appuser.ErrPhoneNumberTaken, serrors.KindValidation, "STORE_PHONE_TAKEN", "Phone number is not unique")
		}
		return appuser.AppUser{}, serrors.WrapStorage(err, "STORE_INSERT", "failed to store app user")
	}
	return appuser.Hydrate(id, user.FirstName(), user.LastName(), user.BirthDate(), user.PhoneNumber()), nil
}

func (r *PgAppUserRepository) logDuplicatePhone(phoneNumber string) {
	r.log.Errorf("app user with phone number %s already exists and was not stored", phoneNumber)
}
