package appuser

import (
	"context"

	"github.com/go-faster/errors"
)

// PageSize is the fixed number of records per page.
const PageSize = 5

var (
	ErrNotFound         = errors.New("app user not found")
	ErrPhoneNumberTaken = errors.New("phone number is not unique")
)

// Page is a fixed-size slice of the record set sorted by birth date
// descending. PageNumber is zero-based. Out-of-range pages are legal and come
// back empty with totals intact.
type Page struct {
	Items         []AppUser
	PageNumber    int
	PageSize      int
	TotalElements int64
	TotalPages    int
}

type Repository interface {
	// SaveAll maps and bulk-inserts the given import records, silently
	// skipping the ones whose non-empty phone number is already stored. A nil
	// slice is a contract violation; an empty one yields an empty result.
	SaveAll(ctx context.Context, records []ImportRecord) ([]AppUser, error)
	// Save inserts a single record, failing with ErrPhoneNumberTaken when its
	// non-empty phone number is already stored.
	Save(ctx context.Context, record *ImportRecord) (AppUser, error)
	GetByID(ctx context.Context, id int64) (AppUser, error)
	// GetByLastName matches case-insensitively on substring containment.
	GetByLastName(ctx context.Context, lastName string) ([]AppUser, error)
	GetFirstPage(ctx context.Context) (Page, error)
	GetPage(ctx context.Context, pageNumber int) (Page, error)
	// GetOldestWithPhoneNumber returns the record with the earliest birth
	// date among those that have a non-empty phone number; records without a
	// phone number are excluded from consideration entirely.
	GetOldestWithPhoneNumber(ctx context.Context) (AppUser, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
