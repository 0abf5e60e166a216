package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/pkg/eventbus"
	"github.com/appdeck/userbase/pkg/serrors"
)

// fakeRepository is an in-memory stand-in for the Postgres adapter with the
// same phone-uniqueness and paging semantics.
type fakeRepository struct {
	nextID   int64
	users    []appuser.AppUser
	failWith error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (f *fakeRepository) SaveAll(_ context.Context, records []appuser.ImportRecord) ([]appuser.AppUser, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if records == nil {
		return nil, serrors.NewValidation("STORE_NIL_BATCH", "App users cannot be null")
	}
	saved := make([]appuser.AppUser, 0, len(records))
	for _, record := range records {
		if record.PhoneNumber != "" {
			taken, _ := f.ExistsByPhoneNumber(context.Background(), record.PhoneNumber)
			if taken {
				continue
			}
		}
		user, err := f.insert(record)
		if err != nil {
			return nil, err
		}
		saved = append(saved, user)
	}
	return saved, nil
}

func (f *fakeRepository) Save(_ context.Context, record *appuser.ImportRecord) (appuser.AppUser, error) {
	if f.failWith != nil {
		return appuser.AppUser{}, f.failWith
	}
	if record == nil {
		return appuser.AppUser{}, serrors.NewValidation("STORE_NIL_RECORD", "App user cannot be null")
	}
	if record.PhoneNumber != "" {
		taken, _ := f.ExistsByPhoneNumber(context.Background(), record.PhoneNumber)
		if taken {
			return appuser.AppUser{}, appuser.ErrPhoneNumberTaken
		}
	}
	return f.insert(*record)
}

func (f *fakeRepository) insert(record appuser.ImportRecord) (appuser.AppUser, error) {
	user, err := record.ToAppUser()
	if err != nil {
		return appuser.AppUser{}, err
	}
	stored := appuser.Hydrate(f.nextID, user.FirstName(), user.LastName(), user.BirthDate(), user.PhoneNumber())
	f.nextID++
	f.users = append(f.users, stored)
	return stored, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (appuser.AppUser, error) {
	if f.failWith != nil {
		return appuser.AppUser{}, f.failWith
	}
	for _, user := range f.users {
		if user.ID() == id {
			return user, nil
		}
	}
	return appuser.AppUser{}, appuser.ErrNotFound
}

func (f *fakeRepository) GetByLastName(_ context.Context, lastName string) ([]appuser.AppUser, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var matched []appuser.AppUser
	for _, user := range f.users {
		if containsFold(user.LastName(), lastName) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (f *fakeRepository) GetFirstPage(ctx context.Context) (appuser.Page, error) {
	return f.GetPage(ctx, 0)
}

func (f *fakeRepository) GetPage(_ context.Context, pageNumber int) (appuser.Page, error) {
	if f.failWith != nil {
		return appuser.Page{}, f.failWith
	}
	sorted := make([]appuser.AppUser, len(f.users))
	copy(sorted, f.users)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].BirthDate().After(sorted[j].BirthDate())
	})

	start := pageNumber * appuser.PageSize
	end := start + appuser.PageSize
	var items []appuser.AppUser
	if start < len(sorted) {
		if end > len(sorted) {
			end = len(sorted)
		}
		items = sorted[start:end]
	}
	total := int64(len(f.users))
	return appuser.Page{
		Items:         items,
		PageNumber:    pageNumber,
		PageSize:      appuser.PageSize,
		TotalElements: total,
		TotalPages:    int((total + appuser.PageSize - 1) / appuser.PageSize),
	}, nil
}

func (f *fakeRepository) GetOldestWithPhoneNumber(_ context.Context) (appuser.AppUser, error) {
	if f.failWith != nil {
		return appuser.AppUser{}, f.failWith
	}
	var oldest appuser.AppUser
	for _, user := range f.users {
		if user.PhoneNumber() == "" {
			continue
		}
		if oldest.IsZero() || user.BirthDate().Before(oldest.BirthDate()) {
			oldest = user
		}
	}
	if oldest.IsZero() {
		return appuser.AppUser{}, appuser.ErrNotFound
	}
	return oldest, nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i, user := range f.users {
		if user.ID() == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return appuser.ErrNotFound
}

func (f *fakeRepository) DeleteAll(_ context.Context) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.users = nil
	return nil
}

func (f *fakeRepository) Count(_ context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return int64(len(f.users)), nil
}

func (f *fakeRepository) ExistsByPhoneNumber(_ context.Context, phoneNumber string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if phoneNumber == "" {
		return false, nil
	}
	for _, user := range f.users {
		if user.PhoneNumber() == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, user := range f.users {
		if user.ID() == id {
			return true, nil
		}
	}
	return false, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newService(repo appuser.Repository) (*AppUserService, eventbus.EventBus) {
	publisher := eventbus.NewEventPublisher(quietLogger())
	return NewAppUserService(repo, publisher, quietLogger()), publisher
}

func sampleRecords() []appuser.ImportRecord {
	return []appuser.ImportRecord{
		{FirstName: "Stefan", LastName: "Testowy", BirthDate: "1988-11-11", PhoneNumber: "600700800"},
		{FirstName: "Maria", LastName: "Ziółko", BirthDate: "1999-01-10", PhoneNumber: ""},
		{FirstName: "Jolanta", LastName: "Magia", BirthDate: "2000-02-04", PhoneNumber: "666000111"},
	}
}

func TestAddAppUsers(t *testing.T) {
	svc, publisher := newService(newFakeRepository())

	var events []appuser.AppUsersImportedEvent
	publisher.Subscribe(func(ev appuser.AppUsersImportedEvent) {
		events = append(events, ev)
	})

	saved, err := svc.AddAppUsers(context.Background(), sampleRecords())
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "Stefan", saved[0].FirstName())
	require.Len(t, events, 1)
	assert.Len(t, events[0].Users, 3)
}

func TestAddAppUsers_NilBatch(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.AddAppUsers(context.Background(), nil)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestAddAppUsers_DropsAlreadyStoredPhoneNumber(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newService(repo)

	_, err := svc.AddAppUsers(context.Background(), []appuser.ImportRecord{
		{FirstName: "Jan", LastName: "Kowalski", BirthDate: "1990-05-05", PhoneNumber: "555666777"},
	})
	require.NoError(t, err)

	saved, err := svc.AddAppUsers(context.Background(), []appuser.ImportRecord{
		{FirstName: "Adam", LastName: "Nowak", BirthDate: "1991-06-06", PhoneNumber: "555666777"},
		{FirstName: "Maria", LastName: "Ziółko", BirthDate: "1999-01-10", PhoneNumber: ""},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Maria", saved[0].FirstName())

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGetAppUsers_SortedAndPaged(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.AddAppUsers(context.Background(), sampleRecords())
	require.NoError(t, err)

	page, err := svc.GetFirstPageOfAppUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Jolanta", page.Items[0].FirstName())
	assert.Equal(t, "Maria", page.Items[1].FirstName())
	assert.Equal(t, "Stefan", page.Items[2].FirstName())
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
}

func TestGetAppUsers_OutOfRangePageIsEmpty(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.AddAppUsers(context.Background(), sampleRecords())
	require.NoError(t, err)

	page, err := svc.GetAppUsers(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestGetAppUsers_NegativePage(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.GetAppUsers(context.Background(), -1)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestGetAppUserByID_NotFound(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.GetAppUserByID(context.Background(), 123)
	assert.ErrorIs(t, err, appuser.ErrNotFound)
}

func TestGetAppUserByID_InvalidID(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.GetAppUserByID(context.Background(), 0)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestGetAppUsersByLastName(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.AddAppUsers(context.Background(), sampleRecords())
	require.NoError(t, err)

	users, err := svc.GetAppUsersByLastName(context.Background(), "ziółko")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Maria", users[0].FirstName())

	_, err = svc.GetAppUsersByLastName(context.Background(), "")
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestGetOldestAppUser_SkipsUsersWithoutPhoneNumber(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.AddAppUsers(context.Background(), []appuser.ImportRecord{
		{FirstName: "Maria", LastName: "Ziółko", BirthDate: "1950-01-10", PhoneNumber: ""},
		{FirstName: "Stefan", LastName: "Testowy", BirthDate: "1988-11-11", PhoneNumber: "600700800"},
	})
	require.NoError(t, err)

	oldest, err := svc.GetOldestAppUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stefan", oldest.FirstName())
}

func TestGetOldestAppUser_NoneWithPhoneNumber(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	_, err := svc.GetOldestAppUser(context.Background())
	assert.ErrorIs(t, err, appuser.ErrNotFound)
}

func TestDeleteByID_NotFound(t *testing.T) {
	svc, _ := newService(newFakeRepository())

	err := svc.DeleteByID(context.Background(), 77)
	assert.ErrorIs(t, err, appuser.ErrNotFound)
}

func TestDeleteAll_PublishesClearedEvent(t *testing.T) {
	svc, publisher := newService(newFakeRepository())

	cleared := 0
	publisher.Subscribe(func(appuser.AppUsersClearedEvent) {
		cleared++
	})

	_, err := svc.AddAppUsers(context.Background(), sampleRecords())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAll(context.Background()))

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 1, cleared)

	// Clearing an already-empty store is not an error.
	require.NoError(t, svc.DeleteAll(context.Background()))
	assert.Equal(t, 2, cleared)
}

func TestStorageFailuresAreWrappedAsServiceErrors(t *testing.T) {
	repo := newFakeRepository()
	repo.failWith = errors.New("connection refused")
	svc, _ := newService(repo)

	_, err := svc.GetFirstPageOfAppUsers(context.Background())
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindService))
	assert.False(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestExistsByPhoneNumber_EmptyPhone(t *testing.T) {
	repo := newFakeRepository()
	repo.failWith = errors.New("must not be called")
	svc, _ := newService(repo)

	exists, err := svc.ExistsByPhoneNumber(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, exists)
}
