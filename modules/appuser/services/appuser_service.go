package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/pkg/eventbus"
	"github.com/appdeck/userbase/pkg/serrors"
)

// AppUserService is the application-level facade over the record store. It
// mirrors the storage adapter's argument checks so callers bypassing HTTP get
// the same contract, and re-wraps unexpected storage failures as service-kind
// errors. Sentinel errors (ErrNotFound, ErrPhoneNumberTaken) pass through
// untouched.
type AppUserService struct {
	repo      appuser.Repository
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewAppUserService(repo appuser.Repository, publisher eventbus.EventBus, log *logrus.Logger) *AppUserService {
	return &AppUserService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// AddAppUsers stores a batch of import records. Records whose phone number is
// already stored are dropped up front, each drop logged; the storage adapter
// runs the same filter again so a race between the two checks degrades to a
// second silent drop rather than a failed batch.
func (s *AppUserService) AddAppUsers(ctx context.Context, records []appuser.ImportRecord) ([]appuser.AppUser, error) {
	if records == nil {
		return nil, serrors.NewValidation("SVC_NIL_BATCH", "App users cannot be null")
	}

	accepted := make([]appuser.ImportRecord, 0, len(records))
	for _, record := range records {
		if record.PhoneNumber != "" {
			taken, err := s.repo.ExistsByPhoneNumber(ctx, record.PhoneNumber)
			if err != nil {
				return nil, s.wrap(err, "An error occurred while saving app users")
			}
			if taken {
				s.log.Errorf("app user with phone number %s already exists and was not stored", record.PhoneNumber)
				continue
			}
		}
		accepted = append(accepted, record)
	}

	saved, err := s.repo.SaveAll(ctx, accepted)
	if err != nil {
		return nil, s.wrap(err, "An error occurred while saving app users")
	}

	s.publisher.Publish(appuser.AppUsersImportedEvent{Users: saved})
	return saved, nil
}

func (s *AppUserService) GetFirstPageOfAppUsers(ctx context.Context) (appuser.Page, error) {
	page, err := s.repo.GetFirstPage(ctx)
	if err != nil {
		return appuser.Page{}, s.wrap(err, "An error occurred while reading app users")
	}
	return page, nil
}

func (s *AppUserService) GetAppUsers(ctx context.Context, pageNumber int) (appuser.Page, error) {
	if pageNumber < 0 {
		return appuser.Page{}, serrors.NewValidation("SVC_BAD_PAGE", "Page number cannot be null and has to be greater or equal 0")
	}
	page, err := s.repo.GetPage(ctx, pageNumber)
	if err != nil {
		return appuser.Page{}, s.wrap(err, "An error occurred while reading app users")
	}
	return page, nil
}

func (s *AppUserService) GetAppUserByID(ctx context.Context, id int64) (appuser.AppUser, error) {
	if id <= 0 {
		return appuser.AppUser{}, serrors.NewValidation("SVC_BAD_ID", "Id cannot be null and has to be greater than 0")
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return appuser.AppUser{}, s.wrap(err, "An error occurred while reading app user")
	}
	return user, nil
}

func (s *AppUserService) GetAppUsersByLastName(ctx context.Context, lastName string) ([]appuser.AppUser, error) {
	if lastName == "" {
		return nil, serrors.NewValidation("SVC_BAD_LAST_NAME", "Last name cannot be null")
	}
	users, err := s.repo.GetByLastName(ctx, lastName)
	if err != nil {
		return nil, s.wrap(err, "An error occurred while reading app users")
	}
	return users, nil
}

func (s *AppUserService) GetOldestAppUser(ctx context.Context) (appuser.AppUser, error) {
	user, err := s.repo.GetOldestWithPhoneNumber(ctx)
	if err != nil {
		return appuser.AppUser{}, s.wrap(err, "An error occurred while reading app user")
	}
	return user, nil
}

func (s *AppUserService) DeleteByID(ctx context.Context, id int64) error {
	if id <= 0 {
		return serrors.NewValidation("SVC_BAD_ID", "Id cannot be null and has to be greater than 0")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err, "An error occurred while deleting app user")
	}
	return nil
}

func (s *AppUserService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return s.wrap(err, "An error occurred while deleting app users")
	}
	s.publisher.Publish(appuser.AppUsersClearedEvent{})
	return nil
}

func (s *AppUserService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.wrap(err, "An error occurred while counting app users")
	}
	return count, nil
}

func (s *AppUserService) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	if phoneNumber == "" {
		return false, nil
	}
	exists, err := s.repo.ExistsByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return false, s.wrap(err, "An error occurred while checking phone number")
	}
	return exists, nil
}

func (s *AppUserService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, s.wrap(err, "An error occurred while checking app user id")
	}
	return exists, nil
}

// wrap turns unexpected storage failures into service-kind errors while
// letting sentinels and request-level errors through unchanged.
func (s *AppUserService) wrap(err error, message string) error {
	if errors.Is(err, appuser.ErrNotFound) || errors.Is(err, appuser.ErrPhoneNumberTaken) {
		return err
	}
	if serrors.IsKind(err, serrors.KindValidation) || serrors.IsKind(err, serrors.KindParsing) {
		return err
	}
	return serrors.WrapService(err, "SVC_STORE", message)
}
