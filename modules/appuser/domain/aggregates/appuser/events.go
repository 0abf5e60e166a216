package appuser

// AppUsersImportedEvent is published after a batch of records has been stored.
type AppUsersImportedEvent struct {
	Users []AppUser
}

// AppUsersClearedEvent is published after the whole record set has been
// deleted.
type AppUsersClearedEvent struct{}
