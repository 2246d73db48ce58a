package ports

import "context"

// LoginLockout tracks failed admin logins per username and cools the username down after too many.
type LoginLockout interface {
	// IsLocked returns true if the username is locked, and the remaining cooldown in seconds.
	IsLocked(ctx context.Context, username string) (locked bool, retryAfterSeconds int)
	// RecordFailure records a rejected login; may lock the username after N failures.
	RecordFailure(ctx context.Context, username string)
	// RecordSuccess clears the failure count (call on successful login).
	RecordSuccess(ctx context.Context, username string)
}
