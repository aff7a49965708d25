package services

import "errors"

// Error taxonomy surfaced to callers. Handlers map these onto status
// codes; everything else that escapes a service is a storage failure and
// gets wrapped with ErrStore so "failed" stays distinguishable from
// legitimately empty results.
var (
	ErrAuthentication = errors.New("invalid username or password")

	ErrNotMember = errors.New("user is not a member of the channel")
	ErrNotAdmin  = errors.New("admin privileges required")

	ErrUserNotFound    = errors.New("user not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrMessageNotFound = errors.New("message not found")

	ErrInvalidRole        = errors.New("invalid role")
	ErrNoCreator          = errors.New("no creator for channel")
	ErrMissingParticipant = errors.New("missing direct channel participant")

	ErrUserExists    = errors.New("username already exists")
	ErrChannelExists = errors.New("channel already exists")
	ErrJoinFailed    = errors.New("failed to join channel")

	ErrStore = errors.New("storage failure")
)

func storeErr(err error) error {
	return errors.Join(ErrStore, err)
}
