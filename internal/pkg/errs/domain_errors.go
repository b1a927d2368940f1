package errs

import "errors"

// Domain-specific sentinel errors for the reservation usecase layers.
// Each maps to one entry of the error taxonomy surfaced by the REST API.
var (
	// Request errors
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("reservation id already exists for another credential")
	ErrAuthorization = errors.New("not authorized")

	// Reservation conflict errors
	ErrConnectorOccupied  = errors.New("connector already carries a live reservation")
	ErrCollision          = errors.New("reservation collides with an existing reservation")
	ErrMultipleReserveNow = errors.New("user already holds an active reserve-now reservation")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// Remote charge-point refusals, kept distinct per response kind
	ErrRemoteRejected    = errors.New("charge point rejected the reservation command")
	ErrRemoteFaulted     = errors.New("charge point reported a fault")
	ErrRemoteOccupied    = errors.New("charge point reported the connector occupied")
	ErrRemoteUnavailable = errors.New("charge point reported the connector unavailable")

	// Infrastructure errors
	ErrBackendUnreachable = errors.New("no live connection to the charging station")
	ErrDatabaseOperation  = errors.New("database operation failed")
)
