package errcodes

// ErrorCode is a stable machine-readable error identifier exposed in API
// responses.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"

	DealNotFound          ErrorCode = "DealNotFound"
	OrderNotFound         ErrorCode = "OrderNotFound"
	DealExpiredOrNotFound ErrorCode = "DealExpiredOrNotFound" // reservation check, conflates expiry and absence
	InsufficientStock     ErrorCode = "InsufficientStock"
	InconsistentState     ErrorCode = "InconsistentState" // order references a missing deal
)
