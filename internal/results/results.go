package results

// Status classifies the outcome of a service operation. Handlers map these to
// transport codes; services never return raw HTTP statuses.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusUnauthorized
	StatusForbidden
	StatusConflict
	StatusInvalid
)

// Operation is the outcome of a service call: either a value, or a typed
// failure with a stable machine-readable code and a human-readable message.
// Infrastructure errors travel separately on the error return.
type Operation[T any] struct {
	Status  Status
	Value   T
	Code    string
	Message string
}

// OK reports whether the operation succeeded.
func (o Operation[T]) OK() bool { return o.Status == StatusOK }

// Ok builds a successful outcome carrying value.
func Ok[T any](value T) Operation[T] {
	return Operation[T]{Status: StatusOK, Value: value}
}

// NotFound builds a not-found outcome.
func NotFound[T any](code, message string) Operation[T] {
	return Operation[T]{Status: StatusNotFound, Code: code, Message: message}
}

// Unauthorized builds an unauthenticated outcome.
func Unauthorized[T any](code, message string) Operation[T] {
	return Operation[T]{Status: StatusUnauthorized, Code: code, Message: message}
}

// Forbidden builds an authenticated-but-not-allowed outcome.
func Forbidden[T any](code, message string) Operation[T] {
	return Operation[T]{Status: StatusForbidden, Code: code, Message: message}
}

// Conflict builds a duplicate-attribute outcome.
func Conflict[T any](code, message string) Operation[T] {
	return Operation[T]{Status: StatusConflict, Code: code, Message: message}
}

// Invalid builds a validation-failure outcome.
func Invalid[T any](code, message string) Operation[T] {
	return Operation[T]{Status: StatusInvalid, Code: code, Message: message}
}
