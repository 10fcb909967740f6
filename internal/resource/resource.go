// Package resource holds the tagged fetch envelope and the coordinator that
// reconciles a local cache with a network source.
package resource

// Status is the state carried by a Resource
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Resource wraps a value with its fetch status.
// HasData distinguishes "no value" from a zero value.
type Resource[T any] struct {
	Status  Status
	Data    T
	HasData bool
	Message string // Set for StatusError
}

// Success wraps data fetched or reconciled successfully
func Success[T any](data T) Resource[T] {
	return Resource[T]{Status: StatusSuccess, Data: data, HasData: true}
}

// SuccessEmpty reports success with nothing to show (post-write read was empty)
func SuccessEmpty[T any]() Resource[T] {
	return Resource[T]{Status: StatusSuccess}
}

// Error reports a failure together with fallback data
func Error[T any](message string, data T) Resource[T] {
	return Resource[T]{Status: StatusError, Data: data, HasData: true, Message: errorMessage(message)}
}

// ErrorEmpty reports a failure without fallback data
func ErrorEmpty[T any](message string) Resource[T] {
	return Resource[T]{Status: StatusError, Message: errorMessage(message)}
}

// Loading reports an in-flight fetch together with the cached value
func Loading[T any](data T) Resource[T] {
	return Resource[T]{Status: StatusLoading, Data: data, HasData: true}
}

// LoadingEmpty reports an in-flight fetch with nothing cached
func LoadingEmpty[T any]() Resource[T] {
	return Resource[T]{Status: StatusLoading}
}

// Err converts an error-status resource into a Go error (nil otherwise)
func (r Resource[T]) Err() error {
	if r.Status != StatusError {
		return nil
	}
	return &Failure{Message: r.Message}
}

// Failure is the error form of an error-status Resource
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Error status always carries a message
func errorMessage(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
