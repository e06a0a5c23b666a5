package identifier

import "github.com/google/uuid"

// New returns a unique id with a leading timestamp component (UUIDv7),
// so freshly created entities sort roughly by creation time. Falls back
// to a purely random id if the entropy source misbehaves.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
