package uuid

import (
	gouuid "github.com/gofrs/uuid/v5"
)

type UUID = gouuid.UUID

// NewV4 returns a random UUID. Generation only fails when the system
// entropy source is broken, which is not worth plumbing an error for.
func NewV4() UUID {
	return gouuid.Must(gouuid.NewV4())
}

func FromString(s string) (UUID, error) {
	return gouuid.FromString(s)
}
