package measure

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// IDSource hands out measurement identifiers.
type IDSource interface {
	NextID() string
}

// UUIDSource generates random (version 4) UUIDs.
type UUIDSource struct{}

// NextID implements IDSource.
func (UUIDSource) NextID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// SequentialIDs returns Prefix-1, Prefix-2, ... for reproducible tests.
type SequentialIDs struct {
	Prefix string
	n      int
}

// NextID implements IDSource.
func (s *SequentialIDs) NextID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
