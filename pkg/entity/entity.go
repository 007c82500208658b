// pkg/entity/entity.go
package entity

import "sync/atomic"

// ID is a unique identifier for a body in the scene
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a new process-unique ID. IDs start at 1 so the zero
// value can mean "no body".
func GenerateID() ID {
	return ID(nextID.Add(1))
}
