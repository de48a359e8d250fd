// Package memory provides in-memory repositories for local development and
// tests. They satisfy the same interfaces as the SQL repositories and are
// safe for concurrent use; reads return copies.
package memory

import "time"

var now = func() time.Time {
	return time.Now().UTC()
}
