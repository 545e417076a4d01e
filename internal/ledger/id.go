package ledger

import "github.com/oklog/ulid/v2"

// NewID returns a ULID for game sessions and ledger entries. ulid.Make
// draws from a shared monotonic source, so ids made in the same
// millisecond still sort in creation order.
func NewID() string {
	return ulid.Make().String()
}
