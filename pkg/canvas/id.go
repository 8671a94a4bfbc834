package canvas

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// idLength is the number of hex characters in generated ids.
// Canvas viewers use 16-char hex ids, so generated ids match that shape.
const idLength = 16

// NewID generates a random node/edge id: 16 hex characters derived from a
// random UUID. Collisions are as unlikely as a 64-bit random clash.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:idLength]
}
