package render

import (
	"strings"

	"github.com/google/uuid"
)

// UIDLength is the number of hex characters in a card UID.
const UIDLength = 12

// NewUID returns 12 random hex characters used to namespace DOM ids.
func NewUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:UIDLength]
}
