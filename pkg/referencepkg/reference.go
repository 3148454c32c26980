// Package referencepkg generates human readable transaction reference ids.
package referencepkg

import (
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/randompkg"
)

// Reference id prefixes.
const (
	PrefixTransfer = "TRF"
	PrefixDefault  = "TRX"
)

const (
	minSuffix = 1000
	maxSuffix = 9999
)

// New returns a reference id in the {prefix}-{unix_ms}-{random} format.
//
// The id is not guaranteed to be unique, uniqueness is enforced by the store.
func New(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d", prefix, now.UnixMilli(), randompkg.IntBetween(minSuffix, maxSuffix))
}
