// Package numbering computes sequential invoice numbers in the
// PREFIX-NNNNNN format.
//
// Allocation is a read-then-write pattern over shared storage: the
// allocator reads the last matching number and the store inserts the
// new invoice inside one transaction, relying on the unique index on
// invoice_number to reject a racing duplicate. The allocator itself
// never locks; a caller receiving a duplicate error retries.
package numbering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rigalabs/invoice-manager/internal/settings"
)

// LastNumberFunc returns the invoice number of the most recently
// created invoice whose number starts with "{prefix}-", or ok=false
// when no such invoice exists. Ties break on highest insertion order.
type LastNumberFunc func(prefix string) (number string, ok bool, err error)

// Format renders a sequence value as PREFIX-NNNNNN.
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// Next computes the next invoice number for the given prefix. An empty
// prefix falls back to the default. A malformed last number restarts
// the sequence at 1; the resulting duplicate, if any, is caught by the
// storage uniqueness constraint, not here.
func Next(prefix string, last LastNumberFunc) (string, error) {
	if prefix == "" {
		prefix = settings.DefaultPrefix
	}

	number, ok, err := last(prefix)
	if err != nil {
		return "", err
	}
	if !ok {
		return Format(prefix, 1), nil
	}

	seq := 1
	parts := strings.Split(number, "-")
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			seq = n + 1
		}
	}
	return Format(prefix, seq), nil
}

// Parse extracts the numeric suffix of an invoice number. ok is false
// when the number does not end in a dash-separated run of digits.
func Parse(number string) (seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}
