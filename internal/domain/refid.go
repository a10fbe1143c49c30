package domain

import (
	"fmt"
	"strings"
	"time"
)

// PrefixFor resolves the reference prefix for a salesperson from the
// fixed prefix table, falling back to the uppercased first letter of
// the name.
func PrefixFor(salesperson string, prefixes map[string]string) string {
	if prefix, ok := prefixes[salesperson]; ok && prefix != "" {
		return prefix
	}
	name := strings.TrimSpace(salesperson)
	if name == "" {
		return "X"
	}
	return strings.ToUpper(name[:1])
}

// GenerateReferenceID derives the human-readable shipment code
// {prefix}-{YYMM}-{NNNN}. The sequence is the lifetime count of the
// salesperson's existing shipments plus one; only the date portion
// reflects the creation time.
func GenerateReferenceID(salesperson string, prefixes map[string]string, existing []Shipment, now time.Time) string {
	count := 0
	for i := range existing {
		if existing[i].Salesperson == salesperson {
			count++
		}
	}
	return fmt.Sprintf("%s-%02d%02d-%04d", PrefixFor(salesperson, prefixes), now.Year()%100, int(now.Month()), count+1)
}
