package resort

import "strings"

// nameCuts are stripped from scraped display names in this exact order.
// Order matters where substrings overlap ("Hakuba " must go before the "47"
// expansion puts it back).
var nameCuts = []string{
	" Snow Resort",
	" Snow Field",
	" Park",
	" Resort",
	" Mountain",
	" Winter Sports",
	"ABLE ",
	"Hakuba ",
}

// NormalizeName cleans a scraped resort name into the table key. It is
// idempotent: normalizing an already-clean name is a no-op.
func NormalizeName(name string) string {
	for _, cut := range nameCuts {
		name = strings.ReplaceAll(name, cut, "")
	}
	return strings.ReplaceAll(name, "47", "Hakuba 47")
}
