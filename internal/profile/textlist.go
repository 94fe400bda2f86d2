package profile

import "strings"

// List-valued extension fields (assigned areas, service types, service areas)
// persist as comma-joined free text, matching the external schema. Entries are
// trimmed on both directions. Duplicates and empty entries are kept as-is;
// whether they should be rejected is an unresolved question about the schema,
// so the behavior is preserved rather than fixed.

// SplitList turns stored comma-joined text into its entries.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// JoinList renders entries back to the stored comma-joined form.
func JoinList(entries []string) string {
	trimmed := make([]string, len(entries))
	for i, e := range entries {
		trimmed[i] = strings.TrimSpace(e)
	}
	return strings.Join(trimmed, ",")
}
