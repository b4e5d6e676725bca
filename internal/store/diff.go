package store

import "sort"

// Diff describes how an import changes the persisted tool set.
type Diff struct {
	Created []string // canonical keys not seen before
	Updated []string // keys present before and in this import
	Retired []string // keys present before but absent now
}

// ComputeDiff compares the incoming records against the keys already
// persisted. All three slices come back sorted.
func ComputeDiff(existing []string, incoming []ToolRecord) Diff {
	before := make(map[string]bool, len(existing))
	for _, key := range existing {
		before[key] = true
	}

	var d Diff
	seen := make(map[string]bool, len(incoming))
	for _, r := range incoming {
		if seen[r.CanonicalKey] {
			continue
		}
		seen[r.CanonicalKey] = true
		if before[r.CanonicalKey] {
			d.Updated = append(d.Updated, r.CanonicalKey)
		} else {
			d.Created = append(d.Created, r.CanonicalKey)
		}
	}
	for _, key := range existing {
		if !seen[key] {
			d.Retired = append(d.Retired, key)
		}
	}

	sort.Strings(d.Created)
	sort.Strings(d.Updated)
	sort.Strings(d.Retired)
	return d
}
