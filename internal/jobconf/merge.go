package jobconf

// merge combines a over b: a dict merges key by key, recursing into
// keys both sides share and keeping b's keys that a doesn't have;
// lists concatenate (a's items first); anything else resolves to a,
// which is what makes a scalar key present on both sides resolve to
// a's value — for job loading, the seed's value wins over the job's.
func merge(a, b any) any {
	am, aIsMap := a.(map[string]any)
	bm, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return mergeMaps(am, bm)
	}

	al, aIsList := a.([]any)
	bl, bIsList := b.([]any)
	if aIsList && bIsList {
		out := make([]any, 0, len(al)+len(bl))
		out = append(out, al...)
		out = append(out, bl...)
		return out
	}

	return a
}

func mergeMaps(a, b map[string]any) map[string]any {
	remaining := make(map[string]any, len(b))
	for k, v := range b {
		remaining[k] = v
	}

	merged := make(map[string]any, len(a)+len(b))
	for k, av := range a {
		bv := remaining[k]
		delete(remaining, k)
		merged[k] = merge(av, bv)
	}
	for k, v := range remaining {
		merged[k] = v
	}
	return merged
}
