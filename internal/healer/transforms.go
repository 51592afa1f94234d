package healer

// firstPass implements spec.md §4.5's endpoint-reversal-and-concatenation
// stage, preserving the direction of the first fragment.
func firstPass(fragments []Fragment) []Fragment {
	if len(fragments) == 0 {
		return nil
	}

	result := []Fragment{fragments[0]}
	// untouched is true exactly when result's last entry is still,
	// unmodified, fragments[i-1] — the condition spec.md's step 2 guards
	// the in-place reversal with.
	untouched := true

	for i := 1; i < len(fragments); i++ {
		f := fragments[i]
		p := result[len(result)-1]

		if untouched && (sameNode(f.first(), p.first()) || sameNode(f.last(), p.first())) {
			p = p.reversed()
			result[len(result)-1] = p
		}

		switch {
		case sameNode(p.last(), f.first()):
			result[len(result)-1] = appendDroppingFirst(p, f)
			untouched = false
		case sameNode(p.last(), f.last()):
			result[len(result)-1] = appendDroppingFirst(p, f.reversed())
			untouched = false
		default:
			result = append(result, f)
			untouched = true
		}
	}

	return result
}

// appendDroppingFirst appends other to p, dropping other's first node
// (the endpoint known to duplicate p's last node).
func appendDroppingFirst(p, other Fragment) Fragment {
	out := make(Fragment, 0, len(p)+len(other)-1)
	out = append(out, p...)
	out = append(out, other[1:]...)
	return out
}

// sortWays greedily reorders fragments by nearest endpoint distance: move
// the first fragment into the result, then repeatedly move whichever
// remaining fragment has minimum edgeDist to the last result entry.
//
// bestDist starts at -1 and the bestDist < 0 check makes the first
// remaining candidate always win its first comparison, giving the same
// picks as the source's -1 fold initializer.
func sortWays(fragments []Fragment) []Fragment {
	if len(fragments) == 0 {
		return nil
	}

	remaining := make([]Fragment, len(fragments))
	copy(remaining, fragments)

	result := make([]Fragment, 0, len(fragments))
	result = append(result, remaining[0])
	remaining = remaining[1:]

	for len(remaining) > 0 {
		last := result[len(result)-1]
		bestIdx := 0
		bestDist := -1.0
		for i, f := range remaining {
			d := edgeDist(last, f)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		result = append(result, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return result
}

// joinWays closes haversine-tolerance gaps between consecutive fragments.
func joinWays(fragments []Fragment, tolerance float64) []Fragment {
	if len(fragments) == 0 {
		return nil
	}

	result := []Fragment{fragments[0]}

	for i := 1; i < len(fragments); i++ {
		f := fragments[i]
		last := result[len(result)-1]

		switch {
		case haversine(last.last(), f.first()) < tolerance:
			result[len(result)-1] = append(append(Fragment{}, last...), f...)
		case haversine(last.last(), f.last()) < tolerance:
			result[len(result)-1] = append(append(Fragment{}, last...), f.reversed()...)
		case haversine(last.first(), f.first()) < tolerance:
			rl := last.reversed()
			result[len(result)-1] = append(append(Fragment{}, rl...), f...)
		case haversine(last.first(), f.last()) < tolerance:
			rl := last.reversed()
			result[len(result)-1] = append(append(Fragment{}, rl...), f.reversed()...)
		default:
			result = append(result, f)
		}
	}

	return result
}
