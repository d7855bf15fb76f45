package match

// Closest returns the candidate with the smallest edit distance to name,
// provided that distance is at most maxDist and strictly smaller than the
// length of name (so very short inputs do not match everything).
// Ties are broken by candidate order. Returns "" when nothing qualifies.
func Closest(name string, candidates []string, maxDist int) string {
	best := ""
	bestDist := maxDist + 1
	limit := len([]rune(name))

	for _, c := range candidates {
		if c == name {
			return c
		}

		d := Levenshtein(name, c)
		if d < bestDist && d < limit {
			best = c
			bestDist = d
		}
	}

	return best
}
