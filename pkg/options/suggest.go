package options

// suggest returns the closest known option name, or "" when nothing is close
// enough to be a plausible typo.
func suggest(name string) string {
	if name == "" {
		return ""
	}
	best := ""
	bestDist := 3
	for _, spec := range specs {
		d := distance(name, spec.Name)
		if d < bestDist {
			best, bestDist = spec.Name, d
		}
	}
	if best == "" {
		if spec, ok := byCamel[name]; ok {
			return spec.Name
		}
	}
	return best
}

func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
