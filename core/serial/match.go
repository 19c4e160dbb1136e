package serial

// Similarity returns the share of positions at which a and b hold the same
// character, in steps of 0.1. Positions missing from either input count as
// mismatches.
func Similarity(a, b Number) float64 {
	matches := 0
	for i := 0; i < Length; i++ {
		if i < len(a) && i < len(b) && a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / Length
}

// BestMatch returns the candidate most similar to query along with its score.
// Ties keep the earliest candidate. ok is false when candidates is empty.
func BestMatch(query Number, candidates []Number) (best Number, score float64, ok bool) {
	for _, c := range candidates {
		s := Similarity(query, c)
		if !ok || s > score {
			best, score, ok = c, s, true
		}
	}
	return best, score, ok
}
