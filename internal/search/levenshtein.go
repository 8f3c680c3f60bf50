package search

// Distance returns the Levenshtein distance between a and b counted in code
// points: the minimum number of single-rune insertions, deletions or
// substitutions turning one into the other.
//
// A single rolling row sized to the shorter string is kept, so memory is
// O(min(m, n)) and time O(m*n).
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	// rb is now the shorter side.
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range ra {
		diag := row[0]
		row[0] = i + 1
		for j, cb := range rb {
			up := row[j+1]
			cost := 1
			if ca == cb {
				cost = 0
			}
			row[j+1] = min(up+1, row[j]+1, diag+cost)
			diag = up
		}
	}

	return row[len(rb)]
}
