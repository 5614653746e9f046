package history

import (
	"fmt"
	"strings"
)

// Lines computes a line-oriented change script from a to b: unified-style
// hunks with zero context, "-" for lines only in a, "+" for lines only in b.
// Identical inputs yield an empty script. Swapping a and b inverts the sense
// of every hunk.
func Lines(a, b string) []string {
	if a == b {
		return nil
	}
	al := splitLines(a)
	bl := splitLines(b)

	// Longest common subsequence table over lines.
	m, n := len(al), len(bl)
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if al[i] == bl[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var out []string
	var del, add []string
	i, j := 0, 0
	hunkStart := func() (int, int) { return i - len(del), j - len(add) }
	flush := func() {
		if len(del) == 0 && len(add) == 0 {
			return
		}
		ai, bj := hunkStart()
		out = append(out, fmt.Sprintf("@@ -%d,%d +%d,%d @@", ai+1, len(del), bj+1, len(add)))
		for _, l := range del {
			out = append(out, "-"+l)
		}
		for _, l := range add {
			out = append(out, "+"+l)
		}
		del, add = nil, nil
	}

	for i < m && j < n {
		switch {
		case al[i] == bl[j]:
			flush()
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			del = append(del, al[i])
			i++
		default:
			add = append(add, bl[j])
			j++
		}
	}
	for i < m {
		del = append(del, al[i])
		i++
	}
	for j < n {
		add = append(add, bl[j])
		j++
	}
	flush()
	return out
}

// splitLines splits text into lines without terminators. A trailing newline
// does not produce a phantom empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
