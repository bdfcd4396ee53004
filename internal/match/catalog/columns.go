package catalog

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey folds a column name: lower case, anything but letters and
// digits to single spaces ("Product_Name " -> "product name").
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the record key for a wanted column. want may list
// alternatives separated by '|' ("manufacturer|brand"). Exact names win,
// then normalized equality, then the longest containment either way.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	norm := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			norm = append(norm, n)
		}
	}

	bestKey, bestScore := "", 0
	for k := range rec {
		nk := normHeaderKey(k)
		if nk == "" {
			continue
		}
		score := 0
		for _, n := range norm {
			if nk == n {
				return k
			}
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				score = max(score, len(n))
			}
		}
		// ties go to the lexically smaller key so map order never decides
		if score > bestScore || (score == bestScore && score > 0 && k < bestKey) {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

func field(rec map[string]string, want string) string {
	if k := resolveKey(rec, want); k != "" {
		return strings.TrimSpace(rec[k])
	}
	return ""
}
