package identifier

import "fmt"

// Dedupe sanitizes an ordered list of raw labels and makes the results
// pairwise unique. The output has the same length and order as the input.
//
// The first occurrence of an identifier is kept unchanged. A repeat becomes
// "<identifier>_<n>", with n starting at 2 and increasing per base. Every
// identifier emitted so far is reserved, so a suffixed candidate that would
// clash with a label already present (e.g. a literal "x_2" column) is skipped
// and the next n is probed instead.
//
// EXAMPLE:
//   ["Data", "data", "Data_2", "Data"] -> ["data", "data_2", "data_2_2", "data_3"]
func Dedupe(labels []string) []string {
	out := make([]string, len(labels))
	used := make(map[string]bool, len(labels))
	counts := make(map[string]int, len(labels))

	for i, label := range labels {
		id := Sanitize(label, i)

		if !used[id] {
			used[id] = true
			counts[id] = 1
			out[i] = id
			continue
		}

		n := counts[id]
		if n < 1 {
			n = 1
		}
		candidate := id
		for used[candidate] {
			n++
			candidate = fmt.Sprintf("%s_%d", id, n)
		}

		counts[id] = n
		used[candidate] = true
		out[i] = candidate
	}

	return out
}
