// Package chunk cuts long input into pieces a remote backend accepts.
package chunk

// MaxWords is the word limit of one nara request.
const MaxWords = 300

// Split slices s into chunks of at most max space/newline separated words
// without decoding UTF-8 runes. The chunks are substrings of s; joining them
// with single separators restores s.
func Split(s string, max int) []string {
	if max < 1 {
		return []string{s}
	}

	// Capacity hint: assume "avg 5-byte word + 1 separator".
	hint := len(s)/(max*6) + 1
	res := make([]string, 0, hint)

	start, words := 0, 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == ' ' || b == '\n' {
			words++
			if words == max {
				res = append(res, s[start:i])
				start, words = i+1, 0
			}
		}
	}
	// trailing slice (never empty because start ≤ len(s))
	res = append(res, s[start:])
	return res
}
