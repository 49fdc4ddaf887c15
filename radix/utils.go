package radix

import "strings"

func min(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

// longestCommonPrefix finds the length of the shared prefix of two strings.
// Nodes branch on bytes, so the prefix may end inside a multi-byte rune.
func longestCommonPrefix(a, b string) int {
	max := min(len(a), len(b))

	for i := 0; i < max; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	return max
}

// PathKeys returns the param names declared by the pattern, in order.
// A catch-all is named '*' unless written as {name:*} or {name}*.
func PathKeys(pattern string) []string {
	var keys []string

	search := pattern

	for len(search) > 0 {
		seg, err := nextSegment(search)
		if err != nil || seg.nType == static {
			break
		}

		if seg.nType == catchAll {
			keys = append(keys, "*")
			break
		}

		name := search[seg.start+1 : seg.end-1]
		if idx := strings.IndexByte(name, ':'); idx >= 0 {
			name = name[:idx]
		}

		keys = append(keys, name)
		search = search[seg.end:]

		if search == "*" {
			// Named catch-all: {name}*
			break
		}
	}

	return keys
}

// normalizeWildcard rewrites the named catch-all forms {name:*} and
// {name}* at the end of the pattern into a bare '*'.
func normalizeWildcard(pattern string) string {
	end := -1

	switch {
	case strings.HasSuffix(pattern, ":*}"):
		end = len(pattern) - 1
	case strings.HasSuffix(pattern, "}*"):
		end = len(pattern) - 2
	default:
		return pattern
	}

	cc := 0
	for i := end; i >= 0; i-- {
		switch pattern[i] {
		case '}':
			cc++
		case '{':
			cc--
			if cc == 0 {
				return pattern[:i] + "*"
			}
		}
	}

	return pattern
}

// baseCatchAllPrefix returns the base path of a /?* pattern,
// e.g. /static/?* => /static
func baseCatchAllPrefix(pattern string) string {
	if i := strings.Index(pattern, baseCatchAll); i > 0 {
		return pattern[:i]
	}

	return ""
}
