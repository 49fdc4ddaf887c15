package radix

import (
	"fmt"
	"regexp"
	"strings"
)

// nextSegment returns the next segment details from a pattern:
// node type, regexp source, param tail byte, param starting and ending index.
func nextSegment(pattern string) (segment, error) {
	ps := strings.IndexByte(pattern, '{')
	ws := strings.IndexByte(pattern, '*')

	if ps < 0 && ws < 0 {
		// All static
		return segment{nType: static, end: len(pattern)}, nil
	}

	if ws >= 0 && (ps < 0 || ws < ps) {
		// Catch-all as finale
		if ws != len(pattern)-1 {
			return segment{}, ErrWildcardNotLast
		}

		return segment{nType: catchAll, start: ws, end: len(pattern)}, nil
	}

	seg := segment{nType: param, tail: '/', start: ps}

	// Read to the closing '}' taking into account the nested braces of a regexp
	cc := 0
	pe := ps

walk:
	for i := ps; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			cc++
		case '}':
			cc--
			if cc == 0 {
				pe = i
				break walk
			}
		}
	}

	if pe == ps {
		return segment{}, ErrMissingCloseDelimiter
	}

	key := pattern[ps+1 : pe]
	pe++

	if pe < len(pattern) {
		seg.tail = pattern[pe]

		if seg.tail == '{' {
			return segment{}, ErrAdjacentParams
		}
	}

	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		seg.nType = regex
		seg.regex = anchor(key[idx+1:])
	}

	seg.end = pe

	return seg, nil
}

// anchor wraps a non-empty regexp with ^ and $ so it must match the whole capture.
func anchor(rexpat string) string {
	if rexpat == "" {
		return rexpat
	}

	if rexpat[0] != '^' {
		rexpat = "^" + rexpat
	}

	if rexpat[len(rexpat)-1] != '$' {
		rexpat += "$"
	}

	return rexpat
}

// validatePattern checks every segment of the pattern, so an invalid
// pattern is rejected before the tree is modified.
func validatePattern(pattern string) error {
	search := pattern

	for len(search) > 0 {
		seg, err := nextSegment(search)
		if err != nil {
			return err
		}

		switch seg.nType {
		case static, catchAll:
			return nil
		case regex:
			if seg.regex != "" {
				if _, err := regexp.Compile(seg.regex); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidRegex, err)
				}
			}
		}

		search = search[seg.end:]
	}

	return nil
}
