package router

import (
	"strings"

	"github.com/savsgio/gotils"
)

type optionalParam struct {
	// start of the param, including its leading slash if any
	start int
	// index of the '?' mark
	mark int
	// index of the closing brace
	end int
}

// getOptionalPaths returns all possible paths when the original path
// has optional params, e.g. /show/{name?}/edit => /show/edit and /show/{name}/edit
//
// An optional param is only omitted if all the following ones are omitted
// too, so /show/{name?}/{surname?} => /show, /show/{name} and /show/{name}/{surname}
func getOptionalPaths(path string) []string {
	var params []optionalParam

	for start := 0; ; {
		ps := strings.IndexByte(path[start:], '{')
		if ps < 0 {
			break
		}
		ps += start

		pe := closingBrace(path, ps)
		if pe < 0 {
			// the tree reports the malformed param
			break
		}

		name := path[ps+1 : pe]
		if idx := strings.IndexByte(name, ':'); idx >= 0 {
			name = name[:idx]
		}

		if strings.HasSuffix(name, "?") {
			p := optionalParam{start: ps, mark: ps + len(name), end: pe}
			if ps > 0 && path[ps-1] == '/' {
				p.start--
			}

			params = append(params, p)
		}

		start = pe + 1
	}

	if len(params) == 0 {
		return nil
	}

	paths := make([]string, 0, len(params)+1)
	b := new(strings.Builder)

	for kept := 0; kept <= len(params); kept++ {
		b.Reset()
		last := 0

		for i, p := range params {
			if i < kept {
				b.WriteString(path[last:p.mark])
				last = p.mark + 1 // remove '?'
			} else {
				b.WriteString(path[last:p.start])
				last = p.end + 1
			}
		}

		b.WriteString(path[last:])

		if p := b.String(); !gotils.StringSliceInclude(paths, p) {
			paths = append(paths, p)
		}
	}

	return paths
}

// closingBrace returns the index of the '}' closing the '{' at start,
// skipping the nested braces of a regexp, or -1.
func closingBrace(path string, start int) int {
	depth := 0

	for i := start; i < len(path); i++ {
		switch path[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// findFixedPath returns the lower-cased form of the path registered for
// the method, trying the toggled trailing slash too if RedirectTrailingSlash.
// It returns an empty string when there is no such route.
func (r *Router) findFixedPath(method, path string) string {
	fixed := strings.ToLower(path)

	if fixed != path && r.tree.Exists(method, fixed) {
		return fixed
	}

	if r.RedirectTrailingSlash {
		if fixed = toggleTrailingSlash(fixed); r.tree.Exists(method, fixed) {
			return fixed
		}
	}

	return ""
}
