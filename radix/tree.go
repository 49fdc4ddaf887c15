package radix

import (
	"strings"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// New returns an empty routes storage.
func New() *Tree {
	return &Tree{
		root:        new(node),
		StaticIndex: true,
	}
}

// Insert adds a route with the given handler to the method and pattern.
// A malformed pattern is rejected with a *PatternError and leaves the
// tree untouched.
//
// Registering the same method and pattern again replaces the handler.
// Endpoints and the static index can be updated while lookups are
// running, but new patterns change the tree structure, so they must
// not be inserted concurrently with lookups.
//
// WARNING: Not concurrency-safe!
func (t *Tree) Insert(method, pattern string, handler fasthttp.RequestHandler) error {
	switch {
	case method == "":
		return patternError(pattern, ErrEmptyMethod)
	case handler == nil:
		return patternError(pattern, ErrNilHandler)
	}

	if err := ValidatePattern(pattern); err != nil {
		return err
	}

	patterns := expandPattern(pattern)

	route := &Route{
		Method:  method,
		Pattern: pattern,
		Handler: handler,
		Keys:    PathKeys(pattern),
	}

	for _, p := range patterns {
		if isStatic(p) {
			t.static.put(p, method, route)
		}

		if _, err := t.root.insertRoute(method, p, route); err != nil {
			return patternError(pattern, err)
		}
	}

	return nil
}

// ValidatePattern reports with a *PatternError whether the pattern
// would be rejected by Insert, without modifying any tree.
func ValidatePattern(pattern string) error {
	if len(pattern) == 0 || pattern[0] != '/' {
		return patternError(pattern, ErrInvalidPath)
	}

	for _, p := range expandPattern(pattern) {
		if err := validatePattern(p); err != nil {
			return patternError(pattern, err)
		}
	}

	return nil
}

// Find returns the route registered for the method that best matches
// the path, with its params.
//
// When there is no route, the returned Status tells whether the path
// is unknown (NotFound) or registered for other methods (MethodNotAllowed).
func (t *Tree) Find(method, path string) Match {
	if t.StaticIndex {
		if route := t.static.get(method, path); route != nil {
			return Match{
				Status: Found,
				Route:  route,
				Params: zipParams(route.Keys, nil),
			}
		}
	}

	mctx := acquireMatchContext()

	var m Match

	if route := t.root.findRoute(mctx, method, newSlice(path)); route != nil {
		m = mctx.found(route)
	} else {
		m = mctx.missing()
	}

	releaseMatchContext(mctx)

	return m
}

// Exists reports whether a route is registered for the method and path.
func (t *Tree) Exists(method, path string) bool {
	return t.Find(method, path).Status == Found
}

// AllowedMethods returns the sorted methods registered for the path.
func (t *Tree) AllowedMethods(path string) []string {
	mctx := acquireMatchContext()

	// An empty method never matches, so every candidate branch is visited
	t.root.findRoute(mctx, "", newSlice(path))
	allowed := mctx.allowedMethods()

	releaseMatchContext(mctx)

	return allowed
}

// Destroy releases all the routes of the tree, leaving it empty.
//
// WARNING: Not concurrency-safe!
func (t *Tree) Destroy() {
	t.root.destroy()
	t.root = new(node)
	t.static.reset()
}

// String returns a printable representation of the tree.
func (t *Tree) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i := range t.root.children {
		for _, child := range t.root.children[i] {
			child.writeTo(buf, 0)
		}
	}

	return buf.String()
}

// expandPattern returns the patterns to insert in the tree for the
// given one, e.g. /static/?* => /static and /static/*
func expandPattern(pattern string) []string {
	if pattern == baseCatchAll {
		return []string{"/*"}
	}

	if base := baseCatchAllPrefix(pattern); base != "" {
		return []string{base, normalizeWildcard(base + "/" + pattern[len(base)+2:])}
	}

	return []string{normalizeWildcard(pattern)}
}

func isStatic(pattern string) bool {
	return strings.IndexAny(pattern, "{*") < 0
}
