package radix

import (
	"sort"
	"sync"

	"github.com/savsgio/gotils"
)

// Status is the outcome of a lookup.
type Status uint8

const (
	// NotFound means no registered pattern matches the path.
	NotFound Status = iota

	// Found means a route is registered for the path and the method.
	Found

	// MethodNotAllowed means the path matches, but not for the requested method.
	MethodNotAllowed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "Found"
	case MethodNotAllowed:
		return "MethodNotAllowed"
	default:
		return "NotFound"
	}
}

// Param is a path param captured by a lookup.
type Param struct {
	Key   string
	Value string
}

// Match is the result of Tree.Find.
type Match struct {
	Status Status
	Route  *Route

	// Params zips Route.Keys with the captured values.
	Params []Param

	// Allowed holds the sorted methods registered for the path
	// when Status is MethodNotAllowed.
	Allowed []string
}

// Value returns the value of the param with the given key.
func (m *Match) Value(key string) (string, bool) {
	for i := range m.Params {
		if m.Params[i].Key == key {
			return m.Params[i].Value, true
		}
	}

	return "", false
}

// matchContext holds the state of a single lookup.
type matchContext struct {
	values     []string
	allowed    []string
	notAllowed bool
}

var matchContextPool = sync.Pool{
	New: func() interface{} {
		return &matchContext{
			values:  make([]string, 0, 8),
			allowed: make([]string, 0, 4),
		}
	},
}

func acquireMatchContext() *matchContext {
	return matchContextPool.Get().(*matchContext)
}

func releaseMatchContext(mctx *matchContext) {
	mctx.reset()
	matchContextPool.Put(mctx)
}

func (mctx *matchContext) reset() {
	for i := range mctx.values {
		mctx.values[i] = ""
	}

	mctx.values = mctx.values[:0]
	mctx.allowed = mctx.allowed[:0]
	mctx.notAllowed = false
}

func (mctx *matchContext) push(value string) {
	mctx.values = append(mctx.values, value)
}

// truncate drops the values captured after the given depth.
func (mctx *matchContext) truncate(depth int) {
	mctx.values = mctx.values[:depth]
}

// methodNotAllowed flags that the path was matched by a node without
// an endpoint for the requested method.
func (mctx *matchContext) methodNotAllowed(eps endpoints) {
	mctx.notAllowed = true

	for method := range eps {
		if !gotils.StringSliceInclude(mctx.allowed, method) {
			mctx.allowed = append(mctx.allowed, method)
		}
	}
}

func (mctx *matchContext) found(route *Route) Match {
	return Match{
		Status: Found,
		Route:  route,
		Params: zipParams(route.Keys, mctx.values),
	}
}

func (mctx *matchContext) missing() Match {
	if !mctx.notAllowed {
		return Match{Status: NotFound}
	}

	return Match{
		Status:  MethodNotAllowed,
		Allowed: mctx.allowedMethods(),
	}
}

// allowedMethods returns a sorted copy of the collected methods.
func (mctx *matchContext) allowedMethods() []string {
	if len(mctx.allowed) == 0 {
		return nil
	}

	allowed := make([]string, len(mctx.allowed))
	copy(allowed, mctx.allowed)
	sort.Strings(allowed)

	return allowed
}

// zipParams pairs keys with values. Keys without a captured value,
// like the catch-all of an empty remainder, get an empty value.
func zipParams(keys, values []string) []Param {
	if len(keys) == 0 {
		return nil
	}

	params := make([]Param, len(keys))
	for i, key := range keys {
		params[i].Key = key

		if i < len(values) {
			params[i].Value = values[i]
		}
	}

	return params
}
