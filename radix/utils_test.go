package radix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func Test_nextSegment(t *testing.T) {
	tests := []struct {
		pattern string
		want    segment
		err     error
	}{
		{"/users", segment{nType: static, end: 6}, nil},
		{"{id}", segment{nType: param, tail: '/', start: 0, end: 4}, nil},
		{"/users/{id}/posts", segment{nType: param, tail: '/', start: 7, end: 11}, nil},
		{"{file}.{ext}", segment{nType: param, tail: '.', start: 0, end: 6}, nil},
		{"{id:[0-9]+}", segment{nType: regex, regex: "^[0-9]+$", tail: '/', end: 11}, nil},
		{"{id:^[0-9]+$}-x", segment{nType: regex, regex: "^[0-9]+$", tail: '-', end: 13}, nil},
		{"{code:[a-z]{3}}", segment{nType: regex, regex: "^[a-z]{3}$", tail: '/', end: 15}, nil},
		{"{id:}", segment{nType: regex, tail: '/', end: 5}, nil},
		{"/files/*", segment{nType: catchAll, start: 7, end: 8}, nil},
		{"/files/*/x", segment{}, ErrWildcardNotLast},
		{"/{id", segment{}, ErrMissingCloseDelimiter},
		{"/{a}{b}", segment{}, ErrAdjacentParams},
	}

	for _, test := range tests {
		seg, err := nextSegment(test.pattern)

		if test.err != nil {
			assert.True(t, errors.Is(err, test.err), "%s: %v", test.pattern, err)
			continue
		}

		require.NoError(t, err, test.pattern)
		assert.Equal(t, test.want, seg, test.pattern)
	}
}

func Test_validatePattern(t *testing.T) {
	assert.NoError(t, validatePattern("/users/{id:[0-9]+}/posts/{post}"))
	assert.NoError(t, validatePattern("/static/*"))
	assert.NoError(t, validatePattern("/"))

	err := validatePattern("/users/{id:[0-9}/posts")
	assert.True(t, errors.Is(err, ErrInvalidRegex), err)

	assert.True(t, errors.Is(validatePattern("/users/{id}/*/x"), ErrWildcardNotLast))
}

func Test_anchor(t *testing.T) {
	assert.Equal(t, "", anchor(""))
	assert.Equal(t, "^[0-9]+$", anchor("[0-9]+"))
	assert.Equal(t, "^[0-9]+$", anchor("^[0-9]+"))
	assert.Equal(t, "^[0-9]+$", anchor("[0-9]+$"))
}

func TestPathKeys(t *testing.T) {
	tests := []struct {
		pattern string
		keys    []string
	}{
		{"/", nil},
		{"/users", nil},
		{"/users/{id}", []string{"id"}},
		{"/users/{id:[0-9]+}/books/{isbn}", []string{"id", "isbn"}},
		{"/files/{name}.{ext}", []string{"name", "ext"}},
		{"/static/*", []string{"*"}},
		{"/static/?*", []string{"*"}},
		{"/static/{filepath:*}", []string{"filepath"}},
		{"/static/{filepath}*", []string{"filepath"}},
		{"/{lang}/static/{filepath:*}", []string{"lang", "filepath"}},
		{"/codes/{code:[a-z]{3}}", []string{"code"}},
	}

	for _, test := range tests {
		assert.Equal(t, test.keys, PathKeys(test.pattern), test.pattern)
	}
}

func Test_normalizeWildcard(t *testing.T) {
	tests := map[string]string{
		"/static/*":                  "/static/*",
		"/static/{filepath:*}":       "/static/*",
		"/static/{filepath}*":        "/static/*",
		"/{lang}/{filepath:*}":       "/{lang}/*",
		"/users/{id}":                "/users/{id}",
		"/users/{id:[0-9]{2}}/{p:*}": "/users/{id:[0-9]{2}}/*",
	}

	for pattern, want := range tests {
		assert.Equal(t, want, normalizeWildcard(pattern), pattern)
	}
}

func Test_baseCatchAllPrefix(t *testing.T) {
	assert.Equal(t, "/static", baseCatchAllPrefix("/static/?*"))
	assert.Equal(t, "", baseCatchAllPrefix("/?*"))
	assert.Equal(t, "", baseCatchAllPrefix("/static/*"))
}

func Test_expandPattern(t *testing.T) {
	assert.Equal(t, []string{"/*"}, expandPattern("/?*"))
	assert.Equal(t, []string{"/static", "/static/*"}, expandPattern("/static/?*"))
	assert.Equal(t, []string{"/static/*"}, expandPattern("/static/{filepath:*}"))
	assert.Equal(t, []string{"/users/{id}"}, expandPattern("/users/{id}"))
}

func Test_longestCommonPrefix(t *testing.T) {
	assert.Equal(t, 0, longestCommonPrefix("", "/users"))
	assert.Equal(t, 0, longestCommonPrefix("/users", "users"))
	assert.Equal(t, 4, longestCommonPrefix("/rom", "/romane"))
	assert.Equal(t, 6, longestCommonPrefix("/roman", "/romanus"))

	// 'é' and 'è' share the first byte
	assert.Equal(t, 2, longestCommonPrefix("/é", "/è"))
}

func Test_slice(t *testing.T) {
	s := newSlice("/users/42/profile")

	assert.Equal(t, 17, s.len())
	assert.Equal(t, byte('/'), s.at(0))

	sub := s.from(7)
	assert.Equal(t, "42/profile", sub.String())
	assert.Equal(t, 2, sub.indexByte('/'))
	assert.Equal(t, -1, sub.indexByte('.'))
	assert.True(t, sub.hasPrefix("42"))
	assert.False(t, sub.hasPrefix("/users"))

	value := sub.sub(0, 2)
	assert.Equal(t, "42", value.String())
	assert.Equal(t, "profile", sub.from(3).String())
	assert.Equal(t, 0, sub.from(sub.len()).len())
}

func Test_staticIndex(t *testing.T) {
	var idx staticIndex

	get := &Route{Method: fasthttp.MethodGet}
	post := &Route{Method: fasthttp.MethodPost}
	wild := &Route{Method: MethodWild}

	assert.Nil(t, idx.get(fasthttp.MethodGet, "/path"))

	idx.put("/path", fasthttp.MethodGet, get)

	v, _ := idx.paths.Load("/path")
	assert.IsType(t, &singleMethod{}, v)
	assert.Same(t, get, idx.get(fasthttp.MethodGet, "/path"))
	assert.Nil(t, idx.get(fasthttp.MethodPost, "/path"))

	// A second method promotes the matcher
	idx.put("/path", fasthttp.MethodPost, post)

	v, _ = idx.paths.Load("/path")
	assert.IsType(t, multipleMethods{}, v)
	assert.Same(t, get, idx.get(fasthttp.MethodGet, "/path"))
	assert.Same(t, post, idx.get(fasthttp.MethodPost, "/path"))
	assert.Nil(t, idx.get(fasthttp.MethodPut, "/path"))

	idx.put("/path", MethodWild, wild)
	assert.Same(t, wild, idx.get(fasthttp.MethodPut, "/path"))
	assert.Same(t, get, idx.get(fasthttp.MethodGet, "/path"))
	assert.Nil(t, idx.get("", "/path"))

	idx.put("/any", MethodWild, wild)
	assert.Same(t, wild, idx.get(fasthttp.MethodDelete, "/any"))
	assert.Nil(t, idx.get("", "/any"))

	idx.reset()
	assert.Nil(t, idx.get(fasthttp.MethodGet, "/path"))
	assert.Nil(t, idx.get(fasthttp.MethodDelete, "/any"))
}

func Test_endpoints(t *testing.T) {
	n := new(node)
	assert.False(t, n.isLeaf())

	get := &Route{Method: fasthttp.MethodGet}
	n.setEndpoint(fasthttp.MethodGet, get)

	first := n.endpoints.Load()
	assert.True(t, n.isLeaf())

	n.setEndpoint(fasthttp.MethodPost, &Route{Method: fasthttp.MethodPost})

	// Published endpoints are never modified
	assert.Len(t, *first, 1)

	eps := n.endpoints.Load()
	assert.Equal(t, []string{fasthttp.MethodGet, fasthttp.MethodPost}, eps.methods(nil))
	assert.Same(t, get, eps.get(fasthttp.MethodGet))
	assert.Nil(t, eps.get(fasthttp.MethodPut))
}

func Test_matchContext(t *testing.T) {
	mctx := acquireMatchContext()
	defer releaseMatchContext(mctx)

	mctx.push("a")
	mctx.push("b")
	mctx.push("c")
	mctx.truncate(1)
	assert.Equal(t, []string{"a"}, mctx.values)

	assert.Equal(t, NotFound, mctx.missing().Status)

	mctx.methodNotAllowed(endpoints{fasthttp.MethodPost: nil, fasthttp.MethodGet: nil})
	mctx.methodNotAllowed(endpoints{fasthttp.MethodGet: nil})

	m := mctx.missing()
	assert.Equal(t, MethodNotAllowed, m.Status)
	assert.Equal(t, []string{fasthttp.MethodGet, fasthttp.MethodPost}, m.Allowed)

	route := &Route{Keys: []string{"id", "*"}}
	m = mctx.found(route)
	assert.Equal(t, Found, m.Status)
	assert.Equal(t, []Param{{Key: "id", Value: "a"}, {Key: "*", Value: ""}}, m.Params)

	value, ok := m.Value("id")
	assert.True(t, ok)
	assert.Equal(t, "a", value)

	_, ok = m.Value("missing")
	assert.False(t, ok)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "NotFound", NotFound.String())
	assert.Equal(t, "Found", Found.String())
	assert.Equal(t, "MethodNotAllowed", MethodNotAllowed.String())
}
