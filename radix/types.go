package radix

import (
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/valyala/fasthttp"
)

type nodeType uint8

// Route is the value bound to a registered pattern and method.
type Route struct {
	Method  string
	Pattern string
	Handler fasthttp.RequestHandler

	// Keys are the parameter names declared by Pattern, in declaration order.
	Keys []string
}

type node struct {
	nType nodeType

	// first byte of the prefix, '{' or '*' for dynamic nodes
	label byte

	// byte that ends a param capture
	tail byte

	// static text consumed by the node, or the raw segment for dynamic ones
	prefix string

	regexSrc string
	rex      *regexp.Regexp

	endpoints atomic.Pointer[endpoints]

	// sorted by label within every group, see tailSort
	children [nodeTypes][]*node
}

type segment struct {
	nType nodeType
	regex string
	tail  byte
	start int
	end   int
}

// Tree is a routes storage.
type Tree struct {
	root   *node
	static staticIndex

	// StaticIndex enables the exact-match lookup table for routes
	// without params. Enabled by default.
	//
	// It's read by every Find, so set it before serving lookups.
	StaticIndex bool
}

type staticIndex struct {
	mu    sync.Mutex
	paths sync.Map // path -> methodMatcher
}
