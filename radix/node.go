package radix

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/valyala/bytebufferpool"
)

func (t nodeType) String() string {
	switch t {
	case static:
		return "static"
	case regex:
		return "regexp"
	case param:
		return "param"
	default:
		return "catch-all"
	}
}

// greedy reports whether the node captures up to the next '/',
// such nodes are tried after the ones with a custom tail.
func (n *node) greedy() bool {
	return n.nType > static && n.tail == '/'
}

// insertRoute adds the route to the tree under the given pattern
// and returns the node holding its endpoint.
//
// WARNING: Not concurrency-safe!
func (n *node) insertRoute(method, pattern string, route *Route) (*node, error) {
	var parent *node

	search := pattern

	for {
		// Key exhaustion, so sets the endpoint on the current node
		if len(search) == 0 {
			n.setEndpoint(method, route)

			return n, nil
		}

		// The next edge is a param, regexp or catch-all one, so gets its tail
		label := search[0]

		var seg segment
		if label == '{' || label == '*' {
			var err error

			if seg, err = nextSegment(search); err != nil {
				return nil, err
			}
		}

		parent = n
		n = n.getEdge(seg.nType, label, seg.tail, seg.regex)

		if n == nil {
			// No edge, creates one with the remaining pattern
			child := &node{label: label, tail: seg.tail, prefix: search}

			hn, err := parent.addChild(child, search)
			if err != nil {
				return nil, err
			}

			hn.setEndpoint(method, route)

			return hn, nil
		}

		if n.nType > static {
			// Dynamic edges are shared by all patterns with the same shape,
			// so skips the segment and continues
			search = search[seg.end:]

			continue
		}

		i := longestCommonPrefix(search, n.prefix)
		if i == len(n.prefix) {
			// The edge is fully consumed, keeps searching
			search = search[i:]

			continue
		}

		// Splits edge because has the same prefix
		child := &node{nType: static, prefix: search[:i]}
		parent.replaceChild(search[0], seg.tail, child)

		// Restores the existing node below the split
		n.label = n.prefix[i]
		n.prefix = n.prefix[i:]

		if _, err := child.addChild(n, n.prefix); err != nil {
			return nil, err
		}

		search = search[i:]

		if len(search) == 0 {
			// The new pattern is a subset of the existing one
			child.setEndpoint(method, route)

			return child, nil
		}

		subchild := &node{nType: static, label: search[0], prefix: search}

		hn, err := child.addChild(subchild, search)
		if err != nil {
			return nil, err
		}

		hn.setEndpoint(method, route)

		return hn, nil
	}
}

// addChild appends the child to the node using the search as trie key.
// The static, param, regexp and catch-all segments of the search are
// split into individual nodes, so it's called recursively until every
// segment is added. It returns the node of the last segment.
func (n *node) addChild(child *node, search string) (*node, error) {
	hn := child

	seg, err := nextSegment(search)
	if err != nil {
		return nil, err
	}

	switch {
	case seg.nType == static:
		// The search is all static

	case seg.start == 0:
		// The search starts with a dynamic segment
		child.nType = seg.nType
		child.tail = seg.tail
		child.prefix = search[:seg.end]

		if seg.nType == regex && seg.regex != "" {
			rex, err := regexp.Compile(seg.regex)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
			}

			child.regexSrc = seg.regex
			child.rex = rex
		}

		if seg.end != len(search) {
			// Adds a static edge for the remaining part,
			// adjacent params are not allowed so it's always static
			search = search[seg.end:]

			nn := &node{nType: static, label: search[0], prefix: search}
			if hn, err = child.addChild(nn, search); err != nil {
				return nil, err
			}
		}

	default:
		// The search starts with a static segment before the dynamic one
		child.nType = static
		child.prefix = search[:seg.start]
		child.regexSrc = ""
		child.rex = nil

		search = search[seg.start:]

		nn := &node{nType: seg.nType, label: search[0], tail: seg.tail}
		if hn, err = child.addChild(nn, search); err != nil {
			return nil, err
		}
	}

	n.children[child.nType] = append(n.children[child.nType], child)
	tailSort(n.children[child.nType])

	return hn, nil
}

func (n *node) replaceChild(label, tail byte, child *node) {
	nds := n.children[child.nType]

	for i := range nds {
		if nds[i].label == label && nds[i].tail == tail {
			child.label = label
			child.tail = tail
			nds[i] = child

			return
		}
	}

	panic("radix: replacing missing child")
}

func (n *node) getEdge(nType nodeType, label, tail byte, rexpat string) *node {
	for _, nd := range n.children[nType] {
		if nd.label != label || nd.tail != tail {
			continue
		}

		if nType == regex && nd.regexSrc != rexpat {
			continue
		}

		return nd
	}

	return nil
}

// findEdge looks up a static child by the first byte of its prefix.
func findEdge(nds []*node, label byte) *node {
	i, j := 0, len(nds)-1

	for i <= j {
		idx := i + (j-i)/2

		switch {
		case label > nds[idx].label:
			i = idx + 1
		case label < nds[idx].label:
			j = idx - 1
		default:
			return nds[idx]
		}
	}

	return nil
}

// findRoute walks the child groups in priority order: static, regexp,
// param and catch-all. It backtracks to the next candidate when a deeper
// match fails, dropping the values captured on the failed branch.
func (n *node) findRoute(mctx *matchContext, method string, path slice) *Route {
	for t := range n.children {
		nds := n.children[t]
		if len(nds) == 0 {
			continue
		}

		var xn *node

		xsearch := path
		depth := len(mctx.values)

		switch nodeType(t) {
		case static:
			var label byte
			if path.len() > 0 {
				label = path.at(0)
			}

			xn = findEdge(nds, label)
			if xn == nil || !xsearch.hasPrefix(xn.prefix) {
				continue
			}

			xsearch = xsearch.from(len(xn.prefix))

		case regex, param:
			if route := findDynamic(nds, mctx, method, path); route != nil {
				return route
			}

			continue

		default:
			// The catch-all captures the remaining path as is
			if xsearch.len() > 0 {
				mctx.push(xsearch.String())
			}

			xn = nds[0]
			xsearch = xsearch.from(xsearch.len())
		}

		if route := xn.match(mctx, method, xsearch); route != nil {
			return route
		}

		mctx.truncate(depth)
	}

	return nil
}

// findDynamic tries every param or regexp sibling in order.
func findDynamic(nds []*node, mctx *matchContext, method string, path slice) *Route {
	// Empty param values never match
	if path.len() == 0 {
		return nil
	}

	for _, xn := range nds {
		p := path.indexByte(xn.tail)

		if p < 0 {
			if xn.tail != '/' {
				continue
			}

			p = path.len()
		}

		value := path.sub(0, p)

		if xn.rex != nil {
			if !xn.rex.MatchString(value.String()) {
				continue
			}
		} else if value.indexByte('/') >= 0 {
			// Avoids a match across path segments
			continue
		}

		depth := len(mctx.values)
		mctx.push(value.String())

		if route := xn.match(mctx, method, path.from(p)); route != nil {
			return route
		}

		mctx.truncate(depth)
	}

	return nil
}

// match returns the route of the node for the method if the path is
// exhausted, otherwise it keeps searching below the node.
func (n *node) match(mctx *matchContext, method string, path slice) *Route {
	if path.len() == 0 {
		if eps := n.endpoints.Load(); eps != nil {
			if route := eps.get(method); route != nil {
				return route
			}

			// The path is found, but without the requested method.
			// Keeps searching, another branch could have it.
			mctx.methodNotAllowed(*eps)
		}
	}

	return n.findRoute(mctx, method, path)
}

// tailSort sorts the nodes by label, moving the greedy ones to the end.
func tailSort(nds []*node) {
	if len(nds) < 2 {
		return
	}

	sort.SliceStable(nds, func(i, j int) bool {
		gi, gj := nds[i].greedy(), nds[j].greedy()
		if gi != gj {
			return gj
		}

		return nds[i].label < nds[j].label
	})
}

// destroy releases the children and endpoints of the node recursively.
func (n *node) destroy() {
	for t := range n.children {
		nds := n.children[t]

		for i := range nds {
			nds[i].destroy()
			nds[i] = nil
		}

		n.children[t] = nil
	}

	n.endpoints.Store(nil)
	n.rex = nil
}

func (n *node) writeTo(buf *bytebufferpool.ByteBuffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(n.prefix)
	buf.WriteString(" {type: ")
	buf.WriteString(n.nType.String())

	if n.nType == regex || n.nType == param {
		buf.WriteString(", tail: '")
		buf.WriteByte(n.tail)
		buf.WriteString("'")
	}

	if eps := n.endpoints.Load(); eps != nil {
		buf.WriteString(", methods: [")
		buf.WriteString(strings.Join(eps.methods(nil), " "))
		buf.WriteString("]")
	}

	buf.WriteString("}\n")

	for t := range n.children {
		for _, child := range n.children[t] {
			child.writeTo(buf, depth+1)
		}
	}
}
