package radix

import "sort"

// endpoints maps a HTTP method to its route. A published map is never
// modified, setEndpoint swaps in a new copy instead.
type endpoints map[string]*Route

func (eps endpoints) get(method string) *Route {
	if route := eps[method]; route != nil {
		return route
	}

	if method == "" {
		return nil
	}

	return eps[MethodWild]
}

// methods appends the sorted methods of eps to dst.
func (eps endpoints) methods(dst []string) []string {
	start := len(dst)

	for method := range eps {
		dst = append(dst, method)
	}

	sort.Strings(dst[start:])

	return dst
}

func (n *node) isLeaf() bool {
	return n.endpoints.Load() != nil
}

// setEndpoint binds the route to the method, replacing any previous binding.
func (n *node) setEndpoint(method string, route *Route) {
	var eps endpoints

	if old := n.endpoints.Load(); old != nil {
		eps = make(endpoints, len(*old)+1)
		for m, r := range *old {
			eps[m] = r
		}
	} else {
		eps = make(endpoints, 1)
	}

	eps[method] = route
	n.endpoints.Store(&eps)
}
