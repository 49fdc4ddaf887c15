package radix

// methodMatcher resolves the route of a static path by method.
// Implementations are immutable once stored in the index.
type methodMatcher interface {
	get(method string) *Route
	put(method string, route *Route) methodMatcher
}

// singleMethod covers the common case of a path with only one method.
type singleMethod struct {
	method string
	route  *Route
}

func (m *singleMethod) get(method string) *Route {
	if m.method == method || (m.method == MethodWild && method != "") {
		return m.route
	}

	return nil
}

func (m *singleMethod) put(method string, route *Route) methodMatcher {
	if m.method == method {
		return &singleMethod{method: method, route: route}
	}

	return multipleMethods{m.method: m.route, method: route}
}

type multipleMethods endpoints

func (m multipleMethods) get(method string) *Route {
	return endpoints(m).get(method)
}

func (m multipleMethods) put(method string, route *Route) methodMatcher {
	mm := make(multipleMethods, len(m)+1)
	for k, v := range m {
		mm[k] = v
	}

	mm[method] = route

	return mm
}

func (idx *staticIndex) put(path, method string, route *Route) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var matcher methodMatcher = &singleMethod{method: method, route: route}

	if v, ok := idx.paths.Load(path); ok {
		matcher = v.(methodMatcher).put(method, route)
	}

	idx.paths.Store(path, matcher)
}

func (idx *staticIndex) get(method, path string) *Route {
	v, ok := idx.paths.Load(path)
	if !ok {
		return nil
	}

	return v.(methodMatcher).get(method)
}

func (idx *staticIndex) reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.paths.Range(func(key, _ interface{}) bool {
		idx.paths.Delete(key)
		return true
	})
}
