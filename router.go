package router

import (
	"fmt"
	"strings"

	"github.com/fasthttp/chirouter/radix"
	"github.com/rs/zerolog"
	"github.com/savsgio/gotils"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// MethodWild wild HTTP method
const MethodWild = radix.MethodWild

var (
	questionMark = byte('?')

	// MatchedRoutePathParam is the param name under which the path of the matched
	// route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", gotils.RandBytes(make([]byte, 15)))
)

// New returns a new initialized Router.
// Path auto-correction, including trailing slashes, is enabled by default.
func New() *Router {
	return &Router{
		tree:                   radix.New(),
		registeredPaths:        make(map[string][]string),
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		Logger:                 zerolog.Nop(),
	}
}

// Group returns a new group.
// Path auto-correction, including trailing slashes, is enabled by default.
func (r *Router) Group(path string) *Group {
	validateGroupPath(path)

	if path == "/" {
		path = ""
	}

	return &Group{
		router: r,
		prefix: path,
	}
}

func (r *Router) saveMatchedRoutePath(path string, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRoutePathParam, path)
		handler(ctx)
	}
}

// GET is a shortcut for router.Handle(fasthttp.MethodGet, path, handler)
func (r *Router) GET(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for router.Handle(fasthttp.MethodHead, path, handler)
func (r *Router) HEAD(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodHead, path, handler)
}

// POST is a shortcut for router.Handle(fasthttp.MethodPost, path, handler)
func (r *Router) POST(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for router.Handle(fasthttp.MethodPut, path, handler)
func (r *Router) PUT(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for router.Handle(fasthttp.MethodPatch, path, handler)
func (r *Router) PATCH(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for router.Handle(fasthttp.MethodDelete, path, handler)
func (r *Router) DELETE(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodDelete, path, handler)
}

// CONNECT is a shortcut for router.Handle(fasthttp.MethodConnect, path, handler)
func (r *Router) CONNECT(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodConnect, path, handler)
}

// OPTIONS is a shortcut for router.Handle(fasthttp.MethodOptions, path, handler)
func (r *Router) OPTIONS(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodOptions, path, handler)
}

// TRACE is a shortcut for router.Handle(fasthttp.MethodTrace, path, handler)
func (r *Router) TRACE(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodTrace, path, handler)
}

// ANY is a shortcut for router.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (r *Router) ANY(path string, handler fasthttp.RequestHandler) {
	r.Handle(MethodWild, path, handler)
}

// Handle registers a new request handler with the given path and method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
//
// It panics with a *radix.PatternError if the path is malformed.
func (r *Router) Handle(method, path string, handler fasthttp.RequestHandler) {
	validateRoute(method, path, handler)

	if r.SaveMatchedRoutePath {
		handler = r.saveMatchedRoutePath(path, handler)
	}

	handler = chain(r.middleware, handler)

	optionalPaths := getOptionalPaths(path)

	// if not has optional paths, adds the original
	if len(optionalPaths) == 0 {
		optionalPaths = append(optionalPaths, path)
	}

	for i, p := range optionalPaths {
		if p == "" {
			optionalPaths[i] = "/"
		}
	}

	// all or nothing, so checks every path before inserting them
	for _, p := range optionalPaths {
		if err := radix.ValidatePattern(p); err != nil {
			panic(err)
		}
	}

	if gotils.StringSliceInclude(r.registeredPaths[method], path) {
		r.Logger.Warn().
			Str("method", method).
			Str("path", path).
			Msg("Route already registered, replacing its handler")
	}

	for _, p := range optionalPaths {
		if err := r.tree.Insert(method, p, handler); err != nil {
			panic(err)
		}

		r.Logger.Debug().
			Str("method", method).
			Str("path", p).
			Strs("keys", radix.PathKeys(p)).
			Msg("Route registered")
	}

	newMethod := r.registeredPaths[method] == nil
	if !gotils.StringSliceInclude(r.registeredPaths[method], path) {
		r.registeredPaths[method] = append(r.registeredPaths[method], path)
	}

	if newMethod {
		r.globalAllowed = r.allowed("*", "")
	}
}

// ServeFiles serves files from the given file system root.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// For example if root is "/etc" and {filepath:*} is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore fasthttp.NotFound is used instead
// Use:
//
//	router.ServeFiles("/src/{filepath:*}", "./")
func (r *Router) ServeFiles(path string, rootPath string) {
	r.ServeFilesCustom(path, &fasthttp.FS{
		Root:               rootPath,
		IndexNames:         []string{"index.html"},
		GenerateIndexPages: true,
		AcceptByteRange:    true,
	})
}

// ServeFilesCustom serves files from the given file system settings.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// For example if root is "/etc" and {filepath:*} is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore http.NotFound is used instead
// of the Router's NotFound handler.
// Use:
//
//	router.ServeFilesCustom("/src/{filepath:*}", *customFS)
func (r *Router) ServeFilesCustom(path string, fs *fasthttp.FS) {
	suffix := "/{filepath:*}"

	if !strings.HasSuffix(path, suffix) {
		panic("path must end with " + suffix + " in path '" + path + "'")
	}

	prefix := path[:len(path)-len(suffix)]
	stripSlashes := strings.Count(prefix, "/")

	if fs.PathRewrite == nil && stripSlashes > 0 {
		fs.PathRewrite = fasthttp.NewPathSlashesStripper(stripSlashes)
	}
	fileHandler := fs.NewRequestHandler()

	r.GET(path, fileHandler)
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.Logger.Error().
			Str("method", gotils.B2S(ctx.Method())).
			Str("path", gotils.B2S(ctx.Path())).
			Interface("panic", rcv).
			Msg("Recovered from a panic in a handler")

		r.PanicHandler(ctx, rcv)
	}
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
// If the path was found, it returns the handler function and sets the path
// parameter values as ctx user values, if ctx is not nil. Otherwise the second
// return value indicates whether a redirection to the same path with an extra /
// or without the trailing slash should be performed.
func (r *Router) Lookup(method, path string, ctx *fasthttp.RequestCtx) (fasthttp.RequestHandler, bool) {
	m := r.tree.Find(method, path)
	if m.Status == radix.Found {
		if ctx != nil {
			setUserValues(ctx, m.Params)
		}

		return m.Route.Handler, false
	}

	return nil, path != "/" && r.tree.Exists(method, toggleTrailingSlash(path))
}

// Match returns the lookup result of the method + path combo, without
// running any handler.
func (r *Router) Match(method, path string) radix.Match {
	return r.tree.Find(method, path)
}

// AllowedMethods returns the sorted methods registered for the path.
func (r *Router) AllowedMethods(path string) []string {
	return r.tree.AllowedMethods(path)
}

func setUserValues(ctx *fasthttp.RequestCtx, params []radix.Param) {
	for i := range params {
		ctx.SetUserValue(params[i].Key, params[i].Value)
	}
}

func (r *Router) allowed(path, reqMethod string) (allow string) {
	var allowed []string

	if path == "*" || path == "/*" { // server-wide
		// empty method is used for internal calls to refresh the cache
		if reqMethod != "" {
			return r.globalAllowed
		}

		allowed = make([]string, 0, len(r.registeredPaths)+1)

		for method := range r.registeredPaths {
			if method == fasthttp.MethodOptions {
				continue
			}
			// Add request method to list of allowed methods
			allowed = append(allowed, method)
		}
	} else { // specific path
		methods := r.tree.AllowedMethods(path)
		allowed = make([]string, 0, len(methods)+1)

		for _, method := range methods {
			// Skip the requested method - we already tried this one
			if method == reqMethod || method == fasthttp.MethodOptions {
				continue
			}

			allowed = append(allowed, method)
		}
	}

	if len(allowed) > 0 {
		// Add request method to list of allowed methods
		allowed = append(allowed, fasthttp.MethodOptions)

		// Sort allowed methods.
		// sort.Strings(allowed) unfortunately causes unnecessary allocations
		// due to allowed being moved to the heap and interface conversion
		for i, l := 1, len(allowed); i < l; i++ {
			for j := i; j > 0 && allowed[j] < allowed[j-1]; j-- {
				allowed[j], allowed[j-1] = allowed[j-1], allowed[j]
			}
		}

		// return as comma separated list
		return strings.Join(allowed, ", ")
	}

	return
}

func (r *Router) redirect(ctx *fasthttp.RequestCtx, path string, code int) {
	uri := bytebufferpool.Get()
	uri.SetString(path)

	queryBuf := ctx.URI().QueryString()
	if len(queryBuf) > 0 {
		uri.WriteByte(questionMark)
		uri.Write(queryBuf)
	}

	ctx.RedirectBytes(uri.Bytes(), code)

	bytebufferpool.Put(uri)
}

// Handler makes the router implement the fasthttp.Handler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	path := gotils.B2S(ctx.Path())
	method := gotils.B2S(ctx.Method())

	m := r.tree.Find(method, path)
	if m.Status == radix.Found {
		setUserValues(ctx, m.Params)
		m.Route.Handler(ctx)

		return
	}

	if method != fasthttp.MethodConnect && path != "/" {
		// Moved Permanently, request with GET method
		code := fasthttp.StatusMovedPermanently
		if method != fasthttp.MethodGet {
			// Permanent Redirect, request with same method
			code = fasthttp.StatusPermanentRedirect
		}

		if r.RedirectTrailingSlash {
			if tsr := toggleTrailingSlash(path); r.tree.Exists(method, tsr) {
				r.redirect(ctx, tsr, code)
				return
			}
		}

		// Try to fix the request path
		if r.RedirectFixedPath {
			if fixed := r.findFixedPath(method, path); fixed != "" {
				r.redirect(ctx, fixed, code)
				return
			}
		}
	}

	if r.HandleOPTIONS && method == fasthttp.MethodOptions {
		// Handle OPTIONS requests
		if allow := r.allowed(path, fasthttp.MethodOptions); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.GlobalOPTIONS != nil {
				r.GlobalOPTIONS(ctx)
			}
			return
		}
	} else if r.HandleMethodNotAllowed && m.Status == radix.MethodNotAllowed { // Handle 405
		if allow := r.allowed(path, method); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.MethodNotAllowed != nil {
				r.MethodNotAllowed(ctx)
			} else {
				ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
				ctx.SetBodyString(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))
			}
			return
		}
	}

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

// List returns all registered routes grouped by method
func (r *Router) List() map[string][]string {
	return r.registeredPaths
}

// Destroy removes all the routes, the router can be used again afterwards.
//
// WARNING: Not concurrency-safe!
func (r *Router) Destroy() {
	r.tree.Destroy()
	r.registeredPaths = make(map[string][]string)
	r.globalAllowed = ""

	r.Logger.Debug().Msg("Routes destroyed")
}
