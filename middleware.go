package router

import "github.com/valyala/fasthttp"

// Middleware wraps a request handler, e.g. to run code before and after it.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Use appends middlewares to the router stack. They wrap the handlers of
// every route, in the given order, so they must be defined before routes.
func (r *Router) Use(middleware ...Middleware) {
	if len(r.registeredPaths) > 0 {
		panic("all middlewares must be defined before routes on a router")
	}

	r.middleware = append(r.middleware, middleware...)
}

// chain wraps the handler with the middlewares, the first one being the outermost.
func chain(middleware []Middleware, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	return handler
}
