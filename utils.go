package router

import (
	"strings"

	"github.com/fasthttp/chirouter/radix"
	"github.com/valyala/fasthttp"
)

func validatePath(path string) {
	switch {
	case len(path) == 0 || !strings.HasPrefix(path, "/"):
		panic(&radix.PatternError{Pattern: path, Err: radix.ErrInvalidPath})
	}
}

func validateGroupPath(path string) {
	validatePath(path)

	if len(path) > 1 && path[len(path)-1] == '/' {
		panic("group path must not end with a trailing slash in path '" + path + "'")
	}
}

// validateRoute checks the parts of a route that the middlewares could hide,
// the pattern itself is checked by the tree.
func validateRoute(method, path string, handler fasthttp.RequestHandler) {
	switch {
	case method == "":
		panic(&radix.PatternError{Pattern: path, Err: radix.ErrEmptyMethod})
	case handler == nil:
		panic(&radix.PatternError{Pattern: path, Err: radix.ErrNilHandler})
	}

	validatePath(path)
}

// toggleTrailingSlash adds the trailing slash to the path, or removes it.
func toggleTrailingSlash(path string) string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		return path[:len(path)-1]
	}

	return path + "/"
}
