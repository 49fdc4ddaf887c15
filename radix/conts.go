// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package radix is a high performance HTTP routes storage.
//
// Routes are stored in a multi-way radix trie whose children are partitioned
// by segment kind (static, regexp, param and catch-all). Lookups walk the
// groups in that priority order and backtrack when a deeper match fails.
package radix

const (
	static nodeType = iota
	regex
	param
	catchAll
)

// nodeTypes is the number of child groups of every node.
const nodeTypes = catchAll + 1

const stackBufSize = 128

// baseCatchAll is the shorthand that registers both a base path and
// everything below it, e.g. /static/?* => /static and /static/*.
const baseCatchAll = "/?*"

// MethodWild wild HTTP method
const MethodWild = "*"
