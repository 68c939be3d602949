// Package token generates the opaque session tokens the search endpoint expects on every request.
package token

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Length is the number of hex characters of the digest used as a token.
const Length = 8

// Generator produces an opaque session token for a single search request.
// The endpoint treats the value as a session marker; it is never interpreted locally.
type Generator func() string

// New returns a Generator yielding a fresh token per call.
func New() Generator {
	return func() string {
		sum := md5.Sum([]byte(fmt.Sprint(rand.Float64())))
		return hex.EncodeToString(sum[:])[:Length]
	}
}

// Memoized wraps gen so the token is computed once and reused for the remainder
// of the run. Safe for concurrent use.
func Memoized(gen Generator) Generator {
	var (
		once sync.Once
		tok  string
	)
	return func() string {
		once.Do(func() { tok = gen() })
		return tok
	}
}
