// Package xcid allocates the deterministic 24-digit identifiers that name
// every object in the project descriptor. An identifier is a pure function
// of its semantic key, so reruns over an unchanged tree reproduce the exact
// same tokens.
package xcid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TokenLen is the identifier width required by the descriptor grammar.
const TokenLen = 24

// cacheSize bounds the memo cache. Eviction only costs a re-hash; the
// collision registry below is never evicted.
const cacheSize = 8192

// Allocator maps semantic keys to identifier tokens. It memoizes results
// and detects hash collisions between distinct keys, which would silently
// merge two objects in the emitted descriptor.
type Allocator struct {
	cache *lru.Cache[string, string]

	// byToken records every token ever handed out and the key that produced
	// it. Two distinct keys mapping to one token is a fatal condition.
	byToken map[string]string
}

// New creates an empty Allocator.
func New() *Allocator {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Allocator{
		cache:   cache,
		byToken: make(map[string]string),
	}
}

// ID returns the identifier for the given semantic key: the first TokenLen
// hex digits of the key's MD5, uppercased. Identical keys always yield
// identical tokens; a collision between distinct keys is returned as an
// error so the run aborts before any output is written.
func (a *Allocator) ID(key string) (string, error) {
	if token, ok := a.cache.Get(key); ok {
		return token, nil
	}

	sum := md5.Sum([]byte(key))
	token := strings.ToUpper(hex.EncodeToString(sum[:]))[:TokenLen]

	if prev, ok := a.byToken[token]; ok && prev != key {
		return "", fmt.Errorf("identifier collision: keys %q and %q both hash to %s", prev, key, token)
	}
	a.byToken[token] = key
	a.cache.Add(key, token)

	return token, nil
}

// Len returns the number of distinct identifiers allocated so far.
func (a *Allocator) Len() int {
	return len(a.byToken)
}
