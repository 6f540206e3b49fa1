package abi

import (
	lru "github.com/hashicorp/golang-lru"
)

// DefaultTypeCacheSize is the number of signatures a TypeCache keeps by default
const DefaultTypeCacheSize = 1024

// TypeCache memoizes parsed signatures. It is owned by the caller and safe
// for concurrent use. Failed parses are not cached.
type TypeCache struct {
	types   *lru.Cache
	methods *lru.Cache
}

// NewTypeCache creates a cache holding up to size entries of each kind
func NewTypeCache(size int) (*TypeCache, error) {
	types, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	methods, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &TypeCache{types: types, methods: methods}, nil
}

// Parse returns the descriptor for signature, parsing it on a miss
func (c *TypeCache) Parse(signature string) (*Type, error) {
	if t, ok := c.types.Get(signature); ok {
		return t.(*Type), nil
	}

	t, err := Parse(signature)
	if err != nil {
		return nil, err
	}

	c.types.Add(signature, t)

	return t, nil
}

// ParseMethod returns the parsed "name(types)" signature, parsing it on a miss
func (c *TypeCache) ParseMethod(signature string) (*MethodSignature, error) {
	if m, ok := c.methods.Get(signature); ok {
		return m.(*MethodSignature), nil
	}

	m, err := ParseMethod(signature)
	if err != nil {
		return nil, err
	}

	c.methods.Add(signature, m)

	return m, nil
}

// Len returns the number of cached type and method signatures
func (c *TypeCache) Len() int {
	return c.types.Len() + c.methods.Len()
}

// Purge drops every cached entry
func (c *TypeCache) Purge() {
	c.types.Purge()
	c.methods.Purge()
}
