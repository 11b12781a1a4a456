package main

import (
	"fmt"

	aipaste "github.com/dandandujie/ai-paste"
)

// poolAdapter wraps aipaste.ConverterPool to implement the CLI Pool interface.
// Converters are created lazily on first acquire.
type poolAdapter struct {
	pool *aipaste.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newPoolAdapter creates a pool of n converters built with opts.
func newPoolAdapter(n int, opts ...aipaste.Option) *poolAdapter {
	return &poolAdapter{pool: aipaste.NewConverterPool(n, opts...)}
}

// Acquire gets a converter from the pool. Blocks if all are in use.
func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter to the pool.
// Panics if conv is not a *aipaste.Converter: only converters obtained
// from Acquire may be released.
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*aipaste.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// Close shuts the pool down.
func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
