// Package parserpool provides a pool of botanical gnparser instances.
// Herb names and aliases are parsed to find their canonical forms, so
// that a lookup by "Mentha piperita" finds "Mentha piperita L.".
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
	"github.com/gnames/gnuuid"
)

// Pool provides gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a name string with botanical rules.
	// It is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name and its
	// UUID v5. Both are empty if the string is not a scientific name.
	Canonical(nameString string) (canonical, canonicalID string)

	// Close shuts down the pool. After calling Close, the pool should
	// not be used.
	Close()
}

type poolImpl struct {
	ch chan gnparser.GNparser
}

// NewPool creates a new parser pool with the specified number of
// parsers. If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	return &poolImpl{ch: gnparser.NewPool(cfg, poolSize)}
}

// Parse takes a parser from the pool, parses the name and returns the
// parser back.
func (p *poolImpl) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *poolImpl) Canonical(nameString string) (string, string) {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return "", ""
	}
	can := res.Canonical.Simple
	return can, gnuuid.New(can).String()
}

// Close closes the channel and drains remaining parsers.
func (p *poolImpl) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}
