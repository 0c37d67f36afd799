//go:build clausepool

package sat

import "sync"

var pool8 = sync.Pool{
	New: func() any {
		// The Pool's New function should generally only return pointer
		// types, since a pointer can be put into the return interface
		// value without an allocation:
		s := make([]Literal, 0, 8)
		return &s
	},
}

var pool64 = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 64)
		return &s
	},
}

var pool256 = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 256)
		return &s
	},
}

var poolHuge = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 512)
		return &s
	},
}

func poolFor(capa int) *sync.Pool {
	switch {
	case capa <= 8:
		return &pool8
	case capa <= 64:
		return &pool64
	case capa <= 256:
		return &pool256
	default:
		return &poolHuge
	}
}

func newClause(literals []Literal, index int) *Clause {
	ref := poolFor(len(literals)).Get().(*[]Literal)

	c := &Clause{index: index}
	c.lits = (*ref)[:0]
	c.lits = append(c.lits, literals...)
	return c
}

func freeClause(c *Clause) {
	lits := c.lits
	c.lits = nil

	switch capa := cap(lits); {
	case capa >= 512:
		poolHuge.Put(&lits)
	case capa >= 256:
		pool256.Put(&lits)
	case capa >= 64:
		pool64.Put(&lits)
	default:
		pool8.Put(&lits)
	}
}
