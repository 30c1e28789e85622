package ir

import "math/bits"

// BitSet is a compact bitset used for free-variable tracking. The common case
// (all indices below 64) lives in a single inline word; larger sets spill to
// a heap slice.
type BitSet struct {
	word  uint64
	words []uint64 // nil unless spilled; words[0] shadows word
}

func (b *BitSet) spill(i uint) {
	need := int(i/64) + 1
	if b.words == nil {
		if need == 1 {
			return
		}
		n := 2
		for n < need {
			n *= 2
		}
		b.words = make([]uint64, n)
		b.words[0] = b.word
		return
	}
	if need <= len(b.words) {
		return
	}
	n := len(b.words)
	for n < need {
		n *= 2
	}
	ws := make([]uint64, n)
	copy(ws, b.words)
	b.words = ws
}

func (b *BitSet) view() []uint64 {
	if b.words != nil {
		return b.words
	}
	return []uint64{b.word}
}

// Test reports whether bit i is set.
func (b *BitSet) Test(i uint) bool {
	w := i / 64
	if b.words == nil {
		return w == 0 && b.word&(1<<(i%64)) != 0
	}
	return w < uint(len(b.words)) && b.words[w]&(1<<(i%64)) != 0
}

// Set sets bit i.
func (b *BitSet) Set(i uint) {
	b.spill(i)
	if b.words == nil {
		b.word |= 1 << (i % 64)
		return
	}
	b.words[i/64] |= 1 << (i % 64)
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	n := 0
	for _, w := range b.view() {
		n += bits.OnesCount64(w)
	}
	return n
}

// Any reports whether any bit is set.
func (b *BitSet) Any() bool {
	for _, w := range b.view() {
		if w != 0 {
			return true
		}
	}
	return false
}

// None reports whether no bit is set.
func (b *BitSet) None() bool { return !b.Any() }

// AnyRange reports whether any bit in [lo, hi) is set.
func (b *BitSet) AnyRange(lo, hi uint) bool {
	for i := lo; i < hi; i++ {
		if b.Test(i) {
			return true
		}
	}
	return false
}

// AnyFrom reports whether any bit at index >= i is set.
func (b *BitSet) AnyFrom(i uint) bool {
	ws := b.view()
	w := i / 64
	if w >= uint(len(ws)) {
		return false
	}
	if ws[w]>>(i%64) != 0 {
		return true
	}
	for _, x := range ws[w+1:] {
		if x != 0 {
			return true
		}
	}
	return false
}

// NoneFrom reports whether no bit at index >= i is set.
func (b *BitSet) NoneFrom(i uint) bool { return !b.AnyFrom(i) }

// AnyEnd reports whether any bit in [0, n) is set.
func (b *BitSet) AnyEnd(n uint) bool { return b.AnyRange(0, n) }

// NoneEnd reports whether no bit in [0, n) is set.
func (b *BitSet) NoneEnd(n uint) bool { return !b.AnyEnd(n) }

// Union ors other into b.
func (b *BitSet) Union(other *BitSet) {
	ows := other.view()
	for i := len(ows) - 1; i >= 0; i-- {
		if ows[i] == 0 {
			continue
		}
		b.spill(uint(i)*64 + 63)
		if b.words == nil {
			b.word |= ows[i]
		} else {
			b.words[i] |= ows[i]
		}
	}
}

// ShiftedDown returns a copy of b with every bit moved k places toward zero;
// bits below k are dropped. Used when a subterm's free variables are viewed
// from outside k binders.
func (b *BitSet) ShiftedDown(k uint) BitSet {
	var r BitSet
	ws := b.view()
	div, rem := k/64, k%64
	for i := int(div); i < len(ws); i++ {
		w := ws[i] >> rem
		if rem != 0 && i+1 < len(ws) {
			w |= ws[i+1] << (64 - rem)
		}
		if w == 0 {
			continue
		}
		base := uint(i-int(div)) * 64
		for j := uint(0); j < 64; j++ {
			if w&(1<<j) != 0 {
				r.Set(base + j)
			}
		}
	}
	return r
}
