package ir

import (
	"fmt"
)

// Sort is the level of a Def in the universe hierarchy, derived from the
// depth of its type chain.
type Sort uint8

const (
	SortUniverse Sort = iota
	SortKind
	SortType
	SortTerm
)

func (s Sort) String() string {
	switch s {
	case SortUniverse:
		return "Universe"
	case SortKind:
		return "Kind"
	case SortType:
		return "Type"
	}
	return "Term"
}

// Debug carries an optional name and source location. It never participates
// in equality or hashing.
type Debug struct {
	Name string
	Line int
	Col  int
}

func Dbg(name string) Debug { return Debug{Name: name} }

// Box is the 64-bit payload of a Lit, reinterpreted per width and signedness
// by the normalizers.
type Box uint64

func (b Box) U64() uint64 { return uint64(b) }
func (b Box) S64() int64  { return int64(b) }
func (b Box) Bool() bool  { return b != 0 }

func (b Box) Qualifier() Qualifier { return Qualifier(b) }

// Use records that a node references its operand at a given position.
type Use struct {
	Index int
	Def   *Def
}

// Normalizer is the optional per-axiom rewriter consulted at application
// time. It receives the already-computed result type, the callee and the
// argument; returning nil leaves the application inert.
type Normalizer func(w *World, typ, callee, arg *Def, dbg Debug) *Def

// Def is a node of the term graph. Structural Defs are immutable and
// hash-consed; nominal Defs are identified by their allocation and have
// their operands filled in after creation.
type Def struct {
	world    *World
	tag      Tag
	gid      uint32
	nominal  bool
	numSet   int // nominal only: operands filled so far
	typ      *Def
	ops      []*Def
	freeVars BitSet
	index    uint64 // Var: De Bruijn index
	box      Box    // Lit: payload
	dbg      Debug
	norm     Normalizer // Axiom, curried App
	cache    *Def       // App: memoized reduction result
	uses     []Use
}

func (d *Def) World() *World   { return d.world }
func (d *Def) Tag() Tag        { return d.tag }
func (d *Def) GID() uint32     { return d.gid }
func (d *Def) IsNominal() bool { return d.nominal }
func (d *Def) Type() *Def      { return d.typ }
func (d *Def) Ops() []*Def     { return d.ops }
func (d *Def) NumOps() int     { return len(d.ops) }
func (d *Def) Op(i int) *Def   { return d.ops[i] }
func (d *Def) FreeVars() *BitSet { return &d.freeVars }
func (d *Def) Debug() Debug    { return d.dbg }
func (d *Def) Name() string    { return d.dbg.Name }
func (d *Def) Uses() []Use     { return d.uses }
func (d *Def) Box() Box        { return d.box }

// VarIndex returns the De Bruijn index of a Var.
func (d *Def) VarIndex() int {
	if d.tag != TagVar {
		panic("ir: VarIndex on " + d.tag.String())
	}
	return int(d.index)
}

func (d *Def) Is(tag Tag) bool { return d.tag == tag }

func (d *Def) IsError() bool { return d.tag == TagError }

// IsClosed reports whether all operand slots of a nominal Def are set.
// Structural Defs are always closed.
func (d *Def) IsClosed() bool {
	if !d.nominal {
		return true
	}
	return d.numSet == len(d.ops)
}

// Sort derives the universe level from the type chain.
func (d *Def) Sort() Sort {
	switch {
	case d.typ == nil:
		return SortUniverse
	case d.typ.typ == nil:
		return SortKind
	case d.typ.typ.typ == nil:
		return SortType
	default:
		return SortTerm
	}
}

// Arity returns the number of components this Def has when used as a tuple
// shape: Sigma counts its operands, a Variadic with a literal arity its
// unrolled length, everything else (Variant included) is 1.
func (d *Def) Arity() int {
	switch d.tag {
	case TagSigma:
		return len(d.ops)
	case TagVariadic:
		if a, ok := d.Op(0).ArityValue(); ok {
			return a
		}
	}
	return 1
}

// ArityValue returns the literal value of an arity Lit.
func (d *Def) ArityValue() (int, bool) {
	if d.tag == TagLit && d.typ != nil && d.typ.tag == TagArityKind {
		return int(d.box.U64()), true
	}
	return 0, false
}

// IndexValue returns the literal value of an index Lit (a Lit whose type is
// an arity Lit).
func (d *Def) IndexValue() (int, bool) {
	if d.tag == TagLit && d.typ != nil && d.typ.tag == TagLit {
		return int(d.box.U64()), true
	}
	return 0, false
}

// Set installs operand i of a nominal Def and registers the use. Setting an
// operand twice or on a structural Def is a programmer error.
func (d *Def) Set(i int, op *Def) *Def {
	if !d.nominal {
		panic("ir: Set on structural " + d.tag.String())
	}
	if d.ops[i] != nil {
		panic(fmt.Sprintf("ir: operand %d of %s already set", i, d.Unique()))
	}
	if op == nil {
		panic("ir: Set with nil operand")
	}
	d.ops[i] = op
	d.numSet++
	op.uses = append(op.uses, Use{Index: i, Def: d})
	fv := op.freeVars.ShiftedDown(uint(opShift(d.tag, i)))
	d.freeVars.Union(&fv)
	return d
}

// wireUses registers d as a user of each of its operands.
func (d *Def) wireUses() {
	for i, op := range d.ops {
		if op != nil {
			op.uses = append(op.uses, Use{Index: i, Def: d})
		}
	}
}

// Unique returns the debug name suffixed with the gid, for diagnostics.
func (d *Def) Unique() string {
	n := d.dbg.Name
	if n == "" {
		n = d.tag.String()
	}
	return fmt.Sprintf("%s_%d", n, d.gid)
}

// hashValue computes the structural fingerprint. Nominal Defs hash by gid.
func (d *Def) hashValue() uint64 {
	if d.nominal {
		return hashCombine(hashBegin(uint64(d.tag)), uint64(d.gid))
	}
	seed := hashBegin(uint64(d.tag))
	if d.typ != nil {
		seed = hashCombine(seed, uint64(d.typ.gid))
	}
	seed = hashCombine(seed, d.index)
	seed = hashCombine(seed, uint64(d.box))
	for _, op := range d.ops {
		seed = hashCombine(seed, uint64(op.gid))
	}
	return seed
}

// structEq compares the structural identity tuple. Both sides must already
// have interned types and operands.
func structEq(a, b *Def) bool {
	if a.nominal || b.nominal {
		return a == b
	}
	if a.tag != b.tag || a.typ != b.typ || len(a.ops) != len(b.ops) ||
		a.index != b.index || a.box != b.box {
		return false
	}
	for i := range a.ops {
		if a.ops[i] != b.ops[i] {
			return false
		}
	}
	return true
}

// fnv-1a style mixing, stable across runs.

func hashBegin(x uint64) uint64 { return hashCombine(14695981039346656037, x) }

func hashCombine(seed, x uint64) uint64 {
	seed ^= x
	seed *= 1099511628211
	return seed
}

// countOccurrences counts uses of the variable bound at depth idx within d.
// Used for the substructural checks at binder construction.
func countOccurrences(d *Def, idx uint) int {
	if !d.freeVars.Test(idx) {
		return 0
	}
	if d.tag == TagVar {
		n := 0
		if uint(d.index) == idx {
			n = 1
		}
		return n + countOccurrences(d.typ, idx)
	}
	n := 0
	if d.typ != nil {
		n += countOccurrences(d.typ, idx)
	}
	for i, op := range d.ops {
		if op == nil {
			continue
		}
		n += countOccurrences(op, idx+uint(opShift(d.tag, i)))
	}
	return n
}
