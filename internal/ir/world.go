package ir

// World owns the term graph: the arena, the intern set and the pre-built
// sentinel Defs. A World is single-threaded; all construction goes through
// exactly one caller at a time.
type World struct {
	arena *arena
	defs  map[uint64][]*Def
	gid   uint32

	universe       *Def
	qualifierType  *Def
	qualifier      [NumQualifiers]*Def
	star           [NumQualifiers]*Def
	arityKind      [NumQualifiers]*Def
	multiArityKind [NumQualifiers]*Def
	unit           [NumQualifiers]*Def
	tuple0         [NumQualifiers]*Def

	typeNat  *Def
	typeBool *Def
	litBool  [2]*Def
	bottom   *Def
	end      *Def
}

// NewWorld builds a fresh World with all sentinel Defs eagerly constructed.
func NewWorld() *World {
	w := &World{
		arena: newArena(),
		defs:  make(map[uint64][]*Def),
	}

	w.universe = w.intern(Def{tag: TagUniverse, dbg: Dbg("□")})
	w.qualifierType = w.intern(Def{tag: TagQualifierType, typ: w.universe, dbg: Dbg("ℚ")})
	for q := Unrestricted; q < NumQualifiers; q++ {
		w.qualifier[q] = w.intern(Def{tag: TagLit, typ: w.qualifierType, box: Box(q), dbg: Dbg(q.String())})
	}
	for q := Unrestricted; q < NumQualifiers; q++ {
		w.star[q] = w.intern(Def{tag: TagStar, typ: w.universe, ops: []*Def{w.qualifier[q]}, dbg: Dbg("*")})
		w.arityKind[q] = w.intern(Def{tag: TagArityKind, typ: w.universe, ops: []*Def{w.qualifier[q]}, dbg: Dbg("𝔸")})
		w.multiArityKind[q] = w.intern(Def{tag: TagMultiArityKind, typ: w.universe, ops: []*Def{w.qualifier[q]}, dbg: Dbg("𝕄")})
	}
	for q := Unrestricted; q < NumQualifiers; q++ {
		w.unit[q] = w.intern(Def{tag: TagSigma, typ: w.star[q], dbg: Dbg("[]")})
		w.tuple0[q] = w.intern(Def{tag: TagTuple, typ: w.unit[q], dbg: Dbg("()")})
	}

	w.typeNat = w.Axiom(w.Star(Unrestricted), Dbg("nat"))
	w.typeBool = w.Axiom(w.Star(Unrestricted), Dbg("bool"))
	w.litBool[0] = w.Lit(w.typeBool, Box(0), Dbg("ff"))
	w.litBool[1] = w.Lit(w.typeBool, Box(1), Dbg("tt"))
	w.bottom = w.Axiom(w.Star(Unrestricted), Dbg("⊥"))
	w.end = w.Axiom(w.CnType(w.Unit(Unrestricted)), Dbg("end"))

	return w
}

// NumDefs returns the number of live nodes, sentinels included.
func (w *World) NumDefs() int {
	n := 0
	for _, bucket := range w.defs {
		n += len(bucket)
	}
	return n
}

/*
 * interning
 */

// intern allocates cand in the arena, probes the structural hash set and
// either registers the fresh node or rolls the allocation back and returns
// the existing one.
func (w *World) intern(cand Def) *Def {
	d := w.arena.alloc()
	*d = cand
	d.world = w
	w.gid++
	d.gid = w.gid
	d.nominal = false
	d.computeFreeVars()

	h := d.hashValue()
	for _, e := range w.defs[h] {
		if structEq(e, d) {
			w.arena.release(d)
			w.gid--
			return e
		}
	}
	w.defs[h] = append(w.defs[h], d)
	d.wireUses()
	return d
}

// insert allocates a nominal node. Nominal identity is the allocation, so the
// hash set is keyed by gid and never merges it with anything.
func (w *World) insert(cand Def, numOps int) *Def {
	d := w.arena.alloc()
	*d = cand
	d.world = w
	w.gid++
	d.gid = w.gid
	d.nominal = true
	d.ops = make([]*Def, numOps)
	if d.typ != nil {
		d.freeVars.Union(&d.typ.freeVars)
		d.typ.uses = append(d.typ.uses, Use{Index: -1, Def: d})
	}
	h := d.hashValue()
	w.defs[h] = append(w.defs[h], d)
	return d
}

// computeFreeVars seeds the node's free-variable set from its type and the
// appropriately shifted sets of its operands.
func (d *Def) computeFreeVars() {
	d.freeVars = BitSet{}
	if d.tag == TagVar {
		d.freeVars.Set(uint(d.index))
	}
	if d.typ != nil {
		d.freeVars.Union(&d.typ.freeVars)
	}
	for i, op := range d.ops {
		if op == nil {
			continue
		}
		fv := op.freeVars.ShiftedDown(uint(opShift(d.tag, i)))
		d.freeVars.Union(&fv)
	}
}

/*
 * sentinels and leaf constructors
 */

func (w *World) Universe() *Def      { return w.universe }
func (w *World) QualifierType() *Def { return w.qualifierType }

// QualifierLit returns the interned constant for q.
func (w *World) QualifierLit(q Qualifier) *Def { return w.qualifier[q] }

func (w *World) Unlimited() *Def { return w.qualifier[Unrestricted] }
func (w *World) AffineQ() *Def   { return w.qualifier[Affine] }
func (w *World) RelevantQ() *Def { return w.qualifier[Relevant] }
func (w *World) LinearQ() *Def   { return w.qualifier[Linear] }

// ConstQualifier reports the lattice element when def is one of the four
// qualifier constants.
func (w *World) ConstQualifier(def *Def) (Qualifier, bool) {
	for q := Unrestricted; q < NumQualifiers; q++ {
		if w.qualifier[q] == def {
			return q, true
		}
	}
	return Unrestricted, false
}

func (w *World) IsQualifier(def *Def) bool { return def.typ == w.qualifierType }

func (w *World) Star(q Qualifier) *Def { return w.star[q] }

// StarQ is Star over a possibly symbolic qualifier.
func (w *World) StarQ(q *Def) *Def {
	if cq, ok := w.ConstQualifier(q); ok {
		return w.star[cq]
	}
	return w.intern(Def{tag: TagStar, typ: w.universe, ops: []*Def{q}, dbg: Dbg("*")})
}

func (w *World) ArityKind(q Qualifier) *Def { return w.arityKind[q] }

func (w *World) ArityKindQ(q *Def) *Def {
	if cq, ok := w.ConstQualifier(q); ok {
		return w.arityKind[cq]
	}
	return w.intern(Def{tag: TagArityKind, typ: w.universe, ops: []*Def{q}, dbg: Dbg("𝔸")})
}

func (w *World) MultiArityKind(q Qualifier) *Def { return w.multiArityKind[q] }

func (w *World) MultiArityKindQ(q *Def) *Def {
	if cq, ok := w.ConstQualifier(q); ok {
		return w.multiArityKind[cq]
	}
	return w.intern(Def{tag: TagMultiArityKind, typ: w.universe, ops: []*Def{q}, dbg: Dbg("𝕄")})
}

func (w *World) Unit(q Qualifier) *Def   { return w.unit[q] }
func (w *World) Tuple0(q Qualifier) *Def { return w.tuple0[q] }

func (w *World) TypeNat() *Def  { return w.typeNat }
func (w *World) TypeBool() *Def { return w.typeBool }
func (w *World) Bottom() *Def   { return w.bottom }
func (w *World) End() *Def      { return w.end }

func (w *World) LitBool(v bool) *Def {
	if v {
		return w.litBool[1]
	}
	return w.litBool[0]
}

func (w *World) LitNat(v uint64) *Def {
	return w.Lit(w.typeNat, Box(v), Debug{})
}

// Error returns the canonical error node of the expected type.
func (w *World) Error(typ *Def) *Def {
	return w.intern(Def{tag: TagError, typ: typ, dbg: Dbg("⊤⊥")})
}

// Var builds a De Bruijn variable of the given type.
func (w *World) Var(typ *Def, index int, dbg Debug) *Def {
	return w.intern(Def{tag: TagVar, typ: typ, index: uint64(index), dbg: dbg})
}

// Axiom builds a nominal opaque constant of the given type.
func (w *World) Axiom(typ *Def, dbg Debug) *Def {
	return w.insert(Def{tag: TagAxiom, typ: typ, dbg: dbg}, 0)
}

// AxiomNorm builds an axiom carrying a normalizer.
func (w *World) AxiomNorm(typ *Def, norm Normalizer, dbg Debug) *Def {
	d := w.insert(Def{tag: TagAxiom, typ: typ, dbg: dbg}, 0)
	d.norm = norm
	return d
}

// Lit builds a structural axiom with a payload.
func (w *World) Lit(typ *Def, box Box, dbg Debug) *Def {
	return w.intern(Def{tag: TagLit, typ: typ, box: box, dbg: dbg})
}

// Arity builds the literal arity n at qualifier q.
func (w *World) Arity(n int, q Qualifier) *Def {
	return w.Lit(w.ArityKind(q), Box(n), Debug{})
}

// ArityQ builds an arity over a possibly symbolic qualifier.
func (w *World) ArityQ(n int, q *Def) *Def {
	return w.Lit(w.ArityKindQ(q), Box(n), Debug{})
}

// Index builds the literal index i of the arity n; out of range yields the
// canonical Error of the arity.
func (w *World) Index(n, i int) *Def {
	return w.IndexA(w.Arity(n, Unrestricted), i)
}

// IndexA builds the literal index i of an arity Def.
func (w *World) IndexA(arity *Def, i int) *Def {
	if n, ok := arity.ArityValue(); ok && i >= n {
		return w.Error(arity)
	}
	return w.Lit(arity, Box(i), Debug{})
}

/*
 * qualifiers of defs
 */

// QualifierDef returns the qualifier Def governing d when d is used as a
// type or kind; terms defer to their type.
func (w *World) QualifierDef(d *Def) *Def {
	switch d.tag {
	case TagStar, TagArityKind, TagMultiArityKind:
		return d.ops[0]
	case TagUniverse, TagQualifierType:
		return w.Unlimited()
	}
	if d.typ != nil {
		return w.QualifierDef(d.typ)
	}
	return w.Unlimited()
}

// QualifierOf is QualifierDef narrowed to a constant; symbolic qualifiers
// report Unrestricted with ok=false.
func (w *World) QualifierOf(d *Def) (Qualifier, bool) {
	return w.ConstQualifier(w.QualifierDef(d))
}

/*
 * shared helpers
 */

// typesOf collects the types of defs.
func typesOf(defs []*Def) []*Def {
	ts := make([]*Def, len(defs))
	for i, d := range defs {
		ts[i] = d.typ
	}
	return ts
}

// anyError returns the first Error among defs, or nil.
func anyError(defs ...*Def) *Def {
	for _, d := range defs {
		if d != nil && d.IsError() {
			return d
		}
	}
	return nil
}
