package ir

// Sigma builds an unrestricted dependent tuple type. Component i lives under
// i binders, one per earlier component.
func (w *World) Sigma(defs []*Def, dbg Debug) *Def {
	return w.SigmaQ(defs, w.Unlimited(), dbg)
}

// SigmaQ builds a dependent tuple type with an explicit qualifier seed. The
// sigma's own qualifier is the meet of the seed and the components'.
func (w *World) SigmaQ(defs []*Def, q *Def, dbg Debug) *Def {
	if e := anyError(defs...); e != nil {
		return w.Error(w.StarQ(q))
	}
	switch len(defs) {
	case 0:
		if cq, ok := w.ConstQualifier(q); ok {
			return w.unit[cq]
		}
		return w.intern(Def{tag: TagSigma, typ: w.StarQ(q), dbg: dbg})
	case 1:
		return defs[0]
	}

	// homogeneous independent components canonicalize to a variadic
	if homogeneous(defs) {
		return w.Variadic(w.Arity(len(defs), Unrestricted), defs[0], dbg)
	}

	kind := w.StarQ(w.meetQualifiers(q, defs))
	for _, d := range defs {
		if d.Sort() == SortKind {
			kind = w.universe
			break
		}
	}
	return w.intern(Def{tag: TagSigma, typ: kind, ops: append([]*Def(nil), defs...), dbg: dbg})
}

// homogeneous reports whether every component is the same closed Def, which
// makes positions interchangeable.
func homogeneous(defs []*Def) bool {
	head := defs[0]
	if head.freeVars.Any() {
		return false
	}
	for _, d := range defs[1:] {
		if d != head {
			return false
		}
	}
	return true
}

// Tuple builds a tuple with its inferred (non-dependent) sigma type.
func (w *World) Tuple(defs []*Def, dbg Debug) *Def {
	return w.TupleTyped(w.Sigma(typesOf(defs), dbg), defs, dbg)
}

// TupleTyped builds a tuple against a given sigma type, which may be
// dependent or nominal.
func (w *World) TupleTyped(typ *Def, defs []*Def, dbg Debug) *Def {
	if typ.IsError() {
		return typ
	}
	if e := anyError(defs...); e != nil {
		return w.Error(typ)
	}
	if len(defs) == 0 {
		if cq, ok := w.QualifierOf(typ); ok {
			return w.tuple0[cq]
		}
	}
	if len(defs) == 1 && !(typ.nominal && typ.tag == TagSigma) {
		return defs[0]
	}

	if typ.tag == TagSigma {
		sig := typ
		if typ.nominal {
			sig = w.Sigma(typ.ops, dbg)
		}
		if sig != w.Sigma(typesOf(defs), dbg) && !w.sigmaAssignable(sig, defs) {
			return w.Error(typ)
		}
	}

	// η: a tuple of all the projections of one operand is that operand
	if t := tupleEta(defs); t != nil {
		return t
	}
	// homogeneous tuples canonicalize to packs
	if len(defs) > 1 && homogeneous(defs) {
		return w.Pack(w.Arity(len(defs), Unrestricted), defs[0], dbg)
	}

	return w.intern(Def{tag: TagTuple, typ: typ, ops: append([]*Def(nil), defs...), dbg: dbg})
}

// tupleEta detects (x#0, ..., x#n-1) with x of arity n and returns x.
func tupleEta(defs []*Def) *Def {
	if len(defs) == 0 {
		return nil
	}
	first := defs[0]
	if first.tag != TagExtract {
		return nil
	}
	t := first.Op(0)
	if t.typ == nil || t.typ.Arity() != len(defs) {
		return nil
	}
	for i, d := range defs {
		if d.tag != TagExtract || d.Op(0) != t {
			return nil
		}
		if iv, ok := d.Op(1).IndexValue(); !ok || iv != i {
			return nil
		}
	}
	return t
}

// ExtractI projects component i out of def with a literal index.
func (w *World) ExtractI(def *Def, i int, dbg Debug) *Def {
	if def.IsError() {
		return def
	}
	typ := def.typ

	if typ != nil && typ.tag == TagSigma {
		n := len(typ.ops)
		if i >= n {
			return w.Error(typ)
		}
		if def.tag == TagTuple && !def.nominal {
			return def.Op(i)
		}
		t := w.extractType(def, typ, i)
		return w.intern(Def{tag: TagExtract, typ: t, ops: []*Def{def, w.Index(n, i)}, dbg: dbg})
	}

	if typ != nil && typ.tag == TagVariadic {
		arity := typ.Op(0)
		index := w.IndexA(arity, i)
		if index.IsError() {
			return w.Error(typ)
		}
		if def.tag == TagTuple && !def.nominal {
			if i >= len(def.ops) {
				return w.Error(typ)
			}
			return def.Op(i)
		}
		if def.tag == TagPack && !def.nominal {
			return w.Reduce(def.Op(1), []*Def{index})
		}
		t := w.Reduce(typ.Op(1), []*Def{index})
		return w.intern(Def{tag: TagExtract, typ: t, ops: []*Def{def, index}, dbg: dbg})
	}

	if i == 0 {
		return def
	}
	return w.Error(typ)
}

// extractType computes the type of def#i under a dependent sigma by
// substituting the earlier projections, innermost binder first.
func (w *World) extractType(def, sig *Def, i int) *Def {
	t := sig.Op(i)
	if t.freeVars.NoneEnd(uint(i)) {
		return w.ShiftFreeVars(t, -i)
	}
	for k := i - 1; k >= 0; k-- {
		t = w.Reduce(t, []*Def{w.ExtractI(def, k, Debug{})})
	}
	return t
}

// Extract projects with an arbitrary index Def. Literal indices take the
// direct route; multi-indices iterate component-wise; symbolic indices
// require a variadic or homogeneous-typed operand.
func (w *World) Extract(def, index *Def, dbg Debug) *Def {
	if e := anyError(def, index); e != nil {
		return w.Error(def.typ)
	}

	// a multi-dimensional index projects one dimension at a time
	if index.typ != nil && (index.typ.tag == TagSigma || index.typ.tag == TagMultiArityKind) {
		if index.tag == TagTuple {
			r := def
			for _, comp := range index.ops {
				r = w.Extract(r, comp, dbg)
			}
			return r
		}
	}

	if iv, ok := index.IndexValue(); ok {
		return w.ExtractI(def, iv, dbg)
	}

	typ := def.typ
	if typ != nil && typ.tag == TagVariadic {
		if def.tag == TagPack && !def.nominal {
			return w.Reduce(def.Op(1), []*Def{index})
		}
		t := w.Reduce(typ.Op(1), []*Def{index})
		return w.intern(Def{tag: TagExtract, typ: t, ops: []*Def{def, index}, dbg: dbg})
	}

	if typ != nil && typ.tag == TagSigma {
		if def.tag == TagPack && !def.nominal {
			return w.Reduce(def.Op(1), []*Def{index})
		}
		// the result type must not depend on which component is picked
		t := typ.Op(0)
		for _, op := range typ.ops[1:] {
			t = lubOrNil(t, op)
			if t == nil {
				return w.Error(w.Star(Unrestricted))
			}
		}
		return w.intern(Def{tag: TagExtract, typ: t, ops: []*Def{def, index}, dbg: dbg})
	}

	return w.Error(typ)
}

// lubOrNil joins two component types for a symbolic extract: equal types
// join to themselves, kinds join along the arity chain.
func lubOrNil(a, b *Def) *Def {
	if a == b {
		return a
	}
	return lubKind(a, b)
}

// Insert returns a copy of def with component index replaced by val; the
// result keeps def's type.
func (w *World) Insert(def, index, val *Def, dbg Debug) *Def {
	if e := anyError(def, index, val); e != nil {
		return w.Error(def.typ)
	}
	slot := w.Extract(def, index, dbg)
	if slot.IsError() {
		return w.Error(def.typ)
	}
	if !w.assignable(slot.typ, val) {
		return w.Error(def.typ)
	}
	if iv, ok := index.IndexValue(); ok && def.tag == TagTuple && !def.nominal {
		ops := append([]*Def(nil), def.ops...)
		ops[iv] = val
		return w.TupleTyped(def.typ, ops, dbg)
	}
	return w.intern(Def{tag: TagInsert, typ: def.typ, ops: []*Def{def, index, val}, dbg: dbg})
}

// Singleton builds the type inhabited by exactly def, normalizing through
// variants, sigmas and pis.
func (w *World) Singleton(def *Def, dbg Debug) *Def {
	if def.typ == nil || def.typ.typ == nil {
		panic("ir: no singletons of kinds or the universe")
	}
	if def.typ.tag == TagSingleton {
		return def.typ
	}

	if !def.nominal && def.tag == TagVariant {
		ops := make([]*Def, len(def.ops))
		for i, op := range def.ops {
			ops[i] = w.Singleton(op, dbg)
		}
		return w.Variant(ops, dbg)
	}

	if sig := def.typ; sig.tag == TagSigma {
		ops := make([]*Def, len(sig.ops))
		for i := range sig.ops {
			ops[i] = w.Singleton(w.ExtractI(def, i, dbg), dbg)
		}
		return w.SigmaQ(ops, w.QualifierDef(sig), dbg)
	}

	if pi := def.typ; pi.tag == TagPi {
		v := w.Var(pi.Op(0), 0, Debug{})
		applied := w.App(w.ShiftFreeVars(def, 1), v, dbg)
		return w.PiQ(pi.Op(0), w.Singleton(applied, dbg), w.QualifierDef(pi), dbg)
	}

	return w.intern(Def{tag: TagSingleton, typ: def.typ.typ, ops: []*Def{def}, dbg: dbg})
}
