package ir

// kindRank orders the index-domain kinds by assignability: an arity literal
// fits a multi-arity slot, a multi-arity fits a star slot.
func kindRank(d *Def) (int, bool) {
	switch d.tag {
	case TagArityKind:
		return 0, true
	case TagMultiArityKind:
		return 1, true
	case TagStar:
		return 2, true
	}
	return 0, false
}

// kindSubsumes reports whether a value of kind `have` may sit in a slot of
// kind `want` (𝔸 ⊆ 𝕄 ⊆ *, same qualifier).
func kindSubsumes(want, have *Def) bool {
	wr, ok1 := kindRank(want)
	hr, ok2 := kindRank(have)
	if !ok1 || !ok2 {
		return false
	}
	return hr <= wr && want.Op(0) == have.Op(0)
}

// lubKind returns the least upper bound of two kinds along the 𝔸 ⊆ 𝕄 ⊆ *
// chain, or nil when they are unrelated.
func lubKind(a, b *Def) *Def {
	if a == b {
		return a
	}
	ar, ok1 := kindRank(a)
	br, ok2 := kindRank(b)
	if !ok1 || !ok2 || a.Op(0) != b.Op(0) {
		return nil
	}
	if ar >= br {
		return a
	}
	return b
}

// assignable reports whether arg may inhabit a slot expecting the given
// type. Pointer equality is the common case; beyond it the arity-kind chain
// and dependent sigma components are checked. Errors poison silently so a
// single diagnosis surfaces.
func (w *World) assignable(expected, arg *Def) bool {
	if expected == nil {
		return false
	}
	if expected.IsError() || arg.IsError() {
		return true
	}
	t := arg.typ
	if expected == t {
		return true
	}
	if t == nil {
		return false
	}
	if kindSubsumes(expected, t) {
		return true
	}
	if expected.tag == TagSigma && !expected.nominal {
		n := len(expected.ops)
		if arg.typ.Arity() != n && !(arg.typ.tag == TagSigma && len(arg.typ.ops) == n) {
			return false
		}
		for i := 0; i < n; i++ {
			want := expected.Op(i)
			for k := i - 1; k >= 0; k-- {
				want = w.Reduce(want, []*Def{w.ExtractI(arg, k, Debug{})})
			}
			if !w.assignable(want, w.ExtractI(arg, i, Debug{})) {
				return false
			}
		}
		return true
	}
	return false
}

// sigmaAssignable checks component values directly against a sigma type,
// substituting earlier components for the dependent ones.
func (w *World) sigmaAssignable(sig *Def, defs []*Def) bool {
	if sig.tag != TagSigma || len(sig.ops) != len(defs) {
		return false
	}
	for i, d := range defs {
		want := sig.Op(i)
		for k := i - 1; k >= 0; k-- {
			want = w.Reduce(want, []*Def{defs[k]})
		}
		if !w.assignable(want, d) {
			return false
		}
	}
	return true
}

// Assignable is the public face of the assignability check.
func (w *World) Assignable(expected, arg *Def) bool { return w.assignable(expected, arg) }

// substructural verifies the use count of the variable bound at index 0 of
// body against the binder qualifier. Symbolic qualifiers check nothing.
func (w *World) substructural(q *Def, body *Def) bool {
	cq, ok := w.ConstQualifier(q)
	if !ok {
		return true
	}
	if cq == Unrestricted {
		return true
	}
	n := countOccurrences(body, 0)
	if (cq == Affine || cq == Linear) && n > 1 {
		return false
	}
	if (cq == Relevant || cq == Linear) && n == 0 {
		return false
	}
	return true
}

// meetQualifiers folds the components' qualifiers under Meet, starting from
// q. With a symbolic qualifier in play the lattice goes symbolic: constants
// that cannot lower the bound are dropped and the first remaining symbolic
// qualifier stands for the meet.
func (w *World) meetQualifiers(q *Def, defs []*Def) *Def {
	acc, accConst := w.ConstQualifier(q)
	var symbolic *Def
	if !accConst {
		symbolic = q
		acc = Unrestricted
	}
	for _, d := range defs {
		qd := w.QualifierDef(d)
		if cq, ok := w.ConstQualifier(qd); ok {
			acc = Meet(acc, cq)
		} else if symbolic == nil {
			symbolic = qd
		}
	}
	if symbolic != nil && acc == Unrestricted {
		return symbolic
	}
	return w.QualifierLit(acc)
}

// joinQualifiers is the dual fold under Join.
func (w *World) joinQualifiers(q *Def, defs []*Def) *Def {
	acc, accConst := w.ConstQualifier(q)
	var symbolic *Def
	if !accConst {
		symbolic = q
		acc = Linear
	}
	for _, d := range defs {
		qd := w.QualifierDef(d)
		if cq, ok := w.ConstQualifier(qd); ok {
			acc = Join(acc, cq)
		} else if symbolic == nil {
			symbolic = qd
		}
	}
	if symbolic != nil && acc == Linear {
		return symbolic
	}
	return w.QualifierLit(acc)
}
