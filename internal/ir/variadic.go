package ir

// Variadic builds the homogeneous dependent tuple type «a; T», the body
// living under one binder for the index. Multi-dimensional shapes flatten
// into nested variadics, degenerate arities collapse.
func (w *World) Variadic(arity, body *Def, dbg Debug) *Def {
	if e := anyError(arity, body); e != nil {
		return w.Error(w.Star(Unrestricted))
	}

	if arity.tag == TagSigma && !arity.nominal {
		return w.variadicNest(arity.ops, body, false, dbg)
	}
	if arity.tag == TagVariadic {
		if n, ok := arity.Op(0).ArityValue(); ok {
			dims := make([]*Def, n)
			for i := range dims {
				dims[i] = w.Reduce(arity.Op(1), []*Def{w.IndexA(arity.Op(0), i)})
			}
			return w.variadicNest(dims, body, false, dbg)
		}
	}
	if n, ok := arity.ArityValue(); ok {
		switch n {
		case 0:
			return w.Unit(Unrestricted)
		case 1:
			return w.Reduce(body, []*Def{w.IndexA(arity, 0)})
		}
	}

	return w.intern(Def{tag: TagVariadic, typ: w.variadicKind(body), ops: []*Def{arity, body}, dbg: dbg})
}

// variadicKind classifies «a; T» by T: a variadic over kinds is a kind, a
// variadic over types is a star. The body's kind is lifted out of the index
// binder when it does not mention it.
func (w *World) variadicKind(body *Def) *Def {
	if body.Sort() == SortKind {
		return w.universe
	}
	t := body.typ
	if !t.freeVars.Test(0) {
		return w.ShiftFreeVars(t, -1)
	}
	return w.StarQ(w.QualifierDef(body))
}

// Pack builds the homogeneous tuple value ‹a; v›.
func (w *World) Pack(arity, body *Def, dbg Debug) *Def {
	if e := anyError(arity, body); e != nil {
		return w.Error(w.Variadic(arity, body.typ, dbg))
	}

	if arity.tag == TagSigma && !arity.nominal {
		return w.variadicNest(arity.ops, body, true, dbg)
	}
	if arity.tag == TagVariadic {
		if n, ok := arity.Op(0).ArityValue(); ok {
			dims := make([]*Def, n)
			for i := range dims {
				dims[i] = w.Reduce(arity.Op(1), []*Def{w.IndexA(arity.Op(0), i)})
			}
			return w.variadicNest(dims, body, true, dbg)
		}
	}
	if n, ok := arity.ArityValue(); ok {
		switch n {
		case 0:
			return w.Tuple0(Unrestricted)
		case 1:
			return w.Reduce(body, []*Def{w.IndexA(arity, 0)})
		}
	}

	// η: ‹a; x#i› with i the pack index and x untouched by it is x
	if body.tag == TagExtract {
		x, idx := body.Op(0), body.Op(1)
		if idx.tag == TagVar && idx.VarIndex() == 0 && !x.freeVars.Test(0) {
			down := w.ShiftFreeVars(x, -1)
			if down.typ != nil && down.typ.tag == TagVariadic && down.typ.Op(0) == arity {
				return down
			}
		}
	}

	typ := w.Variadic(arity, body.typ, dbg)
	return w.intern(Def{tag: TagPack, typ: typ, ops: []*Def{arity, body}, dbg: dbg})
}

// variadicNest folds a multi-dimensional shape into nested one-dimensional
// variadics or packs. The body's single tuple-shaped index variable becomes
// one index variable per dimension.
func (w *World) variadicNest(dims []*Def, body *Def, pack bool, dbg Debug) *Def {
	switch len(dims) {
	case 0:
		if pack {
			return w.Tuple0(Unrestricted)
		}
		return w.Unit(Unrestricted)
	case 1:
		if pack {
			return w.Pack(dims[0], body, dbg)
		}
		return w.Variadic(dims[0], body, dbg)
	}
	result := w.flattenBinder(body, dims)
	for i := len(dims) - 1; i >= 0; i-- {
		if pack {
			result = w.Pack(dims[i], result, dbg)
		} else {
			result = w.Variadic(dims[i], result, dbg)
		}
	}
	return result
}

// flattenBinder rewrites a body expecting one Sigma-typed index variable
// into a body under len(dims) index binders: the old variable becomes the
// tuple of the new per-dimension indices.
func (w *World) flattenBinder(body *Def, dims []*Def) *Def {
	if body.freeVars.None() {
		return body
	}
	n := len(dims)
	b := w.ShiftFreeVars(body, n)
	vars := make([]*Def, n)
	for i := 0; i < n; i++ {
		vars[i] = w.Var(dims[i], n-1-i, Debug{})
	}
	return w.ReduceAt(b, []*Def{w.Tuple(vars, Debug{})}, n)
}

// Flatten specializes a body over a Sigma-typed variable to one over the
// given argument list, exposed for clients that build n-ary abstractions.
func (w *World) Flatten(body *Def, args []*Def) *Def {
	if len(args) == 1 {
		return w.Reduce(body, args)
	}
	return w.Reduce(body, []*Def{w.Tuple(args, Debug{})})
}

// Unflatten replaces the variables bound at 0..n-1 in body with projections
// of a single aggregate argument.
func (w *World) Unflatten(body, arg *Def) *Def {
	n := arg.typ.Arity()
	args := make([]*Def, n)
	for i := 0; i < n; i++ {
		args[i] = w.ExtractI(arg, i, Debug{})
	}
	return w.ReduceAt(body, args, 0)
}
