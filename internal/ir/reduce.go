package ir

// reducer performs capture-avoiding substitution over De Bruijn variables.
// Structural nodes are rewritten through the builders (so every rewrite the
// builders know about fires again); nominal nodes become stubs whose
// operands are filled by a fixpoint pass once the outer reduction returns.
type reducer struct {
	w     *World
	args  []*Def // substitution mode: replacements for Var(shift+len-1)..Var(shift)
	delta int    // shift mode (args == nil): offset added to free variables
	memo  map[redKey]*Def
	noms  []redKey
}

type redKey struct {
	def   *Def
	shift int
}

// ReduceAt substitutes args for the variables bound at depth shift in d:
// the result equals d[args[len-1]/Var(shift), ..., args[0]/Var(shift+len-1)]
// with all remaining free variables above the binder shifted down by
// len(args).
func (w *World) ReduceAt(d *Def, args []*Def, shift int) *Def {
	if len(args) == 0 {
		return d
	}
	r := &reducer{w: w, args: args, memo: make(map[redKey]*Def)}
	result := r.reduceUpToNominals(d, shift)
	r.reduceNominals()
	return result
}

// Reduce is ReduceAt with the innermost binder.
func (w *World) Reduce(d *Def, args []*Def) *Def { return w.ReduceAt(d, args, 0) }

// ShiftFreeVars adds delta to every free variable of d. Negative deltas are
// used when lifting a subterm out of binders it does not reference.
func (w *World) ShiftFreeVars(d *Def, delta int) *Def {
	if delta == 0 || d.freeVars.None() {
		return d
	}
	r := &reducer{w: w, delta: delta, memo: make(map[redKey]*Def)}
	result := r.reduceUpToNominals(d, 0)
	r.reduceNominals()
	return result
}

func (r *reducer) reduceUpToNominals(d *Def, shift int) *Def {
	if d.freeVars.NoneFrom(uint(shift)) {
		return d
	}
	return r.reduce(d, shift)
}

// reduceNominals drains the worklist, closing each pending stub exactly once
// per (def, shift) pair. Filling an operand may push further nominals.
func (r *reducer) reduceNominals() {
	for len(r.noms) > 0 {
		key := r.noms[len(r.noms)-1]
		r.noms = r.noms[:len(r.noms)-1]
		stub, ok := r.memo[key]
		if !ok || stub == key.def || stub.IsClosed() {
			continue
		}
		for i, op := range key.def.ops {
			stub.Set(i, r.reduce(op, key.shift+opShift(key.def.tag, i)))
		}
	}
}

func (r *reducer) reduce(d *Def, shift int) *Def {
	key := redKey{d, shift}
	if repl, ok := r.memo[key]; ok {
		return repl
	}
	if d.freeVars.NoneFrom(uint(shift)) {
		r.memo[key] = d
		return d
	}
	if d.nominal {
		newTyp := r.reduce(d.typ, shift)
		stub := r.w.insert(Def{tag: d.tag, typ: newTyp, dbg: d.dbg}, len(d.ops))
		stub.norm = d.norm
		r.memo[key] = stub
		r.noms = append(r.noms, key)
		return stub
	}

	var newTyp *Def
	if d.typ != nil {
		newTyp = r.reduce(d.typ, shift)
	}
	if d.tag == TagVar {
		result := r.varReduce(d, newTyp, shift)
		r.memo[key] = result
		return result
	}
	result := r.rebuild(d, newTyp, shift)
	r.memo[key] = result
	return result
}

func (r *reducer) varReduce(v *Def, newTyp *Def, shift int) *Def {
	w := r.w
	index := int(v.index)

	if r.args == nil {
		// shift mode
		if index >= shift {
			return w.Var(newTyp, index+r.delta, v.dbg)
		}
		return w.Var(newTyp, index, v.dbg)
	}

	// Map the De Bruijn index back into the argument array: shift names
	// args[len-1], shift+len-1 names args[0].
	argIndex := len(r.args) - 1 - index + shift
	switch {
	case argIndex >= 0 && argIndex < len(r.args):
		arg := r.args[argIndex]
		if !w.assignable(newTyp, arg) {
			// Tag the error with the expected type, not the one the
			// argument brought along.
			return w.Error(newTyp)
		}
		return arg
	case argIndex < 0:
		// Free above the eliminated binder: the binder goes away, so the
		// variable moves down by the argument count.
		return w.Var(newTyp, index-len(r.args), v.dbg)
	default:
		// Bound below the substitution point: index is untouched, only the
		// type may have changed.
		return w.Var(newTyp, index, v.dbg)
	}
}

func (r *reducer) rebuild(d *Def, newTyp *Def, shift int) *Def {
	w := r.w
	ops := make([]*Def, len(d.ops))
	for i, op := range d.ops {
		ops[i] = r.reduce(op, shift+opShift(d.tag, i))
	}

	switch d.tag {
	case TagUniverse, TagQualifierType:
		return d
	case TagStar:
		return w.StarQ(ops[0])
	case TagArityKind:
		return w.ArityKindQ(ops[0])
	case TagMultiArityKind:
		return w.MultiArityKindQ(ops[0])
	case TagPi:
		return w.PiQ(ops[0], ops[1], r.reduce(w.QualifierDef(d), shift), d.dbg)
	case TagLambda:
		if newTyp.tag != TagPi {
			return w.Error(newTyp)
		}
		return w.LambdaQ(newTyp.Op(0), ops[0], w.QualifierDef(newTyp), d.dbg)
	case TagApp:
		return w.App(ops[0], ops[1], d.dbg)
	case TagSigma:
		return w.SigmaQ(ops, r.reduce(w.QualifierDef(d), shift), d.dbg)
	case TagTuple:
		return w.TupleTyped(newTyp, ops, d.dbg)
	case TagExtract:
		return w.Extract(ops[0], ops[1], d.dbg)
	case TagInsert:
		return w.Insert(ops[0], ops[1], ops[2], d.dbg)
	case TagVariadic:
		return w.Variadic(ops[0], ops[1], d.dbg)
	case TagPack:
		return w.Pack(ops[0], ops[1], d.dbg)
	case TagVariant:
		return w.VariantQ(ops, r.reduce(w.QualifierDef(d), shift), d.dbg)
	case TagAny:
		return w.Any(newTyp, ops[0], d.dbg)
	case TagMatch:
		return w.Match(ops[0], ops[1:], d.dbg)
	case TagIntersection:
		return w.IntersectionQ(ops, r.reduce(w.QualifierDef(d), shift), d.dbg)
	case TagAll:
		return w.All(ops, d.dbg)
	case TagPick:
		return w.Pick(newTyp, ops[0], d.dbg)
	case TagSingleton:
		return w.Singleton(ops[0], d.dbg)
	case TagLit:
		return w.Lit(newTyp, d.box, d.dbg)
	case TagError:
		return w.Error(newTyp)
	}
	panic("ir: cannot rebuild " + d.tag.String())
}
