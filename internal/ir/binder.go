package ir

// Pi builds an unrestricted dependent function type.
func (w *World) Pi(domain, codomain *Def, dbg Debug) *Def {
	return w.PiQ(domain, codomain, w.Unlimited(), dbg)
}

// PiQ builds a dependent function type with an explicit arrow qualifier.
// The codomain lives under one binder of the domain type. An n-ary domain is
// a Sigma; callers extract components from the single bound variable.
func (w *World) PiQ(domain, codomain, q *Def, dbg Debug) *Def {
	if e := anyError(domain, codomain, q); e != nil {
		return w.Error(w.StarQ(q))
	}
	if codomain.Sort() == SortTerm {
		// a Pi classifies functions; its codomain must be a type or kind
		return w.Error(w.StarQ(q))
	}
	kind := w.StarQ(q)
	if domain.Sort() == SortKind || codomain.Sort() == SortKind {
		kind = w.universe
	}
	return w.intern(Def{tag: TagPi, typ: kind, ops: []*Def{domain, codomain}, dbg: dbg})
}

// PiN folds a list of domains into nested single-binder Pis, innermost last.
func (w *World) PiN(domains []*Def, codomain *Def, dbg Debug) *Def {
	result := codomain
	for i := len(domains) - 1; i >= 0; i-- {
		result = w.Pi(domains[i], result, dbg)
	}
	return result
}

// Lambda builds an unrestricted function value.
func (w *World) Lambda(domain, body *Def, dbg Debug) *Def {
	return w.LambdaQ(domain, body, w.Unlimited(), dbg)
}

// LambdaQ builds a function value whose arrow carries qualifier q. The
// binder's substructural discipline is enforced here: an affine parameter
// used twice, or a relevant one never, makes the whole lambda the canonical
// Error of its arrow type.
func (w *World) LambdaQ(domain, body, q *Def, dbg Debug) *Def {
	if body.IsError() {
		return w.Error(w.PiQ(domain, body.typ, q, dbg))
	}
	pi := w.PiQ(domain, body.typ, q, dbg)
	if e := anyError(domain, q, pi); e != nil {
		return w.Error(pi)
	}
	if !w.substructural(w.QualifierDef(domain), body) {
		return w.Error(pi)
	}

	// η-contraction: λx. f x with x not free in f. Skipped when the callee
	// arrow is affine or linear; see the one-use discipline on arrows.
	if body.tag == TagApp {
		f, a := body.Op(0), body.Op(1)
		if a.tag == TagVar && a.VarIndex() == 0 && !f.freeVars.Test(0) {
			fq, ok := w.QualifierOf(f.typ)
			if ok && fq != Affine && fq != Linear {
				return w.ShiftFreeVars(f, -1)
			}
		}
	}

	return w.intern(Def{tag: TagLambda, typ: pi, ops: []*Def{body}, dbg: dbg})
}

// PiLambda pairs a pre-built Pi with a body; the body's type must be the
// Pi's codomain.
func (w *World) PiLambda(pi, body *Def, dbg Debug) *Def {
	if pi.IsError() || body.IsError() {
		return w.Error(pi)
	}
	if pi.tag != TagPi {
		panic("ir: PiLambda on " + pi.tag.String())
	}
	return w.LambdaQ(pi.Op(0), body, w.QualifierDef(pi), dbg)
}

// LambdaNom allocates a nominal lambda of the given Pi type with its body
// unset. Recursive functions close over their own stub via Set.
func (w *World) LambdaNom(pi *Def, dbg Debug) *Def {
	if pi.tag != TagPi {
		panic("ir: LambdaNom on " + pi.tag.String())
	}
	return w.insert(Def{tag: TagLambda, typ: pi, dbg: dbg}, 1)
}

// SigmaNom allocates a nominal sigma with numOps unset component slots.
func (w *World) SigmaNom(numOps int, typ *Def, dbg Debug) *Def {
	return w.insert(Def{tag: TagSigma, typ: typ, dbg: dbg}, numOps)
}

// VariantNom allocates a nominal variant with numOps unset alternatives.
func (w *World) VariantNom(numOps int, typ *Def, dbg Debug) *Def {
	if numOps < 2 {
		panic("ir: nominal variants need at least two alternatives")
	}
	return w.insert(Def{tag: TagVariant, typ: typ, dbg: dbg}, numOps)
}

// CnType is the type of a continuation taking domain: a Pi into ⊥.
func (w *World) CnType(domain *Def) *Def {
	return w.Pi(domain, w.bottom, Dbg("cn"))
}

// Cn allocates a nominal continuation of the given cn type; its body is the
// single unset operand.
func (w *World) Cn(typ *Def, dbg Debug) *Def {
	if typ.tag != TagPi {
		panic("ir: Cn on " + typ.tag.String())
	}
	return w.insert(Def{tag: TagCn, typ: typ, dbg: dbg}, 1)
}

/*
 * application
 */

// App applies callee to arg: it checks assignability against the callee's
// domain, β-reduces structural lambdas, consults the callee's normalizer,
// and otherwise interns an App node.
func (w *World) App(callee, arg *Def, dbg Debug) *Def {
	return w.app(callee, arg, dbg, true)
}

// RawApp interns an application without β-reduction or normalizer dispatch.
// The curry chains and commutative canonicalization use it to lay down
// partially applied primops without re-entering themselves.
func (w *World) RawApp(callee, arg *Def, dbg Debug) *Def {
	return w.app(callee, arg, dbg, false)
}

func (w *World) app(callee, arg *Def, dbg Debug, reduce bool) *Def {
	if callee.IsError() {
		return w.appErrorType(callee, arg)
	}
	pi := callee.typ
	if pi == nil || pi.tag != TagPi {
		return w.Error(w.Star(Unrestricted))
	}
	typ := w.Reduce(pi.Op(1), []*Def{arg})
	if arg.IsError() {
		return w.Error(typ)
	}
	if !w.assignable(pi.Op(0), arg) {
		return w.Error(typ)
	}

	if reduce {
		if callee.tag == TagLambda && !callee.nominal {
			aq, ok := w.QualifierOf(callee.typ)
			if !ok || (aq != Affine && aq != Linear) {
				return w.Reduce(callee.Op(0), []*Def{arg})
			}
		}
		if callee.norm != nil {
			if res := callee.norm(w, typ, callee, arg, dbg); res != nil {
				return res
			}
		}
	}

	app := w.intern(Def{tag: TagApp, typ: typ, ops: []*Def{callee, arg}, dbg: dbg})
	if app.cache != nil {
		return app.cache
	}
	app.cache = app
	return app
}

func (w *World) appErrorType(callee, arg *Def) *Def {
	if callee.typ != nil && callee.typ.tag == TagPi {
		return w.Error(w.Reduce(callee.typ.Op(1), []*Def{arg}))
	}
	return w.Error(w.Star(Unrestricted))
}

// AppN packs multiple arguments into a tuple and applies it; a callee over
// several values takes a Sigma domain.
func (w *World) AppN(callee *Def, args []*Def, dbg Debug) *Def {
	switch len(args) {
	case 0:
		return w.App(callee, w.Tuple0(Unrestricted), dbg)
	case 1:
		return w.App(callee, args[0], dbg)
	}
	return w.App(callee, w.Tuple(args, dbg), dbg)
}

// Curry lays down one stage of a curried primop: an inert application whose
// normalizer is the next stage.
func (w *World) Curry(next Normalizer, typ, callee, arg *Def, dbg Debug) *Def {
	_ = typ
	app := w.RawApp(callee, arg, dbg)
	if !app.IsError() {
		app.norm = next
	}
	return app
}
