package prim

import (
	"github.com/sunholo/tir/internal/ir"
)

/*
 * helpers
 */

func appCallee(d *ir.Def) *ir.Def { return d.Op(0) }
func appArg(d *ir.Def) *ir.Def    { return d.Op(1) }

// split projects the two scalar-or-vector operands out of the argument pair.
func split(w *ir.World, arg *ir.Def) (*ir.Def, *ir.Def) {
	return w.ExtractI(arg, 0, ir.Debug{}), w.ExtractI(arg, 1, ir.Debug{})
}

func getNat(d *ir.Def) (uint64, bool) {
	if d.Is(ir.TagLit) {
		return d.Box().U64(), true
	}
	return 0, false
}

// opWidth reads the width operand back out of the curried callee; the shape
// is always the innermost stage, the width the one before it.
func opWidth(callee *ir.Def) (uint64, bool) {
	return getNat(appArg(appCallee(callee)))
}

// opFlags reads the flags operand, two stages in.
func opFlags(callee *ir.Def) (uint64, bool) {
	return getNat(appArg(appCallee(appCallee(callee))))
}

// constToLeft swaps a literal operand into the left slot of a commutative
// op and returns it.
func constToLeft(a, b **ir.Def) *ir.Def {
	if (*b).Is(ir.TagLit) {
		*a, *b = *b, *a
		return *a
	}
	if (*a).Is(ir.TagLit) {
		return *a
	}
	return nil
}

// commute canonicalizes a commutative application: the operand with the
// smaller gid (or the literal) goes left, then the app is laid down inert.
func commute(w *ir.World, callee, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	if !a.Is(ir.TagLit) && (b.Is(ir.TagLit) || a.GID() > b.GID()) {
		a, b = b, a
	}
	return w.RawApp(callee, w.Tuple([]*ir.Def{a, b}, dbg), dbg)
}

// shrinkShape peels one dimension off a shape: the head dimension and the
// remaining shape for the recursive pointwise application.
func shrinkShape(w *ir.World, shape *ir.Def) (head, tail *ir.Def) {
	if _, ok := shape.ArityValue(); ok {
		return shape, w.Arity(1, ir.Unrestricted)
	}
	if shape.Is(ir.TagSigma) {
		rest := w.Sigma(shape.Ops()[1:], ir.Debug{})
		return shape.Op(0), w.ShiftFreeVars(rest, -1)
	}
	v := shape // Variadic
	n, _ := v.Op(0).ArityValue()
	return v.Op(0), w.Variadic(w.Arity(n-1, ir.Unrestricted), v.Op(1), ir.Debug{})
}

// normalizeTuple pushes a binary op pointwise through tuple or pack
// operands of the same shape.
func normalizeTuple(w *ir.World, callee, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	ta, pa := a.Is(ir.TagTuple), a.Is(ir.TagPack)
	tb, pb := b.Is(ir.TagTuple), b.Is(ir.TagPack)
	if !(ta || pa) || !(tb || pb) {
		return nil
	}

	head, tail := shrinkShape(w, appArg(callee))
	newCallee := w.App(appCallee(callee), tail, dbg)

	pair := func(x, y *ir.Def) *ir.Def {
		return w.AppN(newCallee, []*ir.Def{x, y}, dbg)
	}
	switch {
	case ta && tb:
		ops := make([]*ir.Def, a.NumOps())
		for i := range ops {
			ops[i] = pair(a.Op(i), b.Op(i))
		}
		return w.Tuple(ops, dbg)
	case ta && pb:
		ops := make([]*ir.Def, a.NumOps())
		for i := range ops {
			ops[i] = pair(a.Op(i), b.Op(1))
		}
		return w.Tuple(ops, dbg)
	case pa && tb:
		ops := make([]*ir.Def, b.NumOps())
		for i := range ops {
			ops[i] = pair(a.Op(1), b.Op(i))
		}
		return w.Tuple(ops, dbg)
	default:
		return w.Pack(head, pair(a.Op(1), b.Op(1)), dbg)
	}
}

/*
 * wrapping arithmetic
 */

func tryWFold(op WOp, w *ir.World, typ, callee, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	if a.Is(ir.TagLit) && b.Is(ir.TagLit) {
		width, ok1 := opWidth(callee)
		flags, ok2 := opFlags(callee)
		if !ok1 || !ok2 {
			return nil
		}
		r, err := foldWOp(op, uint(width), WFlags(flags), a.Box().U64(), b.Box().U64())
		if err != nil {
			return w.Error(typ)
		}
		return w.Lit(typ, ir.Box(r), dbg)
	}
	return normalizeTuple(w, callee, a, b, dbg)
}

func (pw *World) normWOp(op WOp) ir.Normalizer {
	return func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
		a, b := split(w, arg)
		if r := tryWFold(op, w, typ, callee, a, b, dbg); r != nil {
			return r
		}

		switch op {
		case WAdd:
			if la := constToLeft(&a, &b); la != nil && la.Box().U64() == 0 {
				return b
			}
			if a == b {
				two := w.Lit(a.Type(), ir.Box(2), ir.Debug{})
				return w.AppN(pw.recalleeW(w, callee, WMul), []*ir.Def{two, a}, dbg)
			}
			return commute(w, callee, a, b, dbg)
		case WSub:
			if a == b {
				return w.Lit(typ, ir.Box(0), dbg)
			}
			if b.Is(ir.TagLit) && b.Box().U64() == 0 {
				return a
			}
		case WMul:
			if la := constToLeft(&a, &b); la != nil {
				if la.Box().U64() == 0 {
					return la
				}
				if la.Box().U64() == 1 {
					return b
				}
			}
			return commute(w, callee, a, b, dbg)
		case WShl:
		}
		return nil
	}
}

// recalleeW rebuilds the curried callee chain of a wrapping op with a
// different op axiom but the same flags, width and shape.
func (pw *World) recalleeW(w *ir.World, callee *ir.Def, op WOp) *ir.Def {
	shape := appArg(callee)
	width := appArg(appCallee(callee))
	flags := appArg(appCallee(appCallee(callee)))
	c := w.App(pw.wop[op], flags, ir.Debug{})
	c = w.App(c, width, ir.Debug{})
	return w.App(c, shape, ir.Debug{})
}

/*
 * strict integer ops
 */

func tryIFold(fold func(w uint, a, b uint64) (uint64, error), w *ir.World, typ, callee, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	if a.Is(ir.TagLit) && b.Is(ir.TagLit) {
		width, ok := opWidth(callee)
		if !ok {
			return nil
		}
		r, err := fold(uint(width), a.Box().U64(), b.Box().U64())
		if err != nil {
			return w.Error(typ)
		}
		return w.Lit(typ, ir.Box(r), dbg)
	}
	return normalizeTuple(w, callee, a, b, dbg)
}

func (pw *World) normIOp(op IOp) ir.Normalizer {
	return func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
		a, b := split(w, arg)
		fold := func(width uint, x, y uint64) (uint64, error) { return foldIOp(op, width, x, y) }
		if r := tryIFold(fold, w, typ, callee, a, b, dbg); r != nil {
			return r
		}
		switch op {
		case IAnd, IOr, IXor:
			return commute(w, callee, a, b, dbg)
		}
		return nil
	}
}

func (pw *World) normDOp(op DOp) ir.Normalizer {
	return func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
		a, b := split(w, arg)
		// a literal zero divisor traps regardless of the dividend
		if b.Is(ir.TagLit) {
			if width, ok := opWidth(callee); ok && trunc(b.Box().U64(), uint(width)) == 0 {
				return w.Error(typ)
			}
		}
		fold := func(width uint, x, y uint64) (uint64, error) { return foldDOp(op, width, x, y) }
		return tryIFold(fold, w, typ, callee, a, b, dbg)
	}
}

/*
 * real arithmetic
 */

func (pw *World) normROp(op ROp) ir.Normalizer {
	return func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
		a, b := split(w, arg)
		fold := func(width uint, x, y uint64) (uint64, error) { return foldROp(op, width, x, y) }
		if r := tryIFold(fold, w, typ, callee, a, b, dbg); r != nil {
			return r
		}
		switch op {
		case RAdd, RMul:
			return commute(w, callee, a, b, dbg)
		}
		return nil
	}
}

/*
 * comparisons
 */

func (pw *World) normICmp(op ICmp) ir.Normalizer {
	return func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
		a, b := split(w, arg)
		if a.Is(ir.TagLit) && b.Is(ir.TagLit) {
			width, ok := opWidth(callee)
			if !ok {
				return nil
			}
			r, err := foldICmp(op, uint(width), a.Box().U64(), b.Box().U64())
			if err != nil {
				return w.Error(typ)
			}
			return w.Lit(typ, boolBox(r), dbg)
		}
		return normalizeTuple(w, callee, a, b, dbg)
	}
}

func (pw *World) normRCmp(op RCmp) ir.Normalizer {
	return func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
		a, b := split(w, arg)
		if a.Is(ir.TagLit) && b.Is(ir.TagLit) {
			width, ok := opWidth(callee)
			if !ok {
				return nil
			}
			r, err := foldRCmp(op, uint(width), a.Box().U64(), b.Box().U64())
			if err != nil {
				return w.Error(typ)
			}
			return w.Lit(typ, boolBox(r), dbg)
		}
		return normalizeTuple(w, callee, a, b, dbg)
	}
}

func boolBox(v bool) ir.Box {
	if v {
		return ir.Box(1)
	}
	return ir.Box(0)
}

// curryN wraps a final normalizer in n curry stages: each stage lays down an
// inert application carrying the next stage, so a partially applied primop
// stays a value while the fully applied form fires.
func curryN(n int, final ir.Normalizer) ir.Normalizer {
	norm := final
	for i := 0; i < n; i++ {
		next := norm
		norm = func(w *ir.World, typ, callee, arg *ir.Def, dbg ir.Debug) *ir.Def {
			return w.Curry(next, typ, callee, arg, dbg)
		}
	}
	return norm
}
