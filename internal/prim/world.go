package prim

import (
	"fmt"

	"github.com/sunholo/tir/internal/ir"
	"github.com/sunholo/tir/internal/parser"
)

// World is the primop dialect: the core world plus the int/real/ptr type
// constructors, the arithmetic and comparison axioms with their normalizer
// chains, and the memory and continuation axioms.
type World struct {
	*ir.World

	typeInt   *ir.Def
	typeReal  *ir.Def
	typePtr   *ir.Def
	typeMem   *ir.Def
	typeFrame *ir.Def

	wop  [NumWOp]*ir.Def
	iop  [NumIOp]*ir.Def
	dop  [NumDOp]*ir.Def
	rop  [NumROp]*ir.Def
	icmp [NumICmp]*ir.Def
	rcmp [NumRCmp]*ir.Def

	opLea   *ir.Def
	opLoad  *ir.Def
	opStore *ir.Def
	opSlot  *ir.Def
	opEnter *ir.Def

	cnBr    *ir.Def
	cnMatch *ir.Def
}

// NewWorld builds the dialect world on a fresh core world.
func NewWorld() *World {
	pw := &World{World: ir.NewWorld()}
	w := pw.World
	star := w.Star(ir.Unrestricted)
	nat := w.TypeNat()

	pw.typeInt = w.Axiom(w.Pi(nat, star, ir.Debug{}), ir.Dbg("int"))
	pw.typeReal = w.Axiom(w.Pi(nat, star, ir.Debug{}), ir.Dbg("real"))
	pw.typePtr = w.Axiom(w.Pi(w.Sigma([]*ir.Def{star, nat}, ir.Debug{}), star, ir.Debug{}), ir.Dbg("ptr"))
	pw.typeMem = w.Axiom(w.Star(ir.Linear), ir.Dbg("M"))
	pw.typeFrame = w.Axiom(w.Star(ir.Linear), ir.Dbg("F"))

	wopT := pw.arithType(pw.typeInt, true, false)
	iopT := pw.arithType(pw.typeInt, false, false)
	ropT := pw.arithType(pw.typeReal, true, false)
	icmpT := pw.arithType(pw.typeInt, false, true)
	rcmpT := pw.arithType(pw.typeReal, true, true)

	for o := WOp(0); o < NumWOp; o++ {
		pw.wop[o] = w.AxiomNorm(wopT, curryN(3, pw.normWOp(o)), ir.Dbg(o.String()))
	}
	for o := IOp(0); o < NumIOp; o++ {
		pw.iop[o] = w.AxiomNorm(iopT, curryN(2, pw.normIOp(o)), ir.Dbg(o.String()))
	}
	for o := DOp(0); o < NumDOp; o++ {
		pw.dop[o] = w.AxiomNorm(iopT, curryN(2, pw.normDOp(o)), ir.Dbg(o.String()))
	}
	for o := ROp(0); o < NumROp; o++ {
		pw.rop[o] = w.AxiomNorm(ropT, curryN(3, pw.normROp(o)), ir.Dbg(o.String()))
	}
	for o := ICmp(0); o < NumICmp; o++ {
		pw.icmp[o] = w.AxiomNorm(icmpT, curryN(2, pw.normICmp(o)), ir.Dbg(o.String()))
	}
	for o := RCmp(0); o < NumRCmp; o++ {
		pw.rcmp[o] = w.AxiomNorm(rcmpT, curryN(3, pw.normRCmp(o)), ir.Dbg(o.String()))
	}

	// the dependent memory ops read best in the surface syntax
	pw.opLea = w.Axiom(pw.mustParse("Π[s: 𝕄, Ts: [s; *], as: nat]. Π[ptr([j: s; Ts#j], as), i: s]. ptr(Ts#i, as)"), ir.Dbg("lea"))
	pw.opLoad = w.Axiom(pw.mustParse("Π[T: *, a: nat]. Π[M, ptr(T, a)]. [M, T]"), ir.Dbg("load"))
	pw.opStore = w.Axiom(pw.mustParse("Π[T: *, a: nat]. Π[M, ptr(T, a), T]. M"), ir.Dbg("store"))
	pw.opSlot = w.Axiom(pw.mustParse("Π[T: *, a: nat]. Π[F, nat]. ptr(T, a)"), ir.Dbg("slot"))
	pw.opEnter = w.Axiom(pw.mustParse("ΠM. [M, F]"), ir.Dbg("enter"))

	pw.cnBr = w.Axiom(pw.mustParse("cn[bool, cn[], cn[]]"), ir.Dbg("br"))
	pw.cnMatch = w.Axiom(pw.mustParse("cn[T: *, a: 𝔸, [a; [T, cn[]]]]"), ir.Dbg("match"))

	return pw
}

// Env is the name environment the dialect hands to the surface parser.
func (pw *World) Env() parser.Env {
	return parser.Env{
		"nat":  pw.TypeNat(),
		"bool": pw.TypeBool(),
		"int":  pw.typeInt,
		"real": pw.typeReal,
		"ptr":  pw.typePtr,
		"M":    pw.typeMem,
		"F":    pw.typeFrame,
		"end":  pw.End(),
	}
}

func (pw *World) mustParse(src string) *ir.Def {
	d, err := parser.Parse(pw.World, src, pw.Env())
	if err != nil {
		panic(fmt.Sprintf("prim: %s: %v", src, err))
	}
	return d
}

// arithType builds the curried binop type
//
//	[Πf:nat.] Πw:nat. Πs:𝕄. Π[«s; elem w», «s; elem w»]. «s; elem w»
//
// with a bool element codomain for comparisons.
func (pw *World) arithType(elem *ir.Def, hasFlags, boolCod bool) *ir.Def {
	w := pw.World
	nat := w.TypeNat()
	m := w.MultiArityKind(ir.Unrestricted)
	vec := func(sIdx, wIdx int) *ir.Def {
		body := w.App(elem, w.Var(nat, wIdx+1, ir.Dbg("w")), ir.Debug{})
		return w.Variadic(w.Var(m, sIdx, ir.Dbg("s")), body, ir.Debug{})
	}
	boolVec := func(sIdx int) *ir.Def {
		return w.Variadic(w.Var(m, sIdx, ir.Dbg("s")), w.TypeBool(), ir.Debug{})
	}

	dom := w.Sigma([]*ir.Def{vec(0, 1), vec(1, 2)}, ir.Debug{})
	cod := vec(1, 2)
	if boolCod {
		cod = boolVec(1)
	}
	t := w.Pi(dom, cod, ir.Debug{})
	t = w.Pi(m, t, ir.Debug{})
	t = w.Pi(nat, t, ir.Debug{})
	if hasFlags {
		t = w.Pi(nat, t, ir.Debug{})
	}
	return t
}

/*
 * types and values
 */

// TypeInt is the integer type of the given bit width.
func (pw *World) TypeInt(width uint64) *ir.Def {
	return pw.App(pw.typeInt, pw.LitNat(width), ir.Debug{})
}

// TypeReal is the floating-point type of the given bit width.
func (pw *World) TypeReal(width uint64) *ir.Def {
	return pw.App(pw.typeReal, pw.LitNat(width), ir.Debug{})
}

// TypePtr is ptr(pointee, addrSpace).
func (pw *World) TypePtr(pointee, addrSpace *ir.Def) *ir.Def {
	return pw.AppN(pw.typePtr, []*ir.Def{pointee, addrSpace}, ir.Debug{})
}

func (pw *World) TypeMem() *ir.Def   { return pw.typeMem }
func (pw *World) TypeFrame() *ir.Def { return pw.typeFrame }

// LitInt is an integer literal of the given width; the payload is truncated.
func (pw *World) LitInt(width, val uint64) *ir.Def {
	return pw.Lit(pw.TypeInt(width), ir.Box(trunc(val, uint(width))), ir.Debug{})
}

// LitReal64 is a 64-bit real literal.
func (pw *World) LitReal64(v float64) *ir.Def {
	return pw.Lit(pw.TypeReal(64), ir.Box(realBits(v, 64)), ir.Debug{})
}

/*
 * op application
 */

func (pw *World) WOpAxiom(op WOp) *ir.Def   { return pw.wop[op] }
func (pw *World) IOpAxiom(op IOp) *ir.Def   { return pw.iop[op] }
func (pw *World) DOpAxiom(op DOp) *ir.Def   { return pw.dop[op] }
func (pw *World) ROpAxiom(op ROp) *ir.Def   { return pw.rop[op] }
func (pw *World) ICmpAxiom(op ICmp) *ir.Def { return pw.icmp[op] }
func (pw *World) RCmpAxiom(op RCmp) *ir.Def { return pw.rcmp[op] }

func (pw *World) OpLea() *ir.Def   { return pw.opLea }
func (pw *World) OpLoad() *ir.Def  { return pw.opLoad }
func (pw *World) OpStore() *ir.Def { return pw.opStore }
func (pw *World) OpSlot() *ir.Def  { return pw.opSlot }
func (pw *World) OpEnter() *ir.Def { return pw.opEnter }
func (pw *World) CnBr() *ir.Def    { return pw.cnBr }
func (pw *World) CnMatch() *ir.Def { return pw.cnMatch }

func (pw *World) scalar() *ir.Def { return pw.Arity(1, ir.Unrestricted) }

// OpW applies a wrapping op to two scalars.
func (pw *World) OpW(op WOp, flags WFlags, width uint64, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.wop[op], pw.LitNat(uint64(flags)), dbg)
	c = pw.App(c, pw.LitNat(width), dbg)
	c = pw.App(c, pw.scalar(), dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

// OpWShape applies a wrapping op pointwise over a shape.
func (pw *World) OpWShape(op WOp, flags WFlags, width uint64, shape, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.wop[op], pw.LitNat(uint64(flags)), dbg)
	c = pw.App(c, pw.LitNat(width), dbg)
	c = pw.App(c, shape, dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

// OpI applies a strict integer op to two scalars.
func (pw *World) OpI(op IOp, width uint64, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.iop[op], pw.LitNat(width), dbg)
	c = pw.App(c, pw.scalar(), dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

// OpD applies a division-family op to two scalars.
func (pw *World) OpD(op DOp, width uint64, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.dop[op], pw.LitNat(width), dbg)
	c = pw.App(c, pw.scalar(), dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

// OpR applies a real op to two scalars.
func (pw *World) OpR(op ROp, width uint64, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.rop[op], pw.LitNat(0), dbg)
	c = pw.App(c, pw.LitNat(width), dbg)
	c = pw.App(c, pw.scalar(), dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

// CmpI applies an integer comparison to two scalars.
func (pw *World) CmpI(op ICmp, width uint64, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.icmp[op], pw.LitNat(width), dbg)
	c = pw.App(c, pw.scalar(), dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

// CmpR applies a real comparison to two scalars.
func (pw *World) CmpR(op RCmp, width uint64, a, b *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.rcmp[op], pw.LitNat(0), dbg)
	c = pw.App(c, pw.LitNat(width), dbg)
	c = pw.App(c, pw.scalar(), dbg)
	return pw.AppN(c, []*ir.Def{a, b}, dbg)
}

/*
 * memory op helpers
 */

// Load is load(T, a)(mem, ptr).
func (pw *World) Load(mem, ptr *ir.Def, dbg ir.Debug) *ir.Def {
	arg := ptrArgs(ptr)
	c := pw.App(pw.opLoad, arg, dbg)
	return pw.AppN(c, []*ir.Def{mem, ptr}, dbg)
}

// Store is store(T, a)(mem, ptr, val).
func (pw *World) Store(mem, ptr, val *ir.Def, dbg ir.Debug) *ir.Def {
	c := pw.App(pw.opStore, ptrArgs(ptr), dbg)
	return pw.AppN(c, []*ir.Def{mem, ptr, val}, dbg)
}

// Enter is enter(mem), yielding a fresh frame.
func (pw *World) Enter(mem *ir.Def, dbg ir.Debug) *ir.Def {
	return pw.App(pw.opEnter, mem, dbg)
}

// Slot is slot(T, 0)(frame, id); the id keeps distinct slots distinct.
func (pw *World) Slot(typ, frame *ir.Def, id uint64, dbg ir.Debug) *ir.Def {
	c := pw.AppN(pw.opSlot, []*ir.Def{typ, pw.LitNat(0)}, dbg)
	return pw.AppN(c, []*ir.Def{frame, pw.LitNat(id)}, dbg)
}

// ptrArgs recovers the (pointee, addrSpace) pair a ptr type was applied to.
func ptrArgs(ptr *ir.Def) *ir.Def {
	return appArg(ptr.Type())
}
