package ir

import "sort"

// sortUniqueGID orders defs by gid and drops duplicates. Variants and
// intersections are unordered sets; gid order makes the interned node
// canonical.
func sortUniqueGID(defs []*Def) []*Def {
	out := append([]*Def(nil), defs...)
	sort.Slice(out, func(i, j int) bool { return out[i].gid < out[j].gid })
	n := 0
	for i, d := range out {
		if i == 0 || out[n-1] != d {
			out[n] = d
			n++
		}
	}
	return out[:n]
}

// Variant builds the unrestricted sum of the given types.
func (w *World) Variant(defs []*Def, dbg Debug) *Def {
	return w.VariantQ(defs, w.Unlimited(), dbg)
}

// VariantQ builds a sum type; alternatives are canonicalized by gid.
func (w *World) VariantQ(defs []*Def, q *Def, dbg Debug) *Def {
	if e := anyError(defs...); e != nil {
		return w.Error(w.StarQ(q))
	}
	defs = sortUniqueGID(defs)
	if len(defs) == 1 {
		return defs[0]
	}
	kind := w.StarQ(w.joinQualifiers(q, defs))
	for _, d := range defs {
		if d.Sort() == SortKind {
			kind = w.universe
			break
		}
	}
	return w.intern(Def{tag: TagVariant, typ: kind, ops: defs, dbg: dbg})
}

// Any injects def into a variant type. Injecting into a non-variant type is
// the identity; injecting a value whose type is not an alternative yields
// the canonical Error of the variant.
func (w *World) Any(typ, def *Def, dbg Debug) *Def {
	if e := anyError(typ, def); e != nil {
		return w.Error(typ)
	}
	if typ.tag != TagVariant {
		if typ != def.typ {
			return w.Error(typ)
		}
		return def
	}
	if variantIndex(typ, def.typ) < 0 {
		return w.Error(typ)
	}
	return w.intern(Def{tag: TagAny, typ: typ, ops: []*Def{def}, dbg: dbg})
}

// variantIndex locates which alternative a payload type is, or -1.
func variantIndex(variant, typ *Def) int {
	for i, op := range variant.ops {
		if op == typ {
			return i
		}
	}
	return -1
}

// Match eliminates a variant-typed scrutinee with one handler lambda per
// alternative. Handlers are canonicalized by domain gid, so any argument
// order builds the same node; a statically known injection reduces to the
// matching handler application.
func (w *World) Match(def *Def, handlers []*Def, dbg Debug) *Def {
	if def.IsError() {
		return def
	}
	if e := anyError(handlers...); e != nil {
		return w.Error(def.typ)
	}
	if len(handlers) == 1 && def.typ.tag != TagVariant {
		return w.App(handlers[0], def, dbg)
	}
	vt := def.typ
	if vt.tag != TagVariant || len(vt.ops) != len(handlers) {
		return w.Error(def.typ)
	}

	sorted := append([]*Def(nil), handlers...)
	sort.Slice(sorted, func(i, j int) bool {
		return handlerDomain(sorted[i]).gid < handlerDomain(sorted[j]).gid
	})
	for i, h := range sorted {
		if h.typ.tag != TagPi || handlerDomain(h) != vt.Op(i) {
			return w.Error(def.typ)
		}
	}

	if def.tag == TagAny && !def.nominal {
		payload := def.Op(0)
		i := variantIndex(vt, payload.typ)
		return w.App(sorted[i], payload, dbg)
	}

	cods := make([]*Def, len(sorted))
	for i, h := range sorted {
		cods[i] = h.typ.Op(1)
	}
	typ := w.Variant(sortUniqueGID(cods), dbg)
	ops := append([]*Def{def}, sorted...)
	return w.intern(Def{tag: TagMatch, typ: typ, ops: ops, dbg: dbg})
}

func handlerDomain(h *Def) *Def {
	if h.typ != nil && h.typ.tag == TagPi {
		return h.typ.Op(0)
	}
	return h
}

// Intersection builds the unrestricted intersection of the given types.
func (w *World) Intersection(defs []*Def, dbg Debug) *Def {
	return w.IntersectionQ(defs, w.Unlimited(), dbg)
}

// IntersectionQ is the dual of VariantQ.
func (w *World) IntersectionQ(defs []*Def, q *Def, dbg Debug) *Def {
	if e := anyError(defs...); e != nil {
		return w.Error(w.StarQ(q))
	}
	defs = sortUniqueGID(defs)
	if len(defs) == 1 {
		return defs[0]
	}
	kind := w.StarQ(w.meetQualifiers(q, defs))
	for _, d := range defs {
		if d.Sort() == SortKind {
			kind = w.universe
			break
		}
	}
	return w.intern(Def{tag: TagIntersection, typ: kind, ops: defs, dbg: dbg})
}

// All introduces an intersection: a value inhabiting each component type at
// once.
func (w *World) All(defs []*Def, dbg Debug) *Def {
	if e := anyError(defs...); e != nil {
		return w.Error(w.Star(Unrestricted))
	}
	if len(defs) == 1 {
		return defs[0]
	}
	typ := w.Intersection(typesOf(defs), dbg)
	if typ.IsError() {
		return typ
	}
	return w.intern(Def{tag: TagAll, typ: typ, ops: sortUniqueGID(defs), dbg: dbg})
}

// Pick projects one component type out of an intersection-typed value.
func (w *World) Pick(typ, def *Def, dbg Debug) *Def {
	if e := anyError(typ, def); e != nil {
		return w.Error(typ)
	}
	if def.typ.tag != TagIntersection {
		if typ != def.typ {
			return w.Error(typ)
		}
		return def
	}
	if variantIndex(def.typ, typ) < 0 {
		return w.Error(typ)
	}
	return w.intern(Def{tag: TagPick, typ: typ, ops: []*Def{def}, dbg: dbg})
}
