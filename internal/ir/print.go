package ir

import (
	"fmt"
	"strings"
)

var subscriptDigits = [10]rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

func subscript(n int) string {
	if n == 0 {
		return "₀"
	}
	var sb strings.Builder
	var digits []rune
	for n > 0 {
		digits = append(digits, subscriptDigits[n%10])
		n /= 10
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteRune(digits[i])
	}
	return sb.String()
}

// qualSuffix renders a qualifier Def as a superscript, omitting the
// unrestricted default.
func (w *World) qualSuffix(q *Def) string {
	if cq, ok := w.ConstQualifier(q); ok {
		if cq == Unrestricted {
			return ""
		}
		return cq.String()
	}
	return q.String()
}

// String streams a deterministic textual form. It is for diagnostics and
// test output only; equality is always pointer equality.
func (d *Def) String() string {
	var sb strings.Builder
	d.stream(&sb)
	return sb.String()
}

func streamList(sb *strings.Builder, defs []*Def, open, close_, sep string) {
	sb.WriteString(open)
	for i, d := range defs {
		if i > 0 {
			sb.WriteString(sep)
		}
		d.stream(sb)
	}
	sb.WriteString(close_)
}

func (d *Def) stream(sb *strings.Builder) {
	w := d.world
	switch d.tag {
	case TagUniverse:
		sb.WriteString("□")
	case TagStar:
		sb.WriteString("*")
		sb.WriteString(w.qualSuffix(d.Op(0)))
	case TagArityKind:
		sb.WriteString("𝔸")
		sb.WriteString(w.qualSuffix(d.Op(0)))
	case TagMultiArityKind:
		sb.WriteString("𝕄")
		sb.WriteString(w.qualSuffix(d.Op(0)))
	case TagQualifierType:
		sb.WriteString("ℚ")
	case TagPi:
		sb.WriteString("Π")
		d.Op(0).stream(sb)
		sb.WriteString(". ")
		d.Op(1).stream(sb)
	case TagLambda:
		sb.WriteString("λ")
		if d.typ != nil && d.typ.tag == TagPi {
			d.typ.Op(0).stream(sb)
		}
		sb.WriteString(". ")
		if d.nominal && !d.IsClosed() {
			sb.WriteString("<unset>")
		} else {
			d.Op(0).stream(sb)
		}
	case TagApp:
		d.Op(0).stream(sb)
		sb.WriteString("(")
		d.Op(1).stream(sb)
		sb.WriteString(")")
	case TagSigma:
		if d.nominal {
			sb.WriteString(d.Unique())
			return
		}
		streamList(sb, d.ops, "[", "]", ", ")
	case TagTuple:
		streamList(sb, d.ops, "(", ")", ", ")
	case TagExtract:
		d.Op(0).stream(sb)
		sb.WriteString("#")
		d.Op(1).stream(sb)
	case TagInsert:
		d.Op(0).stream(sb)
		sb.WriteString(".insert(")
		d.Op(1).stream(sb)
		sb.WriteString(", ")
		d.Op(2).stream(sb)
		sb.WriteString(")")
	case TagVariadic:
		sb.WriteString("«")
		d.Op(0).stream(sb)
		sb.WriteString("; ")
		d.Op(1).stream(sb)
		sb.WriteString("»")
	case TagPack:
		sb.WriteString("‹")
		d.Op(0).stream(sb)
		sb.WriteString("; ")
		d.Op(1).stream(sb)
		sb.WriteString("›")
	case TagVariant:
		if d.nominal {
			sb.WriteString(d.Unique())
			return
		}
		streamList(sb, d.ops, "(", ")", " ∪ ")
	case TagAny:
		sb.WriteString("∨:")
		d.typ.stream(sb)
		sb.WriteString("(")
		d.Op(0).stream(sb)
		sb.WriteString(")")
	case TagMatch:
		sb.WriteString("match ")
		d.Op(0).stream(sb)
		streamList(sb, d.ops[1:], " with (", ")", ", ")
	case TagIntersection:
		streamList(sb, d.ops, "(", ")", " ∩ ")
	case TagAll:
		streamList(sb, d.ops, "(", ")", " ∧ ")
	case TagPick:
		sb.WriteString("pick:")
		d.typ.stream(sb)
		sb.WriteString("(")
		d.Op(0).stream(sb)
		sb.WriteString(")")
	case TagSingleton:
		sb.WriteString("S(")
		d.Op(0).stream(sb)
		sb.WriteString(")")
	case TagAxiom:
		sb.WriteString(d.Unique())
	case TagLit:
		d.streamLit(sb)
	case TagVar:
		fmt.Fprintf(sb, "\\%d::", d.VarIndex())
		d.typ.stream(sb)
	case TagError:
		sb.WriteString("⊥:")
		if d.typ != nil {
			d.typ.stream(sb)
		}
	case TagCn:
		sb.WriteString(d.Unique())
	default:
		sb.WriteString(d.tag.String())
	}
}

func (d *Def) streamLit(sb *strings.Builder) {
	w := d.world
	switch {
	case d.typ == w.qualifierType:
		sb.WriteString(Qualifier(d.box).String())
	case d.typ.tag == TagArityKind:
		fmt.Fprintf(sb, "%d", d.box.U64())
		sb.WriteString("ₐ")
		sb.WriteString(w.qualSuffix(d.typ.Op(0)))
	case d.typ.tag == TagLit && d.typ.typ.tag == TagArityKind:
		// an index literal shows its arity as a subscript
		fmt.Fprintf(sb, "%d", d.box.U64())
		sb.WriteString(subscript(int(d.typ.box.U64())))
	case d.typ == w.typeBool:
		if d.box.Bool() {
			sb.WriteString("tt")
		} else {
			sb.WriteString("ff")
		}
	case d.typ == w.typeNat:
		fmt.Fprintf(sb, "%d", d.box.U64())
	case d.dbg.Name != "":
		sb.WriteString(d.dbg.Name)
	default:
		sb.WriteString("{")
		fmt.Fprintf(sb, "%d: ", d.box.U64())
		d.typ.stream(sb)
		sb.WriteString("}")
	}
}
