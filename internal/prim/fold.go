package prim

import (
	"errors"
	"math"
	"math/bits"
)

// errTrap marks a host-detectable trap during constant folding: overflow
// under nsw/nuw, or division by zero. The caller turns it into the
// canonical Error of the expected result type.
var errTrap = errors.New("prim: fold trap")

func widthMask(w uint) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// trunc keeps the low w bits.
func trunc(x uint64, w uint) uint64 { return x & widthMask(w) }

// sext reads the low w bits as a signed value.
func sext(x uint64, w uint) int64 {
	shift := 64 - w
	return int64(x<<shift) >> shift
}

func validWidth(w uint) bool { return w == 8 || w == 16 || w == 32 || w == 64 }

func foldWOp(op WOp, w uint, flags WFlags, a, b uint64) (uint64, error) {
	if !validWidth(w) {
		return 0, errTrap
	}
	ua, ub := trunc(a, w), trunc(b, w)
	sa, sb := sext(a, w), sext(b, w)
	var r uint64
	switch op {
	case WAdd:
		r = trunc(ua+ub, w)
		if flags.NUW() && r < ua {
			return 0, errTrap
		}
		if flags.NSW() && sameSign(sa, sb) && !sameSign(sa, sext(r, w)) {
			return 0, errTrap
		}
	case WSub:
		r = trunc(ua-ub, w)
		if flags.NUW() && ub > ua {
			return 0, errTrap
		}
		if flags.NSW() && !sameSign(sa, sb) && !sameSign(sa, sext(r, w)) {
			return 0, errTrap
		}
	case WMul:
		hi, lo := bits.Mul64(ua, ub)
		r = trunc(lo, w)
		if flags.NUW() && (hi != 0 || lo != r) {
			return 0, errTrap
		}
		if flags.NSW() {
			if sa != 0 && sext(r, w)/sa != sb {
				return 0, errTrap
			}
		}
	case WShl:
		if ub >= uint64(w) {
			return 0, errTrap
		}
		r = trunc(ua<<ub, w)
		if flags.NUW() && trunc(r>>ub, w) != ua {
			return 0, errTrap
		}
		if flags.NSW() && sext(r, w)>>ub != sa {
			return 0, errTrap
		}
	}
	return r, nil
}

func sameSign(a, b int64) bool { return (a < 0) == (b < 0) }

func foldIOp(op IOp, w uint, a, b uint64) (uint64, error) {
	if !validWidth(w) {
		return 0, errTrap
	}
	ua, ub := trunc(a, w), trunc(b, w)
	switch op {
	case IAshr:
		if ub >= uint64(w) {
			return 0, errTrap
		}
		return trunc(uint64(sext(a, w)>>ub), w), nil
	case ILshr:
		if ub >= uint64(w) {
			return 0, errTrap
		}
		return ua >> ub, nil
	case IAnd:
		return ua & ub, nil
	case IOr:
		return ua | ub, nil
	case IXor:
		return ua ^ ub, nil
	}
	return 0, errTrap
}

func foldDOp(op DOp, w uint, a, b uint64) (uint64, error) {
	if !validWidth(w) {
		return 0, errTrap
	}
	ua, ub := trunc(a, w), trunc(b, w)
	sa, sb := sext(a, w), sext(b, w)
	if ub == 0 {
		return 0, errTrap
	}
	switch op {
	case SDiv:
		if sa == math.MinInt64 && sb == -1 {
			return 0, errTrap
		}
		return trunc(uint64(sa/sb), w), nil
	case UDiv:
		return ua / ub, nil
	case SMod:
		return trunc(uint64(sa%sb), w), nil
	case UMod:
		return ua % ub, nil
	}
	return 0, errTrap
}

// real payloads are carried as IEEE bits in the box, 32- or 64-bit.

func realOf(x uint64, w uint) (float64, bool) {
	switch w {
	case 32:
		return float64(math.Float32frombits(uint32(x))), true
	case 64:
		return math.Float64frombits(x), true
	}
	return 0, false
}

func realBits(v float64, w uint) uint64 {
	if w == 32 {
		return uint64(math.Float32bits(float32(v)))
	}
	return math.Float64bits(v)
}

func foldROp(op ROp, w uint, a, b uint64) (uint64, error) {
	fa, ok1 := realOf(a, w)
	fb, ok2 := realOf(b, w)
	if !ok1 || !ok2 {
		return 0, errTrap
	}
	var r float64
	switch op {
	case RAdd:
		r = fa + fb
	case RSub:
		r = fa - fb
	case RMul:
		r = fa * fb
	case RDiv:
		r = fa / fb
	case RMod:
		r = math.Mod(fa, fb)
	}
	return realBits(r, w), nil
}

func foldICmp(op ICmp, w uint, a, b uint64) (bool, error) {
	if !validWidth(w) {
		return false, errTrap
	}
	ua, ub := trunc(a, w), trunc(b, w)
	sa, sb := sext(a, w), sext(b, w)
	switch op {
	case ICmpE:
		return ua == ub, nil
	case ICmpNE:
		return ua != ub, nil
	case ICmpSG:
		return sa > sb, nil
	case ICmpSGE:
		return sa >= sb, nil
	case ICmpSL:
		return sa < sb, nil
	case ICmpSLE:
		return sa <= sb, nil
	case ICmpUG:
		return ua > ub, nil
	case ICmpUGE:
		return ua >= ub, nil
	case ICmpUL:
		return ua < ub, nil
	case ICmpULE:
		return ua <= ub, nil
	}
	return false, errTrap
}

func foldRCmp(op RCmp, w uint, a, b uint64) (bool, error) {
	fa, ok1 := realOf(a, w)
	fb, ok2 := realOf(b, w)
	if !ok1 || !ok2 {
		return false, errTrap
	}
	switch op {
	case RCmpE:
		return fa == fb, nil
	case RCmpNE:
		return fa != fb, nil
	case RCmpG:
		return fa > fb, nil
	case RCmpGE:
		return fa >= fb, nil
	case RCmpL:
		return fa < fb, nil
	case RCmpLE:
		return fa <= fb, nil
	}
	return false, errTrap
}
