// Package prim is the primop dialect over the core term graph: integer and
// real arithmetic, comparisons, bitwise ops and the memory/continuation
// axioms, each registered with a normalizer that folds literal operands and
// canonicalizes the rest.
package prim

// WOp is an integer op that may wrap; its flags operand selects the nsw/nuw
// discipline.
type WOp uint8

const (
	WAdd WOp = iota
	WSub
	WMul
	WShl
	NumWOp
)

var wopNames = [NumWOp]string{"add", "sub", "mul", "shl"}

func (o WOp) String() string { return wopNames[o] }

// IOp is an integer op that cannot wrap.
type IOp uint8

const (
	IAshr IOp = iota
	ILshr
	IAnd
	IOr
	IXor
	NumIOp
)

var iopNames = [NumIOp]string{"ashr", "lshr", "iand", "ior", "ixor"}

func (o IOp) String() string { return iopNames[o] }

// DOp is an integer division-family op; a literal zero divisor folds to the
// canonical Error.
type DOp uint8

const (
	SDiv DOp = iota
	UDiv
	SMod
	UMod
	NumDOp
)

var dopNames = [NumDOp]string{"sdiv", "udiv", "smod", "umod"}

func (o DOp) String() string { return dopNames[o] }

// ROp is a floating-point op; its flags operand carries fast-math bits the
// folder ignores.
type ROp uint8

const (
	RAdd ROp = iota
	RSub
	RMul
	RDiv
	RMod
	NumROp
)

var ropNames = [NumROp]string{"radd", "rsub", "rmul", "rdiv", "rmod"}

func (o ROp) String() string { return ropNames[o] }

// ICmp is an integer comparison.
type ICmp uint8

const (
	ICmpE ICmp = iota
	ICmpNE
	ICmpSG
	ICmpSGE
	ICmpSL
	ICmpSLE
	ICmpUG
	ICmpUGE
	ICmpUL
	ICmpULE
	NumICmp
)

var icmpNames = [NumICmp]string{"icmp_e", "icmp_ne", "icmp_sg", "icmp_sge", "icmp_sl", "icmp_sle", "icmp_ug", "icmp_uge", "icmp_ul", "icmp_ule"}

func (o ICmp) String() string { return icmpNames[o] }

// RCmp is a floating-point comparison (ordered).
type RCmp uint8

const (
	RCmpE RCmp = iota
	RCmpNE
	RCmpG
	RCmpGE
	RCmpL
	RCmpLE
	NumRCmp
)

var rcmpNames = [NumRCmp]string{"rcmp_e", "rcmp_ne", "rcmp_g", "rcmp_ge", "rcmp_l", "rcmp_le"}

func (o RCmp) String() string { return rcmpNames[o] }

// WFlags select the wrapping discipline of a WOp.
type WFlags uint64

const (
	WFlagNone WFlags = 0
	WFlagNSW  WFlags = 1 << 0
	WFlagNUW  WFlags = 1 << 1
)

func (f WFlags) NSW() bool { return f&WFlagNSW != 0 }
func (f WFlags) NUW() bool { return f&WFlagNUW != 0 }
