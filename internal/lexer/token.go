package lexer

import "github.com/sunholo/tir/internal/report"

// TokenType identifies a lexical class.
type TokenType int

const (
	EOF TokenType = iota
	ERROR

	IDENT  // x, Ts, zip
	NUMBER // 42, 3ₐ, 2₃, 0s64

	STAR   // *
	AKIND  // 𝔸
	MKIND  // 𝕄
	QKIND  // ℚ
	PI     // Π
	LAMBDA // λ
	CN     // cn

	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LGUILL   // «
	RGUILL   // »
	LANGLE   // ‹
	RANGLE   // ›

	SEMI      // ;
	COMMA     // ,
	DOT       // .
	COLON     // :
	DCOLON    // ::
	HASH      // #
	EQ        // =
	BACKSLASH // \

	QUAL // ᵁ ᴬ ᴿ ᴸ superscript
)

var tokenNames = map[TokenType]string{
	EOF: "EOF", ERROR: "ERROR", IDENT: "IDENT", NUMBER: "NUMBER",
	STAR: "*", AKIND: "𝔸", MKIND: "𝕄", QKIND: "ℚ", PI: "Π", LAMBDA: "λ", CN: "cn",
	LBRACKET: "[", RBRACKET: "]", LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LGUILL: "«", RGUILL: "»", LANGLE: "‹", RANGLE: "›",
	SEMI: ";", COMMA: ",", DOT: ".", COLON: ":", DCOLON: "::", HASH: "#",
	EQ: "=", BACKSLASH: "\\", QUAL: "QUAL",
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return "TokenType(?)"
}

// Token is one lexical unit. NUMBER tokens fold the literal forms of the
// surface syntax into one shape: a value, an optional subscripted arity
// (index literals like 2₃), an arity marker (3ₐ) and an ignored width
// suffix (0s64).
type Token struct {
	Type    TokenType
	Lit     string
	Val     uint64
	Sub     int64 // subscript value for index literals, -1 otherwise
	IsArity bool  // trailing ₐ
	Qual    int   // QUAL: 0 unrestricted, 1 affine, 2 relevant, 3 linear
	Pos     report.Pos
}
