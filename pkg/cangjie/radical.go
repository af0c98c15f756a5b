// Package cangjie defines the Cangjie radical alphabet, keystroke codes and
// input method versions. It performs no I/O.
package cangjie

import "fmt"

// Radical is one of the 26 Cangjie radicals. Radicals order as A < B < … < Z.
type Radical uint8

// The radicals, named after the key that types them.
const (
	A Radical = iota // 日
	B                // 月
	C                // 金
	D                // 木
	E                // 水
	F                // 火
	G                // 土
	H                // 竹
	I                // 戈
	J                // 十
	K                // 大
	L                // 中
	M                // 一
	N                // 弓
	O                // 人
	P                // 心
	Q                // 手
	R                // 口
	S                // 尸
	T                // 廿
	U                // 山
	V                // 女
	W                // 田
	X                // 難
	Y                // 卜
	Z                // Ｚ (conventionally 重)
)

// NumRadicals is the size of the alphabet.
const NumRadicals = 26

// glyphs follows libcangjie, which displays Z as the full-width letter Ｚ.
var glyphs = [NumRadicals]rune{
	'日', '月', '金', '木', '水', '火', '土', '竹', '戈', '十', '大', '中', '一',
	'弓', '人', '心', '手', '口', '尸', '廿', '山', '女', '田', '難', '卜', 'Ｚ',
}

// names differs from glyphs only for Z.
var names = [NumRadicals]rune{
	'日', '月', '金', '木', '水', '火', '土', '竹', '戈', '十', '大', '中', '一',
	'弓', '人', '心', '手', '口', '尸', '廿', '山', '女', '田', '難', '卜', '重',
}

// SymbolError reports a byte or rune that is not part of the alphabet.
// The panicking constructors panic with a *SymbolError; the Parse functions
// return one.
type SymbolError struct {
	// Glyph is true when the invalid symbol was a display glyph rather than
	// an identifier byte.
	Glyph bool
	// Symbol is the offending byte or rune.
	Symbol rune
	// Offset is the position of the symbol in its input (bytes for both
	// encodings), or -1 for a single symbol.
	Offset int
}

func (e *SymbolError) Error() string {
	kind := "identifier"
	if e.Glyph {
		kind = "glyph"
	}
	if e.Offset < 0 {
		return fmt.Sprintf("cangjie: invalid radical %s %q", kind, e.Symbol)
	}
	return fmt.Sprintf("cangjie: invalid radical %s %q at offset %d", kind, e.Symbol, e.Offset)
}

// LookupIdentifier returns the radical typed with the key b ('a'..'z').
func LookupIdentifier(b byte) (Radical, bool) {
	if b < 'a' || b > 'z' {
		return 0, false
	}
	return Radical(b - 'a'), true
}

// FromIdentifier is like LookupIdentifier but panics if b is not in 'a'..'z'.
func FromIdentifier(b byte) Radical {
	r, ok := LookupIdentifier(b)
	if !ok {
		panic(&SymbolError{Symbol: rune(b), Offset: -1})
	}
	return r
}

// LookupGlyph returns the radical displayed as g.
func LookupGlyph(g rune) (Radical, bool) {
	switch g {
	case '日':
		return A, true
	case '月':
		return B, true
	case '金':
		return C, true
	case '木':
		return D, true
	case '水':
		return E, true
	case '火':
		return F, true
	case '土':
		return G, true
	case '竹':
		return H, true
	case '戈':
		return I, true
	case '十':
		return J, true
	case '大':
		return K, true
	case '中':
		return L, true
	case '一':
		return M, true
	case '弓':
		return N, true
	case '人':
		return O, true
	case '心':
		return P, true
	case '手':
		return Q, true
	case '口':
		return R, true
	case '尸':
		return S, true
	case '廿':
		return T, true
	case '山':
		return U, true
	case '女':
		return V, true
	case '田':
		return W, true
	case '難':
		return X, true
	case '卜':
		return Y, true
	case 'Ｚ':
		return Z, true
	}
	return 0, false
}

// FromGlyph is like LookupGlyph but panics if g is not one of the 26 glyphs.
// Note that 重 is not accepted; Z is displayed as Ｚ.
func FromGlyph(g rune) Radical {
	r, ok := LookupGlyph(g)
	if !ok {
		panic(&SymbolError{Glyph: true, Symbol: g, Offset: -1})
	}
	return r
}

// Valid reports whether r is one of the 26 radicals.
func (r Radical) Valid() bool { return r < NumRadicals }

// Identifier returns the key used to type r, as stored by libcangjie.
func (r Radical) Identifier() byte {
	r.mustBeValid()
	return 'a' + byte(r)
}

// Glyph returns the character libcangjie uses to display r.
func (r Radical) Glyph() rune {
	r.mustBeValid()
	return glyphs[r]
}

// Name returns the conventional Chinese name of r. It equals Glyph for every
// radical except Z, whose name is 重.
func (r Radical) Name() rune {
	r.mustBeValid()
	return names[r]
}

// String returns the display glyph, or Radical(n) for an invalid value.
func (r Radical) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Radical(%d)", uint8(r))
	}
	return string(glyphs[r])
}

func (r Radical) mustBeValid() {
	if !r.Valid() {
		panic(fmt.Sprintf("cangjie: invalid Radical(%d)", uint8(r)))
	}
}
