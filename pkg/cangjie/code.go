package cangjie

import (
	"slices"
	"unicode/utf8"
)

// Code is the radical sequence typed to produce one character, usually one
// to five radicals long. A nil Code holds no radicals yet; lookups never
// return one.
//
// Codes compare lexicographically, radical by radical. Values returned by
// the lookup engine are owned by the caller and not shared.
type Code []Radical

// CodeFromIdentifiers decodes key bytes such as "rtw". It panics with a
// *SymbolError if any byte is outside 'a'..'z'.
func CodeFromIdentifiers(ids []byte) Code {
	c := make(Code, len(ids))
	for i, b := range ids {
		r, ok := LookupIdentifier(b)
		if !ok {
			panic(&SymbolError{Symbol: rune(b), Offset: i})
		}
		c[i] = r
	}
	return c
}

// CodeFromGlyphs decodes display glyphs such as "口廿田". It panics with a
// *SymbolError if any character is not a radical glyph.
func CodeFromGlyphs(s string) Code {
	c, err := ParseGlyphs(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseIdentifiers is like CodeFromIdentifiers but returns an error instead
// of panicking.
func ParseIdentifiers(s string) (Code, error) {
	c := make(Code, len(s))
	for i := 0; i < len(s); i++ {
		r, ok := LookupIdentifier(s[i])
		if !ok {
			return nil, &SymbolError{Symbol: rune(s[i]), Offset: i}
		}
		c[i] = r
	}
	return c, nil
}

// ParseGlyphs is like CodeFromGlyphs but returns an error instead of
// panicking.
func ParseGlyphs(s string) (Code, error) {
	c := make(Code, 0, utf8.RuneCountInString(s))
	for i, g := range s {
		r, ok := LookupGlyph(g)
		if !ok {
			return nil, &SymbolError{Glyph: true, Symbol: g, Offset: i}
		}
		c = append(c, r)
	}
	return c, nil
}

// Identifiers returns c displayed as key letters ("rtw").
func (c Code) Identifiers() IdentifierText { return IdentifierText(c) }

// Glyphs returns c displayed as radical glyphs ("口廿田").
func (c Code) Glyphs() GlyphText { return GlyphText(c) }

// AppendIdentifiers appends the key letters of c to dst.
func (c Code) AppendIdentifiers(dst []byte) []byte {
	for _, r := range c {
		dst = append(dst, r.Identifier())
	}
	return dst
}

// AppendGlyphs appends the UTF-8 glyphs of c to dst.
func (c Code) AppendGlyphs(dst []byte) []byte {
	for _, r := range c {
		dst = utf8.AppendRune(dst, r.Glyph())
	}
	return dst
}

// String returns the key letters of c.
func (c Code) String() string { return string(c.AppendIdentifiers(make([]byte, 0, len(c)))) }

// Equal reports whether c and o hold the same radicals in the same order.
func (c Code) Equal(o Code) bool { return slices.Equal(c, o) }

// Compare returns -1, 0 or +1 comparing c and o lexicographically. A code
// sorts before every longer code it is a prefix of.
func (c Code) Compare(o Code) int { return slices.Compare(c, o) }

// Less reports whether c sorts before o.
func (c Code) Less(o Code) bool { return c.Compare(o) < 0 }

// Clone returns a copy of c that shares no storage with it.
func (c Code) Clone() Code { return slices.Clone(c) }

// MarshalText encodes c as key letters.
func (c Code) MarshalText() ([]byte, error) {
	return c.AppendIdentifiers(make([]byte, 0, len(c))), nil
}

// UnmarshalText decodes key letters, rejecting invalid bytes with a
// *SymbolError.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifiers(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IdentifierText formats a Code as key letters. It holds no state besides
// the code, so it can be formatted any number of times.
type IdentifierText Code

func (t IdentifierText) String() string { return Code(t).String() }

// GlyphText formats a Code as radical glyphs. Like IdentifierText it can be
// formatted any number of times.
type GlyphText Code

func (t GlyphText) String() string {
	// Every glyph encodes to three bytes in UTF-8.
	return string(Code(t).AppendGlyphs(make([]byte, 0, 3*len(t))))
}
