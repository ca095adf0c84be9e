// Package ident validates symbol names against the rules of the generated
// modeling language: identifier pattern, length bound, and reserved words.
package ident

import "fmt"

// MaxLen is the longest symbol name the target language accepts.
const MaxLen = 63

// reserved holds the keywords of the target language. A symbol declared with
// one of these names would produce source text that fails to compile, so the
// collision is rejected at construction time instead.
var reserved = map[string]struct{}{
	"abort": {}, "acronym": {}, "acronyms": {}, "alias": {}, "all": {},
	"and": {}, "binary": {}, "break": {}, "card": {}, "continue": {},
	"diag": {}, "display": {}, "do": {}, "else": {}, "elseif": {},
	"endfor": {}, "endif": {}, "endloop": {}, "endwhile": {}, "eps": {},
	"equation": {}, "equations": {}, "execute": {}, "execute_load": {},
	"execute_loaddc": {}, "execute_loadhandle": {}, "execute_loadpoint": {},
	"execute_unload": {}, "execute_unloaddi": {}, "execute_unloadidx": {},
	"file": {}, "files": {}, "for": {}, "free": {}, "function": {},
	"functions": {}, "gdxload": {}, "if": {}, "inf": {}, "integer": {},
	"logic": {}, "loop": {}, "model": {}, "models": {}, "na": {},
	"negative": {}, "no": {}, "nonnegative": {}, "not": {}, "option": {},
	"options": {}, "or": {}, "ord": {}, "parameter": {}, "parameters": {},
	"positive": {}, "prod": {}, "put": {}, "put_utility": {}, "putclear": {},
	"putclose": {}, "putfmcl": {}, "puthd": {}, "putheader": {},
	"putpage": {}, "puttitle": {}, "puttl": {}, "repeat": {}, "sameas": {},
	"sand": {}, "scalar": {}, "scalars": {}, "semicont": {}, "semiint": {},
	"set": {}, "sets": {}, "singleton": {}, "smax": {}, "smin": {},
	"solve": {}, "sor": {}, "sos1": {}, "sos2": {}, "sum": {}, "system": {},
	"table": {}, "tables": {}, "then": {}, "undf": {}, "until": {},
	"variable": {}, "variables": {}, "while": {}, "xor": {}, "yes": {},
}

// IsReserved reports whether name is a keyword of the target language.
// Matching is case-insensitive because the target language is.
func IsReserved(name string) bool {
	_, ok := reserved[lower(name)]
	return ok
}

// Validate checks that name is a legal, non-reserved symbol name. The name
// must start with a letter and continue with letters, digits or underscores.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("symbol name must not be empty")
	}
	if len(name) > MaxLen {
		return fmt.Errorf("symbol name %q exceeds the maximum length of %d characters", name, MaxLen)
	}
	if IsReserved(name) {
		return fmt.Errorf("symbol name %q is a reserved word", name)
	}
	for i, r := range name {
		if i == 0 {
			if !isLetter(r) {
				return fmt.Errorf("symbol name %q must start with a letter", name)
			}
			continue
		}
		if !isLetter(r) && !isDigit(r) && r != '_' {
			return fmt.Errorf("symbol name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
