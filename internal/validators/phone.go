package validators

import (
	"strings"
	"unicode"
)

const MinPhoneDigits = 10

// NormalizePhone remove tudo que não for dígito decimal. O resultado é a
// chave de identidade do cliente. Tamanho/formato são problema de quem chama.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone exige ao menos MinPhoneDigits dígitos após normalizar (DDD + número).
func ValidPhone(raw string) bool {
	return len(NormalizePhone(raw)) >= MinPhoneDigits
}

func ValidName(name string) bool {
	return strings.TrimFunc(name, unicode.IsSpace) != ""
}
