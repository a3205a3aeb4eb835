package symbol

import (
	"strings"

	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// Market suffix tables for mainland stock codes, keyed by 2-digit prefix.
var (
	_prefixSZ = [...]string{"00", "30", "15", "16", "18", "12"}
	_prefixSH = [...]string{"60", "68", "11"}
	_prefixBJ = [...]string{"83", "43"}
)

// Normalize maps a raw stock code to its canonical form with an explicit
// market suffix (.SZ/.SH/.BJ). Input that already carries a suffix is
// returned upper-cased unchanged, so Normalize is idempotent.
func Normalize(raw string) (string, error) {
	if strings.Contains(raw, ".") {
		return strings.ToUpper(raw), nil
	}

	code := strings.TrimSpace(raw)
	if !isSixDigits(code) {
		return "", errors.Wrapf(exception.ErrInvalidSymbol, "got: %s", raw)
	}

	prefix := code[:2]
	switch {
	case matchPrefix(prefix, _prefixSZ[:]):
		return code + ".SZ", nil
	case matchPrefix(prefix, _prefixSH[:]):
		return code + ".SH", nil
	case matchPrefix(prefix, _prefixBJ[:]):
		return code + ".BJ", nil
	}

	return "", errors.Wrapf(exception.ErrUnrecognizedPrefix, "got: %s", code)
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func matchPrefix(prefix string, table []string) bool {
	for _, p := range table {
		if prefix == p {
			return true
		}
	}
	return false
}
