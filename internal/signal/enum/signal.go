package enum

import "strings"

// Side buy, sell
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide resolves a side from its wire form, case-insensitive.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(s) {
	case "buy":
		return SideBuy, true
	case "sell":
		return SideSell, true
	default:
		return _side_beg, false
	}
}

// PriceType carries the execution service's wire values directly.
type PriceType uint8

const (
	PriceTypeMarket PriceType = 5
	PriceTypeLimit  PriceType = 11
)

func (t PriceType) IsAvailable() bool {
	switch t {
	case PriceTypeMarket, PriceTypeLimit:
		return true
	default:
		return false
	}
}
