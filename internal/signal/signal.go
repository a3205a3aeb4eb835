package signal

import (
	"fmt"

	"main/internal/signal/enum"

	"github.com/shopspring/decimal"
)

// Request is an inbound trading signal as posted by a strategy platform.
type Request struct {
	Symbol    string          `json:"symbol"`
	Side      string          `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	PriceType uint8           `json:"price_type"`
	SignalID  string          `json:"signal_id"`
}

// Ack is the acknowledgment returned for every signal, success or not.
type Ack struct {
	Success  bool    `json:"success"`
	SignalID string  `json:"signal_id"`
	OrderID  *string `json:"order_id"`
	Message  string  `json:"message"`
}

// ValidationError points at the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Parsed is a request that passed validation, with enums resolved.
type Parsed struct {
	Symbol    string
	Side      enum.Side
	Quantity  int64
	Price     decimal.Decimal
	PriceType enum.PriceType
	SignalID  string
}

// Validate checks the request against the signal contract and resolves its
// enumerations. It runs before deduplication so malformed requests never
// consume a dedup slot.
func Validate(req Request) (Parsed, *ValidationError) {
	side, ok := enum.ParseSide(req.Side)
	if !ok {
		return Parsed{}, &ValidationError{Field: "side", Message: fmt.Sprintf("must be 'buy' or 'sell', got: %s", req.Side)}
	}

	if req.Quantity <= 0 {
		return Parsed{}, &ValidationError{Field: "quantity", Message: "must be greater than 0"}
	}
	if req.Quantity%100 != 0 {
		return Parsed{}, &ValidationError{Field: "quantity", Message: "must be a multiple of 100"}
	}

	if req.Price.IsNegative() {
		return Parsed{}, &ValidationError{Field: "price", Message: "must not be negative"}
	}

	priceType := enum.PriceType(req.PriceType)
	if req.PriceType == 0 {
		priceType = enum.PriceTypeMarket
	}
	if !priceType.IsAvailable() {
		return Parsed{}, &ValidationError{Field: "price_type", Message: fmt.Sprintf("must be 5 (market) or 11 (limit), got: %d", req.PriceType)}
	}

	return Parsed{
		Symbol:    req.Symbol,
		Side:      side,
		Quantity:  req.Quantity,
		Price:     req.Price,
		PriceType: priceType,
		SignalID:  req.SignalID,
	}, nil
}
