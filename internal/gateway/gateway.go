package gateway

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"main/internal/dedup"
	"main/internal/executor"
	"main/internal/obs"
	"main/internal/recorder"
	"main/internal/signal"
	"main/internal/signal/enum"
	"main/internal/symbol"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/logs"
)

// Config wires the gateway's collaborators.
type Config struct {
	Token    string
	Executor executor.Client
	Dedup    *dedup.Deduplicator
	Metrics  *obs.Metrics
	Recorder *recorder.Recorder
}

// Gateway receives trading signals over HTTP, deduplicates them and forwards
// each one as an order placement to the execution service.
type Gateway struct {
	token   []byte
	exec    executor.Client
	dedup   *dedup.Deduplicator
	metrics *obs.Metrics
	rec     *recorder.Recorder
}

// New creates a gateway from its collaborators.
func New(cfg Config) *Gateway {
	d := cfg.Dedup
	if d == nil {
		d = dedup.New(dedup.DefaultTTL, dedup.DefaultMaxSize)
	}
	return &Gateway{
		token:   []byte(cfg.Token),
		exec:    cfg.Executor,
		dedup:   d,
		metrics: cfg.Metrics,
		rec:     cfg.Recorder,
	}
}

// Handler builds the HTTP surface.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", g.handleHealth)
	mux.HandleFunc("POST /signal", g.handleSignal)
	return mux
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (g *Gateway) handleSignal(w http.ResponseWriter, r *http.Request) {
	if !g.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Detail: "invalid token"})
		return
	}

	var req signal.Request
	if err := sonic.ConfigFastest.NewDecoder(r.Body).Decode(&req); err != nil {
		g.metrics.IncRejected()
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "malformed request body"})
		return
	}

	parsed, verr := signal.Validate(req)
	if verr != nil {
		g.metrics.IncRejected()
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: verr.Error()})
		return
	}
	g.metrics.IncReceived()

	signalID := parsed.SignalID
	if signalID == "" {
		signalID = newSignalID()
	}

	ack, stockCode := g.process(r, parsed, signalID)
	g.record(parsed, stockCode, ack)
	writeJSON(w, http.StatusOK, ack)
}

// process runs dedup, normalization and forwarding. Every branch ends in
// exactly one acknowledgment; nothing is retried.
func (g *Gateway) process(r *http.Request, parsed signal.Parsed, signalID string) (signal.Ack, string) {
	if g.dedup.Observe(signalID) {
		g.metrics.IncDuplicate()
		return signal.Ack{
			Success:  false,
			SignalID: signalID,
			Message:  "duplicate signal ignored: " + signalID,
		}, ""
	}

	stockCode, err := symbol.Normalize(parsed.Symbol)
	if err != nil {
		g.metrics.IncBadSymbol()
		return signal.Ack{
			Success:  false,
			SignalID: signalID,
			Message:  err.Error(),
		}, ""
	}

	start := time.Now()
	orderID, err := executor.OrderStock(
		r.Context(),
		g.exec,
		stockCode,
		orderType(parsed.Side),
		parsed.Quantity,
		int(parsed.PriceType),
		parsed.Price.InexactFloat64(),
	)
	if err != nil {
		g.metrics.ObserveForward(time.Since(start), false)
		logs.Errorf("forward signal failed: %s, err: %+v", signalID, err)
		return signal.Ack{
			Success:  false,
			SignalID: signalID,
			Message:  "forward failed: " + err.Error(),
		}, stockCode
	}
	g.metrics.ObserveForward(time.Since(start), true)

	logs.Infof("signal forwarded: %s %s x%d signal_id=%s order_id=%s",
		parsed.Side, stockCode, parsed.Quantity, signalID, orderID)
	return signal.Ack{
		Success:  true,
		SignalID: signalID,
		OrderID:  &orderID,
		Message:  "signal submitted",
	}, stockCode
}

func (g *Gateway) authorized(r *http.Request) bool {
	token := []byte(r.Header.Get("X-Token"))
	return subtle.ConstantTimeCompare(token, g.token) == 1
}

func (g *Gateway) record(parsed signal.Parsed, stockCode string, ack signal.Ack) {
	if g.rec == nil {
		return
	}
	rec := recorder.SignalRecord{
		SignalID:  ack.SignalID,
		Symbol:    parsed.Symbol,
		StockCode: stockCode,
		Side:      parsed.Side.String(),
		Quantity:  parsed.Quantity,
		Price:     parsed.Price.String(),
		PriceType: uint8(parsed.PriceType),
		Success:   ack.Success,
		Message:   ack.Message,
	}
	if ack.OrderID != nil {
		rec.OrderID = *ack.OrderID
	}
	if err := g.rec.Record(rec); err != nil {
		logs.Warnf("record signal outcome: %s, err: %+v", ack.SignalID, err)
	}
}

// orderType maps a signal side to the execution service's order type code
// (xtconstant STOCK_BUY / STOCK_SELL).
func orderType(side enum.Side) int {
	switch side {
	case enum.SideSell:
		return 24
	default:
		return 23
	}
}

func newSignalID() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigFastest.NewEncoder(w).Encode(body)
}
