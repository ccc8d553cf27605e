package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/wichananm65/mitrro-backend/internal/config"
)

var (
	// ErrGatewayUnavailable is returned while the breaker is open.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrGatewayRejected wraps a non-2xx answer from the gateway.
	ErrGatewayRejected = errors.New("payment gateway rejected request")
)

// OrderRequest is the body of a gateway order creation call. Amount is in
// minor units.
type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// GatewayOrder is the gateway's record of a pending payment.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (GatewayOrder, error)
}

// MinorUnits converts a major-unit amount to the gateway's integer minor units.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// HTTPGateway talks to the gateway REST API. Calls are bounded by a timeout and
// go through a circuit breaker; failures are never retried.
type HTTPGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	timeout   time.Duration
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[GatewayOrder]
}

func NewHTTPGateway(cfg config.GatewayConfig, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{}
	}
	g := &HTTPGateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		timeout:   cfg.Timeout,
		client:    client,
	}
	g.breaker = gobreaker.NewCircuitBreaker[GatewayOrder](gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a rejected request means the gateway is up
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrGatewayRejected)
		},
	})
	return g
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, req OrderRequest) (GatewayOrder, error) {
	out, err := g.breaker.Execute(func() (GatewayOrder, error) {
		return g.createOrder(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return GatewayOrder{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return out, err
}

func (g *HTTPGateway) createOrder(ctx context.Context, req OrderRequest) (GatewayOrder, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("encode gateway order: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.keyID, g.keySecret)

	res, err := g.client.Do(httpReq)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("call gateway: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("read gateway response: %w", err)
	}
	if res.StatusCode >= 500 {
		return GatewayOrder{}, fmt.Errorf("gateway returned %d", res.StatusCode)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return GatewayOrder{}, fmt.Errorf("%w: status %d: %s", ErrGatewayRejected, res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out GatewayOrder
	if err := json.Unmarshal(raw, &out); err != nil {
		return GatewayOrder{}, fmt.Errorf("decode gateway order: %w", err)
	}
	if out.ID == "" {
		return GatewayOrder{}, fmt.Errorf("%w: response without order id", ErrGatewayRejected)
	}
	return out, nil
}
