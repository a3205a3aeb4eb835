package executor

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"main/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
)

const _requestTimeout = 15 * time.Second

// Client is the downstream order-execution capability: it accepts an action
// name with parameters and either returns a result or fails.
type Client interface {
	Api(ctx context.Context, action string, params map[string]any) (any, error)
}

// QMTClient forwards actions to a QMT execution server over HTTP.
type QMTClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewQMT creates a client for the execution server at baseURL.
func NewQMT(baseURL, token string, client *http.Client) *QMTClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &QMTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error"`
}

// Api posts the action with its parameters and returns the result payload.
func (c *QMTClient) Api(ctx context.Context, action string, params map[string]any) (any, error) {
	payload, err := sonic.ConfigFastest.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, "marshal params")
	}

	ctx, cancel := context.WithTimeout(ctx, _requestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/"+action,
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Token", c.token)

	resp, err := c.client.Do(r)
	if err != nil {
		return nil, errors.Wrapf(exception.ErrExecutionUnreachable, "%s: %+v", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(exception.ErrExecutionRejected, "%s: status %d", action, resp.StatusCode)
	}

	var data apiResponse
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	if !data.Success {
		return nil, errors.Wrapf(exception.ErrExecutionRejected, "%s: %s", action, data.Error)
	}

	return data.Data, nil
}

// OrderStock submits an order_stock action and returns the order id.
func OrderStock(ctx context.Context, c Client, stockCode string, orderType int, volume int64, priceType int, price float64) (string, error) {
	result, err := c.Api(ctx, "order_stock", map[string]any{
		"stock_code":   stockCode,
		"order_type":   orderType,
		"order_volume": volume,
		"price_type":   priceType,
		"price":        price,
	})
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	return fmt.Sprint(result), nil
}
