package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CuCryptos/cruise-photos/config"
)

// Gateway is the two-call payment surface the checkout flow depends on.
// Both calls are synchronous; the processor is the source of truth for
// actual money movement.
type Gateway interface {
	CreateOrder(items []LineItem, customerEmail string) (*Order, error)
	Charge(sourceToken string, amountCents int64, remoteOrderID, customerEmail, idempotencyKey string) (*ChargeResult, error)
}

type LineItem struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

type Order struct {
	ID         string `json:"id"`
	TotalCents int64  `json:"total"`
	State      string `json:"state"`
}

type ChargeResult struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount"`
	Status      string `json:"status"`
}

// GatewayError carries the processor's message for logging; handlers surface
// only a generic "Payment failed" to guests.
type GatewayError struct {
	Op      string
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("clover %s failed (%d): %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("clover %s failed: %s", e.Op, e.Message)
}

type CloverConfig struct {
	BaseURL      string
	EcommerceURL string
	MerchantID   string
	APIKey       string
	PrivateKey   string
	PublicKey    string
}

// Clover wraps the merchant order API and the ecommerce charge API.
type Clover struct {
	Config CloverConfig
	Client *http.Client
}

func NewClover() *Clover {
	baseURL := "https://sandbox.dev.clover.com"
	ecomURL := "https://scl-sandbox.dev.clover.com"
	if config.Config("CLOVER_ENVIRONMENT") == "production" {
		baseURL = "https://api.clover.com"
		ecomURL = "https://scl.clover.com"
	}
	return &Clover{
		Config: CloverConfig{
			BaseURL:      baseURL,
			EcommerceURL: ecomURL,
			MerchantID:   config.Config("CLOVER_MERCHANT_ID"),
			APIKey:       config.Config("CLOVER_API_KEY"),
			PrivateKey:   config.Config("CLOVER_ECOMMERCE_PRIVATE_KEY"),
			PublicKey:    config.Config("CLOVER_ECOMMERCE_PUBLIC_KEY"),
		},
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateOrder opens a remote order for the cart total, then attaches one
// line item per photo.
func (cl *Clover) CreateOrder(items []LineItem, customerEmail string) (*Order, error) {
	var total int64
	for _, item := range items {
		total += item.PriceCents * int64(item.Quantity)
	}

	body := map[string]interface{}{
		"state": "open",
		"total": total,
		"note":  "Online order - " + customerEmail,
	}
	var order Order
	url := fmt.Sprintf("%s/v3/merchants/%s/orders", cl.Config.BaseURL, cl.Config.MerchantID)
	if err := cl.post("create order", url, cl.Config.APIKey, "", body, &order); err != nil {
		return nil, err
	}

	for _, item := range items {
		lineURL := fmt.Sprintf("%s/v3/merchants/%s/orders/%s/line_items",
			cl.Config.BaseURL, cl.Config.MerchantID, order.ID)
		if err := cl.post("add line item", lineURL, cl.Config.APIKey, "", item, nil); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

// Charge captures the amount against a tokenized card. idempotencyKey is
// derived from the local order id, so a retried capture after a timeout
// cannot double-charge.
func (cl *Clover) Charge(sourceToken string, amountCents int64, remoteOrderID, customerEmail, idempotencyKey string) (*ChargeResult, error) {
	body := map[string]interface{}{
		"amount":        amountCents,
		"currency":      "usd",
		"source":        sourceToken,
		"capture":       true,
		"receipt_email": customerEmail,
		"metadata":      map[string]string{"orderId": remoteOrderID},
	}
	var result ChargeResult
	url := cl.Config.EcommerceURL + "/v1/charges"
	if err := cl.post("charge", url, cl.Config.PrivateKey, idempotencyKey, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches the remote order state, for manual reconciliation.
func (cl *Clover) GetOrder(remoteOrderID string) (*Order, error) {
	url := fmt.Sprintf("%s/v3/merchants/%s/orders/%s",
		cl.Config.BaseURL, cl.Config.MerchantID, remoteOrderID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &GatewayError{Op: "get order", Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+cl.Config.APIKey)

	resp, err := cl.Client.Do(req)
	if err != nil {
		return nil, &GatewayError{Op: "get order", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &GatewayError{Op: "get order", Status: resp.StatusCode, Message: readError(resp.Body)}
	}
	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, &GatewayError{Op: "get order", Message: err.Error()}
	}
	return &order, nil
}

// VerifyWebhookSignature always accepts.
// TODO: implement Clover's webhook signing check before wiring any
// webhook-driven reconciliation on top of this adapter.
func (cl *Clover) VerifyWebhookSignature(payload, signature string) bool {
	return true
}

func (cl *Clover) post(op, url, bearer, idempotencyKey string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &GatewayError{Op: op, Message: err.Error()}
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &GatewayError{Op: op, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := cl.Client.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &GatewayError{Op: op, Status: resp.StatusCode, Message: readError(resp.Body)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &GatewayError{Op: op, Message: err.Error()}
		}
	}
	return nil
}

func readError(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error.Message != "" {
			return body.Error.Message
		}
	}
	return string(raw)
}
