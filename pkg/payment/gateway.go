package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
)

// gatewayMethod is the redirect variant: it creates a payment order at the
// provider, sends the customer to the returned link, and is settled later by
// the provider webhook (confirmed through Verify).
type gatewayMethod struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGateway(baseURL, apiKey string) Method {
	return &gatewayMethod{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *gatewayMethod) Code() string { return entity.MethodCard }

type gatewayCreateReq struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

type gatewayCreateRes struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
	Message     string `json:"message"`
}

func (g *gatewayMethod) Process(ctx context.Context, req Request) Result {
	body, err := json.Marshal(gatewayCreateReq{
		Amount:    req.Amount.StringFixed(2),
		Currency:  req.Currency,
		Reference: req.Reference,
	})
	if err != nil {
		return Result{FailReason: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return Result{FailReason: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	httpRes, err := g.client.Do(httpReq)
	if err != nil {
		// Network errors become a failed result; the pipeline still gets to
		// record a terminal transaction status.
		return Result{FailReason: fmt.Sprintf("gateway unreachable: %v", err)}
	}
	defer httpRes.Body.Close()

	var out gatewayCreateRes
	if err := json.NewDecoder(httpRes.Body).Decode(&out); err != nil {
		return Result{FailReason: fmt.Sprintf("gateway response: %v", err)}
	}
	if httpRes.StatusCode != http.StatusOK && httpRes.StatusCode != http.StatusCreated {
		reason := out.Message
		if reason == "" {
			reason = fmt.Sprintf("gateway returned %d", httpRes.StatusCode)
		}
		return Result{FailReason: reason}
	}

	return Result{Success: true, PaymentID: out.ID, RedirectURL: out.RedirectURL}
}

type gatewayFetchRes struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (g *gatewayMethod) Verify(ctx context.Context, gatewayRef string) (*Verification, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/payments/"+gatewayRef, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	httpRes, err := g.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway verify returned %d", httpRes.StatusCode)
	}

	var out gatewayFetchRes
	if err := json.NewDecoder(httpRes.Body).Decode(&out); err != nil {
		return nil, err
	}

	paid := out.Status == "captured" || out.Status == "paid"
	return &Verification{Paid: paid, GatewayRef: out.ID, RawStatus: out.Status}, nil
}
