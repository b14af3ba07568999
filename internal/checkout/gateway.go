package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ChargeStatus string

const (
	ChargeStatusSuccess  ChargeStatus = "SUCCESS"
	ChargeStatusDeclined ChargeStatus = "DECLINED"
)

type PaymentCard struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

type ChargeRequest struct {
	CheckoutID string
	Amount     float64
	Currency   string
	Card       PaymentCard
}

type ChargeResult struct {
	Status    ChargeStatus
	PaymentID string
	// Reason carries the decline explanation; empty on success.
	Reason string
}

// PaymentGateway authorizes a charge. A declined charge is a normal
// result, not an error; errors mean the gateway itself was unreachable.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// SimulatedGateway is the deterministic stand-in used until a real
// acquirer integration exists. Card numbers ending in 0002 decline,
// everything else succeeds after a short processing delay.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if req.Amount <= 0 {
		return &ChargeResult{Status: ChargeStatusDeclined, Reason: "invalid amount"}, nil
	}
	if strings.HasSuffix(strings.TrimSpace(req.Card.Number), "0002") {
		return &ChargeResult{Status: ChargeStatusDeclined, Reason: "card declined"}, nil
	}

	return &ChargeResult{
		Status:    ChargeStatusSuccess,
		PaymentID: uuid.NewString(),
	}, nil
}
