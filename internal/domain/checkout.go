package domain

import "time"

type CheckoutStep string

const (
	StepShippingInfo CheckoutStep = "SHIPPING_INFO"
	StepPayment      CheckoutStep = "PAYMENT"
	StepProcessing   CheckoutStep = "PROCESSING"
	StepConfirmation CheckoutStep = "CONFIRMATION"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == StepConfirmation
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	return string(s)
}

// CanTransitionTo encodes the legal step movements: forward one step at a
// time, backward only from Payment to ShippingInfo.
func CanTransitionTo(from, to CheckoutStep) bool {
	switch from {
	case StepShippingInfo:
		return to == StepPayment
	case StepPayment:
		return to == StepProcessing || to == StepShippingInfo
	case StepProcessing:
		return to == StepConfirmation || to == StepPayment
	default:
		return false
	}
}

type ShippingInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (s ShippingInfo) Complete() bool {
	return s.FirstName != "" && s.LastName != "" && s.Address != "" &&
		s.City != "" && s.PostalCode != ""
}

// CartSnapshotItem mirrors a cart line at the moment checkout was entered.
type CartSnapshotItem struct {
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	Size        SizeVariant `json:"size"`
	Quantity    int         `json:"quantity"`
	UnitPrice   float64     `json:"unit_price"`
	Subtotal    float64     `json:"subtotal"`
}

// CartSnapshot represents the full cart state at checkout time
type CartSnapshot struct {
	Items       []CartSnapshotItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	Currency    string             `json:"currency"`
	CapturedAt  time.Time          `json:"captured_at"`
}

// CheckoutSession is ephemeral purchase state. It is never persisted;
// a session lives in memory for exactly one checkout attempt.
type CheckoutSession struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Step          CheckoutStep `json:"step"`
	Shipping      ShippingInfo `json:"shipping"`
	Snapshot      CartSnapshot `json:"snapshot"`
	Processing    bool         `json:"processing"`
	OrderNumber   string       `json:"order_number,omitempty"`
	DeclineReason string       `json:"decline_reason,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
