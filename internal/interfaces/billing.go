package interfaces

import "context"

// PreapprovalRequest asks the payment processor to start a recurring charge.
type PreapprovalRequest struct {
	Reason      string  // shown on the payer's statement / checkout page
	PayerEmail  string
	AmountARS   float64 // monthly amount
	BackURL     string  // where the payer lands after checkout
	ExternalRef string  // our technician id, echoed back by the processor
}

// Preapproval is the processor's view of a recurring charge.
type Preapproval struct {
	ID          string
	Status      string // authorized/paused/cancelled/pending
	CheckoutURL string
	NextPayment string // RFC3339, may be empty
}

// PaymentProvider is the outbound port to the payment processor's HTTP API.
type PaymentProvider interface {
	CreatePreapproval(ctx context.Context, req *PreapprovalRequest) (*Preapproval, error)
	GetPreapproval(ctx context.Context, id string) (*Preapproval, error)
}
