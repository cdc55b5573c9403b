// Package gateway connects the ledger to an external payment processor for
// money leaving the platform.
package gateway

import (
	"context"

	"github.com/google/uuid"
)

// Processor represents a connector to an external disbursement gateway.
type Processor interface {
	RequestDisbursement(ctx context.Context, input DisbursementRequest) (Receipt, error)
}

// DisbursementRequest captures the details of a payout request.
type DisbursementRequest struct {
	AccountID string
	Email     string
	Amount    int64
}

// Receipt captures the gateway's response to a disbursement request.
type Receipt struct {
	Reference string
	Code      string
	Message   string
}

// StaticProcessor simulates a gateway that approves every request.
type StaticProcessor struct{}

// RequestDisbursement approves the payout with a synthetic reference.
func (StaticProcessor) RequestDisbursement(_ context.Context, _ DisbursementRequest) (Receipt, error) {
	return Receipt{Reference: uuid.NewString(), Code: "00", Message: "approved"}, nil
}
