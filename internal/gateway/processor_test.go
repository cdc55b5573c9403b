package gateway

import (
	"context"
	"testing"
)

func TestStaticProcessorApproves(t *testing.T) {
	receipt, err := StaticProcessor{}.RequestDisbursement(context.Background(), DisbursementRequest{
		AccountID: "11111111-1111-1111-1111-111111111111",
		Email:     "school@example.com",
		Amount:    500,
	})
	if err != nil {
		t.Fatalf("request disbursement: %v", err)
	}
	if receipt.Reference == "" {
		t.Fatal("expected a reference")
	}
	if receipt.Code != "00" || receipt.Message != "approved" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}
