package services

import (
	"context"
	"fmt"
	"strings"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"

	"github.com/google/uuid"
)

// SimGateway stands in for the external payment processor. Tokens are
// declined when they carry the FAIL prefix, which payment tests and the
// demo UI rely on. The context deadline is the caller's timeout; when
// it fires the charge counts as a gateway failure.
type SimGateway struct{}

func (SimGateway) Charge(ctx context.Context, token string, amount models.Money) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.PaymentError{Reason: "gateway timeout", Err: err}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.PaymentError{Reason: "missing payment token"}
	}
	if amount <= 0 {
		return "", domain.PaymentError{Reason: "invalid amount"}
	}
	if strings.HasPrefix(strings.ToUpper(token), "FAIL") {
		return "", domain.PaymentError{Reason: "card declined"}
	}
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("TXN%s", strings.ToUpper(hex[:10])), nil
}
