package services

import (
	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
	"railbooking/internal/utils"
)

// TaxPercent is the flat tax applied on top of base fares.
const TaxPercent = 10

// FareService computes quotes and refunds. Policy defaults to a flat
// 50% refund when unset.
type FareService struct {
	Policy domain.RefundPolicy
}

// Quote returns base fare x passengers plus tax, rounded half-up to the
// nearest whole rupee.
func (s FareService) Quote(baseFare models.Money, passengerCount int) models.Money {
	if baseFare < 0 || passengerCount <= 0 {
		return 0
	}
	gross := int64(baseFare) * int64(passengerCount) * (100 + TaxPercent)
	return models.Money(utils.RoundHalfUp(gross, 100))
}

// PerPassenger splits a quoted total evenly across the manifest. The
// remainder goes to the first passenger so the parts always sum back to
// the total.
func (s FareService) PerPassenger(total models.Money, passengerCount int) []models.Money {
	if passengerCount <= 0 {
		return nil
	}
	each := int64(total) / int64(passengerCount)
	rem := int64(total) % int64(passengerCount)
	out := make([]models.Money, passengerCount)
	for i := range out {
		out[i] = models.Money(each)
	}
	out[0] += models.Money(rem)
	return out
}

// Refund sums the policy refund for each cancelled passenger.
// paidPerPassenger is indexed by manifest position.
func (s FareService) Refund(paidPerPassenger []models.Money, indices []int) models.Money {
	policy := s.policy()
	var total models.Money
	for _, idx := range indices {
		if idx < 0 || idx >= len(paidPerPassenger) {
			continue
		}
		total += policy.RefundFor(paidPerPassenger[idx])
	}
	return total
}

func (s FareService) policy() domain.RefundPolicy {
	if s.Policy != nil {
		return s.Policy
	}
	return FlatRefundPolicy{Percent: 50}
}

// FlatRefundPolicy refunds a fixed percentage of what was paid.
type FlatRefundPolicy struct {
	Percent int
}

func (p FlatRefundPolicy) RefundFor(paid models.Money) models.Money {
	if paid <= 0 || p.Percent <= 0 {
		return 0
	}
	pct := p.Percent
	if pct > 100 {
		pct = 100
	}
	return models.Money(int64(paid) * int64(pct) / 100)
}
