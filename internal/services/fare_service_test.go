package services

import (
	"testing"

	"railbooking/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	var svc FareService

	cases := []struct {
		name  string
		base  models.Money
		count int
		want  models.Money
	}{
		{"two 2nd-ac seats", 1250, 2, 2750},
		{"single seat", 890, 1, 979},
		{"rounds half up", 895, 1, 985}, // 984.5 -> 985
		{"zero passengers", 1250, 0, 0},
		{"negative base", -10, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.Quote(tc.base, tc.count))
		})
	}
}

func TestPerPassengerSumsBack(t *testing.T) {
	var svc FareService

	parts := svc.PerPassenger(2751, 2)
	assert.Len(t, parts, 2)

	var sum models.Money
	for _, p := range parts {
		sum += p
	}
	assert.Equal(t, models.Money(2751), sum)
	assert.Equal(t, models.Money(1376), parts[0]) // remainder lands on the first passenger
	assert.Equal(t, models.Money(1375), parts[1])
}

func TestRefund_HalfOfPaid(t *testing.T) {
	var svc FareService

	paid := []models.Money{2250, 2250}
	assert.Equal(t, models.Money(1125), svc.Refund(paid, []int{0}))
	assert.Equal(t, models.Money(2250), svc.Refund(paid, []int{0, 1}))
}

func TestRefund_NeverExceedsPaid(t *testing.T) {
	svc := FareService{Policy: FlatRefundPolicy{Percent: 150}}

	paid := []models.Money{1000}
	assert.Equal(t, models.Money(1000), svc.Refund(paid, []int{0}))
}

func TestRefund_IgnoresOutOfRangeIndices(t *testing.T) {
	var svc FareService

	paid := []models.Money{500}
	assert.Equal(t, models.Money(0), svc.Refund(paid, []int{-1, 5}))
}

func TestRefund_FullManifestMatchesPolicy(t *testing.T) {
	svc := FareService{Policy: FlatRefundPolicy{Percent: 50}}

	paid := svc.PerPassenger(svc.Quote(1250, 3), 3)
	all := []int{0, 1, 2}

	var want models.Money
	for _, p := range paid {
		want += FlatRefundPolicy{Percent: 50}.RefundFor(p)
	}
	assert.Equal(t, want, svc.Refund(paid, all))
}
