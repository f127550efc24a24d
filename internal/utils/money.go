package utils

import (
	"fmt"
	"strconv"
)

// FormatINR renders a whole-rupee amount with Indian digit grouping,
// e.g. 123456 -> "₹1,23,456".
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%s", sign, groupIndian(amount))
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	// last three digits, then groups of two
	head := str[:len(str)-3]
	out := str[len(str)-3:]
	for len(head) > 2 {
		out = head[len(head)-2:] + "," + out
		head = head[:len(head)-2]
	}
	return head + "," + out
}

// RoundHalfUp rounds n/d to the nearest whole unit, ties away from
// zero. Used once per fare quote.
func RoundHalfUp(n, d int64) int64 {
	if d == 0 {
		return 0
	}
	if (n < 0) != (d < 0) {
		return (n - d/2) / d
	}
	return (n + d/2) / d
}
