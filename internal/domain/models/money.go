package models

// Money is an amount in whole rupees. Fares are quoted and settled in
// whole currency units; rounding happens once, at quote time.
type Money int64
