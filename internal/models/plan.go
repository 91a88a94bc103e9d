package models

// Plan is a purchasable tier. The catalog is seeded by migrations and
// read-only at runtime, so plans keep their small stable integer ids.
type Plan struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"duration"`
	Features     []string `json:"features"`
}
