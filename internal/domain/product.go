package domain

import "time"

// Product represents a product in the catalog. The ID is assigned by the
// database on insert; the timestamp columns are internal and never serialized.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Price        float64   `json:"price" db:"price"`
	Availability bool      `json:"availability" db:"availability"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}
