package model

import "time"

// CustomerRecord is the denormalized autofill cache keyed by (shop, phone).
// Upserted opportunistically on every submission carrying a phone number;
// last write wins.
type CustomerRecord struct {
	ID         int64     `json:"id" db:"id"`
	ShopID     string    `json:"shop_id" db:"shop_id"`
	Phone      string    `json:"phone" db:"phone"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	Province   string    `json:"province" db:"province"`
	PostalCode string    `json:"postal_code" db:"postal_code"`
	Email      string    `json:"email" db:"email"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerMatch is a resolved identity used purely for autofill. Missing
// fields are empty strings, never null, so the widget can treat the payload
// uniformly.
type CustomerMatch struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Email      string `json:"email"`
	Source     string `json:"-"`
}
