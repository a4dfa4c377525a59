package model

// AddressParseResult is the structured shipping tuple derived from a
// free-text delivery address. Always fully populated; inconclusive parses
// fall back to the shop's region defaults.
type AddressParseResult struct {
	Address1   string `json:"address1"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

// RegionDefaults fills the gaps the address parser cannot infer.
type RegionDefaults struct {
	City       string
	Province   string
	PostalCode string
}

// PriceCalculation is the derived bundle pricing breakdown. Stateless,
// never persisted, recomputed on demand. Monetary fields are rounded to
// 2 decimal places; DiscountPercent is a ratio expressed 0-100.
type PriceCalculation struct {
	Original        float64 `json:"original"`
	Discounted      float64 `json:"discounted"`
	Savings         float64 `json:"savings"`
	DiscountPercent float64 `json:"discount_percent"`
}

// PartialCODSplit records how a partial-COD sale divides into the advance
// collected online and the remainder collected at delivery, together with
// the external draft-order reference used for reconciliation.
type PartialCODSplit struct {
	TotalOrderValue float64 `json:"total_order_value"`
	AdvanceAmount   float64 `json:"advance_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	DraftOrderID    string  `json:"draft_order_id"`
	DraftOrderName  string  `json:"draft_order_name"`
	CheckoutURL     string  `json:"checkout_url"`
}
