package validation

import (
	"fmt"
	"regexp"
	"strings"

	"codgate/internal/metrics"
	"codgate/internal/model"
)

// Error is a client-correctable rejection of a submission. The message is
// safe to surface to the storefront widget verbatim.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// phoneRe is the permissive storefront phone format: 8-15 characters drawn
// from digits, spaces, '+', '-', '(' and ')'.
var phoneRe = regexp.MustCompile(`^[0-9 +\-()]{8,15}$`)

// Validate checks a submission against shop policy and basic format rules.
// Rules run in order and short-circuit on the first failure; only one error
// is ever reported. No side effects beyond a rejection counter.
func Validate(sub *model.OrderSubmission, policy model.ValidationPolicy) error {
	if err := validate(sub, policy); err != nil {
		metrics.ValidationFailures.WithLabelValues(err.Field).Inc()
		return err
	}
	return nil
}

func validate(sub *model.OrderSubmission, policy model.ValidationPolicy) *Error {
	required := make(map[string]bool, len(policy.RequiredFields))
	for _, f := range policy.RequiredFields {
		required[f] = true
	}

	if required["name"] && strings.TrimSpace(sub.CustomerName) == "" {
		return &Error{Field: "name", Message: "Name is required"}
	}
	if required["phone"] && strings.TrimSpace(sub.Phone) == "" {
		return &Error{Field: "phone", Message: "Phone number is required"}
	}
	if required["address"] && strings.TrimSpace(sub.Address) == "" {
		return &Error{Field: "address", Message: "Address is required"}
	}

	// A present phone must conform even when the policy does not require it.
	if phone := strings.TrimSpace(sub.Phone); phone != "" && !phoneRe.MatchString(phone) {
		return &Error{Field: "phone", Message: "Phone number format is invalid"}
	}

	maxQuantity := policy.MaxQuantity
	if maxQuantity <= 0 {
		maxQuantity = model.DefaultMaxQuantity
	}
	if sub.Quantity <= 0 {
		return &Error{Field: "quantity", Message: "Quantity must be a positive number"}
	}
	if sub.Quantity > maxQuantity {
		return &Error{Field: "quantity", Message: fmt.Sprintf("Quantity cannot exceed %d", maxQuantity)}
	}

	if strings.TrimSpace(sub.ProductID) == "" {
		return &Error{Field: "product_id", Message: "Product ID is required"}
	}
	if strings.TrimSpace(sub.VariantID) == "" {
		return &Error{Field: "variant_id", Message: "Variant ID is required"}
	}
	if strings.TrimSpace(sub.ProductTitle) == "" {
		return &Error{Field: "product_title", Message: "Product title is required"}
	}

	if sub.UnitPrice <= 0 {
		return &Error{Field: "unit_price", Message: "Price must be a positive number"}
	}

	return nil
}
