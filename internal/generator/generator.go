package generator

import (
	"fmt"

	"codgate/internal/model"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// indianCities pairs a city with its state so generated addresses stay
// internally consistent, the way real submissions are.
var indianCities = []struct {
	city     string
	state    string
	pinStart int
}{
	{"Mumbai", "Maharashtra", 400001},
	{"Pune", "Maharashtra", 411001},
	{"Delhi", "Delhi", 110001},
	{"Bengaluru", "Karnataka", 560001},
	{"Chennai", "Tamil Nadu", 600001},
	{"Hyderabad", "Telangana", 500001},
	{"Ahmedabad", "Gujarat", 380001},
	{"Kolkata", "West Bengal", 700001},
	{"Jaipur", "Rajasthan", 302001},
	{"Lucknow", "Uttar Pradesh", 226001},
}

// NewSubmission returns one fully random storefront submission for the
// given shop. Used by the load producer and tests.
func NewSubmission(shopID string) model.OrderSubmission {
	loc := indianCities[gofakeit.Number(0, len(indianCities)-1)]
	pin := loc.pinStart + gofakeit.Number(0, 98)

	return model.OrderSubmission{
		ShopID:       shopID,
		CustomerName: gofakeit.Name(),
		Phone:        fmt.Sprintf("+91 %d", gofakeit.Number(7000000000, 9999999999)),
		Address: fmt.Sprintf("%d %s, %s, %s %d",
			gofakeit.Number(1, 400), gofakeit.StreetName(), loc.city, loc.state, pin),
		Email:        gofakeit.Email(),
		ProductID:    uuid.New().String(),
		VariantID:    uuid.New().String(),
		ProductTitle: gofakeit.ProductName(),
		Quantity:     gofakeit.Number(1, 5),
		UnitPrice:    float64(gofakeit.Number(199, 4999)),
		Notes:        gofakeit.RandomString([]string{"", "", "Call before delivery", "Leave at the gate"}),
	}
}
