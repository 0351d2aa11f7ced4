package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingCustomerField is returned when a required checkout field is blank.
	ErrMissingCustomerField = errors.New("required customer field is missing")
)

var validate = validator.New()

// Record is an assembled order. It is never mutated after Assemble returns it.
type Record struct {
	OrderNumber string     `json:"orderNumber"`
	OrderDate   string     `json:"orderDate"`
	OrderTime   string     `json:"orderTime"`
	Items       []LineItem `json:"items"`
	Total       float64    `json:"total"`
	Customer    Customer   `json:"customer"`
}

// LineItem is the order-time snapshot of a cart line.
type LineItem struct {
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	LineTotal float64 `json:"total"`
}

// Customer holds the checkout form. FullName, WhatsappPhone and DeliveryAddress
// are required; OwnerName and PromoCode are kept exactly as entered, empty when
// not provided.
type Customer struct {
	FullName        string `json:"fullName" validate:"required"`
	WhatsappPhone   string `json:"whatsappPhone" validate:"required"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	OwnerName       string `json:"ownerName"`
	PromoCode       string `json:"promoCode"`
}

// Validate checks the required fields.
func (c Customer) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: %s", ErrMissingCustomerField, strings.Join(fields, ", "))
	}
	return err
}

// ItemsSummary renders the items as "name (size) xQ = T₸" joined by "; ",
// the form the order spreadsheet and CSV export use.
func (r Record) ItemsSummary() string {
	parts := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		parts = append(parts, fmt.Sprintf("%s (%s) x%d = %s₸",
			item.Name, item.Size, item.Quantity, FormatAmount(item.LineTotal)))
	}
	return strings.Join(parts, "; ")
}
