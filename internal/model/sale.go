package model

import "github.com/google/uuid"

// Sale is an immutable record of a quantity of a product sold at a price.
// Deleting a sale never touches the product's quantity.
type Sale struct {
	BaseModel
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product       *Product  `json:"product,omitempty" validate:"-"`
	Quantity      int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price         float64   `gorm:"not null" json:"price" validate:"gte=0"`
	Total         float64   `gorm:"not null" json:"total"` // Snapshot price * quantity
	CustomerName  string    `gorm:"type:varchar(255)" json:"customer_name,omitempty" validate:"max=255"`
	PaymentMethod string    `gorm:"type:varchar(20)" json:"payment_method,omitempty" validate:"max=20"` // cash, credit_card, debit_card
}

// Revenue is the sale's contribution to revenue figures.
func (s *Sale) Revenue() float64 {
	return float64(s.Quantity) * s.Price
}
