package model

// StockLevel buckets a product's quantity on hand for display.
type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockOK     StockLevel = "ok"
)

type Product struct {
	BaseModel
	// SKU is unique among live rows only, so a deleted product frees it.
	SKU         string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_sku_live,where:deleted_at IS NULL" json:"sku" validate:"required,max=50"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Category    string  `gorm:"type:varchar(100);index" json:"category" validate:"max=100"`
	Price       float64 `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Description string  `gorm:"type:text" json:"description"`

	// Relasi
	Sales []Sale `json:"sales,omitempty"`
}

// Level classifies the on-hand quantity against the two thresholds.
func (p *Product) Level(low, medium int) StockLevel {
	switch {
	case p.Quantity < low:
		return StockLow
	case p.Quantity < medium:
		return StockMedium
	default:
		return StockOK
	}
}

// ProductResponse is the catalog view of a product, with its stock level attached.
type ProductResponse struct {
	Product
	StockLevel StockLevel `json:"stock_level"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse(low, medium int) ProductResponse {
	return ProductResponse{Product: *p, StockLevel: p.Level(low, medium)}
}
