package product

// Product represents a catalog record. Sku is the business key.
type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:50;not null"`
	Sku         string  `gorm:"size:20;uniqueIndex;not null"`
	Description string  `gorm:"size:50;not null"`
	Image       string  `gorm:"size:50;not null"`
	Price       float64 `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for the Product entity.
func (Product) TableName() string {
	return "Products"
}
