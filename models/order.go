package models

import "gorm.io/gorm"

type Order struct {
	gorm.Model
	ID          uint    `gorm:"primary_key" autoIncrement:"true"`
	CustomerID  uint    `gorm:"not null;index" json:"customer_id"`
	Customer    User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL; foreignKey:CustomerID"`
	TotalAmount float64 `gorm:"check:total_amount >= 0; not null" json:"total_amount"`
}

// OrderItem snapshots the listing's price at purchase time. InventoryID is a
// plain reference, not a constrained foreign key, so order history survives a
// farmer hard-deleting the listing.
type OrderItem struct {
	gorm.Model
	ID          uint    `gorm:"primary_key" autoIncrement:"true"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	Order       Order   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE; foreignKey:OrderID"`
	InventoryID uint    `gorm:"not null" json:"inventory_id"`
	Quantity    int     `gorm:"check:quantity > 0; not null" json:"quantity"`
	Price       float64 `gorm:"check:price >= 0; not null" json:"price"`
}
