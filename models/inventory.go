package models

import "gorm.io/gorm"

type Inventory struct {
	gorm.Model
	ID        uint    `gorm:"primary_key" autoIncrement:"true"`
	FarmerID  uint    `gorm:"not null;index" json:"farmer_id"`
	Farmer    User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE; foreignKey:FarmerID"`
	CropName  string  `gorm:"not null;" json:"crop_name"`
	Price     float64 `gorm:"check:price >= 0; not null" json:"price"`
	Quantity  int     `gorm:"check:quantity >= 0; not null" json:"quantity"`
	Available bool    `gorm:"default:true" json:"available"`
	ImageURL  string  `json:"image_url"`
}

func (Inventory) TableName() string {
	return "inventory"
}
