package models

// Crop is the seeded reference catalog. Listings reference crops by free-text
// name rather than by code, matching the loose schema of the marketplace.
type Crop struct {
	Code        string `gorm:"primaryKey;column:crop" json:"crop" binding:"required"`
	Name        string `gorm:"not null;" json:"name" binding:"required"`
	Description string `json:"description"`
}

func (Crop) TableName() string {
	return "crops"
}
