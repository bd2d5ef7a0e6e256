package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is one marketplace catalog entry.
type Product struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:32;index"`
	Price       float64
	Rating      float64
	Stock       int
	ImageURL    string
	IsPremium   bool
	Features    datatypes.JSON
}
