package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Image       string     `json:"image"`
	Sizes       string     `json:"sizes"`  // comma-separated, e.g. "S,M,L,XL"
	Colors      string     `json:"colors"` // comma-separated
	Featured    bool       `gorm:"default:false" json:"featured"` // shown on /productos/seleccionados
	Stock       int        `json:"stock"`
	Categories  []Category `gorm:"many2many:product_categories;" json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
