package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the fichas and clientes tables and their indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Ficha{}, &Cliente{})
}
