package models

import "gorm.io/gorm"

// AutoMigrate creates the tables together with the unique name indexes and
// foreign keys the repositories rely on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Product{}, &ListHeader{}, &ListItem{})
}
