package models

// Category groups products. Names are stored upper-cased and are unique.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:nombre;uniqueIndex;not null"`
}

func (c *Category) TableName() string {
	return "categoria"
}
