package models

// Product represents a product that can be added to shopping lists.
// It belongs to exactly one category and its name is unique.
type Product struct {
	ID          uint     `gorm:"primaryKey"`
	Name        string   `gorm:"column:nombre;uniqueIndex;not null"`
	Description string   `gorm:"column:descripcion;not null"`
	CategoryID  uint     `gorm:"column:categoria_id;not null;index"`
	Category    Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE"`
}

func (p *Product) TableName() string {
	return "producto"
}
