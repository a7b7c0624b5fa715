package models

import (
	"github.com/shopspring/decimal"
)

// ListHeader is a named shopping list. Names are not unique.
type ListHeader struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:nombre;not null"`
}

func (l *ListHeader) TableName() string {
	return "listaencabezado"
}

// ListItem is a product and quantity scoped to one list header.
type ListItem struct {
	ID           uint            `gorm:"primaryKey"`
	ProductID    uint            `gorm:"column:producto_id;not null;index"`
	Product      Product         `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE"`
	Quantity     decimal.Decimal `gorm:"column:cantidad;type:decimal(10,2);not null"`
	ListHeaderID uint            `gorm:"column:listaencabezado_id;not null;index"`
	ListHeader   ListHeader      `gorm:"foreignKey:ListHeaderID;constraint:OnUpdate:CASCADE"`
}

func (i *ListItem) TableName() string {
	return "listaitems"
}

// ListWithItems is a header merged with its items, ordered by item id.
type ListWithItems struct {
	ListHeader
	Items []ListItem
}
