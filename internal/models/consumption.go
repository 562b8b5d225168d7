package models

import (
	"time"

	"gorm.io/gorm"
)

// Consumption is one line-item purchase by one student. UnitPrice is a copy
// of the product's price at the time of recording; later price edits on the
// product must not change historical rows.
type Consumption struct {
	gorm.Model
	StudentID uint      `json:"aluno_id"`
	ProductID uint      `json:"produto_id"`
	Quantity  int       `json:"quantidade"`
	UnitPrice float64   `json:"preco_unitario"`
	Date      time.Time `json:"data_consumo"`
}

// Total is the row's contribution to any aggregate.
func (c Consumption) Total() float64 {
	return float64(c.Quantity) * c.UnitPrice
}
