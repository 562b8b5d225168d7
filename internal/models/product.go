package models

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name   string  `json:"nome"`
	Price  float64 `json:"preco"`
	Active bool    `json:"ativo"`
}
