package models

import (
	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	FullName string `json:"nome_completo"`
	Room     string `json:"sala"`
}
