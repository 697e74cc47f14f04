package models

import "time"

const TableStatusAvailable = "disponible"

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"type:varchar(50);not null" json:"numero"`
	Capacity  int       `gorm:"not null" json:"capacidad"`
	Status    string    `gorm:"type:varchar(50);not null;default:'disponible'" json:"estado"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (t *Table) GetID() uint   { return t.ID }
func (t *Table) SetID(id uint) { t.ID = id }
