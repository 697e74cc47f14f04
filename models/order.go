package models

import (
	"fmt"
	"time"
)

// Order is one product requested for a table. TableID is a plain reference: the store
// does not check that the table exists.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableID   uint      `gorm:"not null;index" json:"mesa"`
	Product   string    `gorm:"type:varchar(255);not null" json:"producto"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (o *Order) GetID() uint   { return o.ID }
func (o *Order) SetID(id uint) { o.ID = id }

// TicketNumber identifies the order on kitchen tickets.
func (o *Order) TicketNumber() string {
	return fmt.Sprintf("COM-%d-%06d", o.TableID, o.ID)
}
