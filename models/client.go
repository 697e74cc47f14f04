package models

import "time"

// Client is a restaurant guest. Email is expected to be unique but the store does not
// enforce it.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"nombre"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"apellido"`
	Email     string    `gorm:"type:varchar(255);not null;index" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Client) GetID() uint   { return c.ID }
func (c *Client) SetID(id uint) { c.ID = id }
