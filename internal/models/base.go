package models

import "time"

// Base заменяет gorm.Model: удаление в инвентаре жёсткое, DeletedAt не нужен.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b Base) GetID() uint { return b.ID }

// Record is satisfied by every table model through the embedded Base.
type Record interface {
	GetID() uint
}

// All lists the models in migration order.
func All() []any {
	return []any{
		&Site{},
		&Vendor{},
		&HardwareType{},
		&HardwareStatus{},
		&HardwareModel{},
		&Location{},
		&Project{},
		&Cluster{},
		&Hardware{},
		&Switch{},
		&NetworkInterface{},
		&SwitchConnection{},
		&User{},
	}
}
