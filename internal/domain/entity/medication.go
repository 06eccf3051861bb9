package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Medication is one pillbox entry.
type Medication struct {
	ID                  uint            `gorm:"primaryKey;autoIncrement"`
	UserID              uint            `gorm:"column:user_id;index;not null"`
	Name                string          `gorm:"column:name;not null"`
	Purpose             *string         `gorm:"column:purpose"`
	DosageNotes         *string         `gorm:"column:dosage_notes;type:text"`
	AdultDosageGuidance *string         `gorm:"column:adult_dosage_guidance;type:text"`
	StockCount          int             `gorm:"column:stock_count;not null"`
	LowStockThreshold   int             `gorm:"column:low_stock_threshold;not null"`
	LastLowStockSentAt  *datatypes.Date `gorm:"column:last_low_stock_sent_at"`
	CreatedAt           time.Time       `gorm:"column:created_at"`

	User      *User       `gorm:"foreignKey:UserID"`
	Schedules []*Schedule `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Medication entity.
func (Medication) TableName() string {
	return "medications"
}

// IsLowStock reports whether the stock has fallen to or below the alert threshold.
func (m *Medication) IsLowStock() bool {
	return m.StockCount <= m.LowStockThreshold
}

// Decrement takes one dose out of stock, never going below zero.
func (m *Medication) Decrement() {
	if m.StockCount > 0 {
		m.StockCount--
	}
}
