package entity

import "time"

// Schedule describes when reminders for a medication fire.
type Schedule struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	MedicationID uint   `gorm:"column:med_id;index;not null"`
	TimeOfDay    string `gorm:"column:time_of_day;size:5;not null"` // "08:30", 24h
	Timezone     string `gorm:"column:timezone;size:64;not null"`
	DaysOfWeek   string `gorm:"column:days_of_week;size:64;not null"` // "mon,wed,fri" or "daily"
	Enabled      bool   `gorm:"column:enabled;not null"`
	// Stored with an explicit UTC offset.
	LastReminderSentAt *time.Time `gorm:"column:last_reminder_sent_at"`

	Medication *Medication `gorm:"foreignKey:MedicationID"`
}

// TableName specifies the table name for the Schedule entity.
func (Schedule) TableName() string {
	return "schedules"
}
