package entity

import "time"

// User is an account holder. Medications are owned by exactly one user.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Age          *int      `gorm:"column:age"`
	HeightCm     *int      `gorm:"column:height_cm"`
	WeightKg     *int      `gorm:"column:weight_kg"`
	Region       *string   `gorm:"column:region"`
	LineUserID   *string   `gorm:"column:line_user_id;index"` // Linked LINE account for push reminders
	LineLinkCode *string   `gorm:"column:line_link_code"`     // One-time code the user sends to the bot
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// HasLine reports whether a LINE account is linked.
func (u *User) HasLine() bool {
	return u.LineUserID != nil && *u.LineUserID != ""
}
