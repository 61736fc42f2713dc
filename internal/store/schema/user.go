package schema

import "time"

// User represents the users table - the wallet to email directory
type User struct {
	UserID        uint64    `gorm:"column:user_id;primaryKey;autoIncrement"`
	WalletAddress string    `gorm:"column:wallet_address;not null;unique;type:varchar(58)"`
	Email         string    `gorm:"column:email;not null;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
