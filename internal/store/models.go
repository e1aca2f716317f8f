package store

// User is created on first observed interaction and never deleted.
// Name keeps whatever the first interaction reported.
type User struct {
	ID     int64  `gorm:"primaryKey"`
	Name   string `gorm:"type:text"`
	Banned bool   `gorm:"not null;default:false"`
}

func (User) TableName() string { return "users" }

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message rows are append-only; ordering by ID reflects insertion order.
type Message struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	UserID  int64  `gorm:"index;not null"`
	Role    string `gorm:"type:varchar(16);not null"`
	Content string `gorm:"type:text;not null"`
}

func (Message) TableName() string { return "messages" }
