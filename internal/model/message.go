package model

import (
	"time"
)

// Message 消息模型
// Rows are immutable once appended; the only mutation is the admin-only
// delete, which removes the row entirely.
type Message struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChannelName string    `gorm:"index;not null;type:varchar(255)" json:"channel_name"`
	Username    string    `gorm:"index;not null;type:varchar(255)" json:"username"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	SentAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"sent_at"`
}

func (Message) TableName() string {
	return "messages"
}
