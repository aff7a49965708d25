package model

const (
	// ChannelPublic is a channel anyone may join.
	ChannelPublic = "PUBLIC"
	// ChannelDirect is a two-member channel created outside the public list.
	ChannelDirect = "DIRECT"

	// GeneralChannel is the well-known channel every new user is added to.
	GeneralChannel = "General"
)

// Channel 频道模型
type Channel struct {
	Name string `gorm:"primaryKey;type:varchar(255)" json:"name"`
	Type string `gorm:"not null;type:varchar(16)" json:"type"`
}

func (Channel) TableName() string {
	return "channels"
}

// Membership is the edge asserting a user belongs to a channel and may
// read and post there.
type Membership struct {
	Username    string `gorm:"primaryKey;type:varchar(255)" json:"username"`
	ChannelName string `gorm:"primaryKey;type:varchar(255)" json:"channel_name"`
}

func (Membership) TableName() string {
	return "membership"
}
