package model

// ReadMarker records the highest message id a user has acknowledged seeing
// in a channel (watermark pattern). Absence of a row means the channel was
// never opened and every message in it counts as unread.
type ReadMarker struct {
	Username    string `gorm:"primaryKey;type:varchar(255)" json:"username"`
	ChannelName string `gorm:"primaryKey;type:varchar(255)" json:"channel_name"`
	LastSeenID  int64  `gorm:"not null;default:0" json:"last_seen_id"`
}

func (ReadMarker) TableName() string {
	return "read_markers"
}
