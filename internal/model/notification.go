package model

// Notification maps to the notifications table. The engine writes these
// fire-and-forget; delivery beyond the inbox (mail, push) belongs to
// external collaborators.
type Notification struct {
	NotificationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	Recipient      string `gorm:"type:varchar(100);not null;index"               json:"recipient"`
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string `gorm:"type:text;not null"                             json:"message"`
	Type           string `gorm:"type:varchar(50);not null"                      json:"type"`
	Read           bool   `gorm:"not null;default:false"                         json:"read"`
	BaseModel
}

// TableName sets the table name.
func (Notification) TableName() string { return "notifications" }
