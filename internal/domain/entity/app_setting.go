package entity

import "time"

// SettingDefaultCoverImage holds the cover image used when a PDF export names none
const SettingDefaultCoverImage = "report.default_cover_image"

// AppSetting is a global key/value setting
type AppSetting struct {
	Key       string    `gorm:"size:100;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedBy string    `gorm:"size:255" json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the AppSetting model
func (AppSetting) TableName() string {
	return "app_settings"
}
