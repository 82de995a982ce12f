package model

type Project struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Color     string  `gorm:"type:varchar(20);not null" json:"color"`
	Icon      *string `json:"icon,omitempty"`
	IsDefault bool    `json:"is_default"`
}
