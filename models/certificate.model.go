package models

import "time"

// Certificate is proof of completion: an uploaded file or an external link
type Certificate struct {
	ID       string `json:"id" gorm:"primaryKey"`
	FilePath string `json:"file_path"`
	Link     string `json:"link"`
	Validado bool   `json:"validado" gorm:"not null;default:false"`
	CursoID  string `json:"curso_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
}

func (Certificate) TableName() string {
	return "certificados"
}
