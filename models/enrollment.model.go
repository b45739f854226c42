package models

import "time"

// Enrollment records a voluntary sign-up. The composite unique index is
// what turns a concurrent double-enroll into a constraint error instead
// of two rows.
type Enrollment struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"not null;uniqueIndex:idx_inscricao_user_curso"`
	CursoID    string    `json:"curso_id" gorm:"not null;uniqueIndex:idx_inscricao_user_curso"`
	InscritoEm time.Time `json:"inscrito_em"`

	Curso *Course `json:"curso,omitempty" gorm:"foreignKey:CursoID"`
}

func (Enrollment) TableName() string {
	return "inscricoes"
}
