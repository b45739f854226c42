package models

import "time"

// StatusAtribuicao is the lifecycle state of an assignment
type StatusAtribuicao string

const (
	StatusPendente    StatusAtribuicao = "Pendente"
	StatusEmAndamento StatusAtribuicao = "Em Andamento"
	StatusRealizado   StatusAtribuicao = "Realizado"
	StatusValidado    StatusAtribuicao = "Validado"
	StatusRecusado    StatusAtribuicao = "Recusado"
)

// Assignment links a user to a course they are expected to complete.
// CriadoPorUsuario marks assignments that exist only because the user
// enrolled on their own, as opposed to ones pushed by a lotação-wide
// course assignment.
type Assignment struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	UserID           string           `json:"user_id" gorm:"index;not null"`
	CursoID          string           `json:"curso_id" gorm:"index;not null"`
	Status           StatusAtribuicao `json:"status" gorm:"default:'Pendente'"`
	CriadoPorUsuario bool             `json:"criado_por_usuario" gorm:"not null;default:false"`
	CertificadoID    *string          `json:"certificado_id"`
	AtribuidoEm      time.Time        `json:"atribuido_em"`
	DataConclusao    *time.Time       `json:"data_conclusao"`
	DataValidacao    *time.Time       `json:"data_validacao"`

	Curso       *Course      `json:"curso,omitempty" gorm:"foreignKey:CursoID"`
	Certificado *Certificate `json:"certificado,omitempty" gorm:"foreignKey:CertificadoID"`
}

func (Assignment) TableName() string {
	return "atribuicoes"
}
