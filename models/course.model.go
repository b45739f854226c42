package models

import "time"

// Course is a training offered or required by the organization
type Course struct {
	ID             string `json:"id" gorm:"primaryKey"`
	Titulo         string `json:"titulo" gorm:"not null"`
	Certificadora  string `json:"certificadora"`
	CargaHoraria   int    `json:"carga_horaria"`
	Link           string `json:"link"`
	Tema           string `json:"tema"`
	AnoGD          string `json:"ano_gd"`
	LotacaoID      string `json:"lotacao_id"` // target organizational unit
	AtribuirATodos bool   `json:"atribuir_a_todos" gorm:"default:false"`

	Conteudo        string `json:"conteudo"`
	PublicoAlvo     string `json:"publico_alvo"`
	Disponibilidade string `json:"disponibilidade"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

func (Course) TableName() string {
	return "cursos"
}
