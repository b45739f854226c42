package models

import "time"

// Perfil is the authorization level stored for a user
type Perfil string

const (
	PerfilTrabalhador Perfil = "Trabalhador"
	PerfilChefia      Perfil = "Chefia"
	PerfilUDP         Perfil = "UDP"
)

// User mirrors directory attributes locally. The ID is the directory
// sAMAccountName. Perfil is authoritative here only: directory syncs
// refresh every other field but never touch it.
type User struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Nome       string `json:"nome" gorm:"not null"`
	Email      string `json:"email"`
	Perfil     Perfil `json:"perfil" gorm:"not null;default:'Trabalhador'"`
	Lotacao    string `json:"lotacao"`     // department, upper-cased
	NomeChefia string `json:"nome_chefia"` // direct manager name, upper-cased
	Cargo      string `json:"cargo"`
	Matricula  string `json:"matricula"`
	CPF        string `json:"cpf"`
	Vinculo    string `json:"vinculo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}
