package userController

import (
	"strings"

	"gorm.io/gorm"

	"capacita/auth"
	"capacita/models"
)

// SyncUser upserts the local record for a directory identity. New users
// are created with perfil Trabalhador; existing users keep their stored
// perfil while every directory-sourced field is refreshed.
func SyncUser(db *gorm.DB, identity *auth.Identity) (*models.User, error) {
	managerName := strings.ToUpper(auth.FirstCN(identity.ManagerDN))
	department := strings.ToUpper(identity.Department)

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", identity.Username).First(&user)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return result.Error
			}
			user = models.User{
				ID:         identity.Username,
				Nome:       identity.DisplayName,
				Email:      identity.Email,
				Perfil:     models.PerfilTrabalhador,
				Lotacao:    department,
				NomeChefia: managerName,
				Cargo:      identity.Title,
				Matricula:  identity.EmployeeNumber,
			}
			return tx.Create(&user).Error
		}

		user.Nome = identity.DisplayName
		user.Email = identity.Email
		user.Lotacao = department
		user.NomeChefia = managerName
		user.Cargo = identity.Title
		user.Matricula = identity.EmployeeNumber
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a local user record
func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePerfil changes a user's role. Returns gorm.ErrRecordNotFound
// when the user does not exist.
func UpdatePerfil(db *gorm.DB, userID string, perfil models.Perfil) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	user.Perfil = perfil
	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWithCount is a listing row including the assignment count
type UserWithCount struct {
	models.User
	CourseCount int64 `json:"course_count"`
}

// ListUsers returns every user with its assignment count, optionally
// filtered by name and lotação substrings.
func ListUsers(db *gorm.DB, nome, lotacao string) ([]UserWithCount, error) {
	query := db.Model(&models.User{}).
		Select("usuarios.*, COALESCE(ac.course_count, 0) AS course_count").
		Joins("LEFT JOIN (SELECT user_id, COUNT(id) AS course_count FROM atribuicoes GROUP BY user_id) ac ON ac.user_id = usuarios.id").
		Order("usuarios.nome")

	if nome != "" {
		query = query.Where("usuarios.nome LIKE ?", "%"+nome+"%")
	}
	if lotacao != "" {
		query = query.Where("usuarios.lotacao LIKE ?", "%"+lotacao+"%")
	}

	var rows []UserWithCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListLotacoes returns the distinct lotação values in use
func ListLotacoes(db *gorm.DB) ([]string, error) {
	var lotacoes []string
	err := db.Model(&models.User{}).
		Distinct("lotacao").
		Where("lotacao <> ''").
		Order("lotacao").
		Pluck("lotacao", &lotacoes).Error
	if err != nil {
		return nil, err
	}
	return lotacoes, nil
}
