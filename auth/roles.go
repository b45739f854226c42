package auth

import "capacita/models"

// Fixed mapping from directory group names to roles. Consulted once at
// login to fill the token's perfil claim; the persisted user record is
// never derived from it.
var groupRoles = map[string]models.Perfil{
	"GLO-SEC-HCPE-SETISD":                    models.PerfilUDP,
	"GLO-SEC-HCPE-PROFISSIONAL_ASSISTENCIAL": models.PerfilChefia,
}

// RoleForGroups returns the role for a group list. UDP outranks Chefia;
// unmapped users are Trabalhador.
func RoleForGroups(groups []string) models.Perfil {
	perfil := models.PerfilTrabalhador
	for _, g := range groups {
		mapped, ok := groupRoles[g]
		if !ok {
			continue
		}
		if mapped == models.PerfilUDP {
			return models.PerfilUDP
		}
		perfil = mapped
	}
	return perfil
}
