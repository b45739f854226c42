package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"capacita/config"
	"capacita/database"
	"capacita/models"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("funcionarios.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV file: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file has no data rows")
	}

	// Expected columns: usuario, nome, email, lotacao, cargo, matricula, cpf, vinculo
	created, skipped := 0, 0
	for i, record := range records[1:] {
		if len(record) < 8 {
			log.Printf("Skipping row %d: expected 8 columns, got %d", i+2, len(record))
			skipped++
			continue
		}

		usuario := strings.TrimSpace(record[0])
		if usuario == "" {
			skipped++
			continue
		}

		var existing models.User
		if err := database.Database.Db.Where("id = ?", usuario).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		user := models.User{
			ID:        usuario,
			Nome:      strings.TrimSpace(record[1]),
			Email:     strings.TrimSpace(record[2]),
			Perfil:    models.PerfilTrabalhador,
			Lotacao:   strings.ToUpper(strings.TrimSpace(record[3])),
			Cargo:     strings.TrimSpace(record[4]),
			Matricula: strings.TrimSpace(record[5]),
			CPF:       strings.TrimSpace(record[6]),
			Vinculo:   strings.TrimSpace(record[7]),
		}
		if err := database.Database.Db.Create(&user).Error; err != nil {
			log.Printf("Failed to import user %s: %v", usuario, err)
			skipped++
			continue
		}
		created++
	}

	log.Printf("Import finished: %d created, %d skipped", created, skipped)
}
