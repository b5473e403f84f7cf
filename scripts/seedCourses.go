package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"traintrack/config"
	"traintrack/database"
	"traintrack/models"
)

// Seeds the course catalog from a CSV file. The API surface never writes
// courses; this script is the out-of-band population path.
//
// Usage: go run scripts/seedCourses.go courses.csv
// Expected headers: playlist_id,name,description,total_modules
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "courses.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Map header indices
	header := records[0]
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	for _, key := range []string{"playlist_id", "name", "description", "total_modules"} {
		if _, ok := headerIndex[key]; !ok {
			log.Fatalf("CSV is missing required column %q", key)
		}
	}

	db := database.Database.Db

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		totalModules, err := strconv.Atoi(strings.TrimSpace(row[headerIndex["total_modules"]]))
		if err != nil || totalModules < 1 {
			log.Printf("Skipping row %d: invalid total_modules %q", i+2, row[headerIndex["total_modules"]])
			skipped++
			continue
		}

		course := models.Course{
			PlaylistID:   strings.TrimSpace(row[headerIndex["playlist_id"]]),
			Name:         strings.TrimSpace(row[headerIndex["name"]]),
			Description:  strings.TrimSpace(row[headerIndex["description"]]),
			TotalModules: uint(totalModules),
		}

		if course.Name == "" {
			log.Printf("Skipping row %d: empty course name", i+2)
			skipped++
			continue
		}

		// Upsert by playlist reference so re-running the seeder refreshes
		// module counts instead of duplicating the catalog.
		var existing models.Course
		if err := db.Where("playlist_id = ?", course.PlaylistID).First(&existing).Error; err == nil {
			existing.Name = course.Name
			existing.Description = course.Description
			existing.TotalModules = course.TotalModules
			if err := db.Save(&existing).Error; err != nil {
				log.Printf("Failed to update course %q: %v", course.Name, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		if err := db.Create(&course).Error; err != nil {
			log.Printf("Failed to insert course %q: %v", course.Name, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Seeding complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}
