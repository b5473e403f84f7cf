package models

import "gorm.io/gorm"

// Course is a training course in the catalog. The API never writes courses;
// the catalog is seeded out-of-band (see scripts/seedCourses.go).
type Course struct {
	gorm.Model
	PlaylistID   string `json:"playlist_id"` // external video playlist reference
	Name         string `json:"name"`
	Description  string `json:"description"`
	TotalModules uint   `json:"total_modules" gorm:"default:1"`
}
