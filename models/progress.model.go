package models

import "gorm.io/gorm"

// EmployeeProgress is the running completion tally for one employee on one
// course. TotalModules is denormalized from the course row and refreshed on
// every module completion; the unique pair index keeps concurrent
// find-or-create calls from producing a second row.
type EmployeeProgress struct {
	gorm.Model
	UserID           uint    `json:"user_id" gorm:"uniqueIndex:idx_employee_course;not null"`
	CourseID         uint    `json:"course_id" gorm:"uniqueIndex:idx_employee_course;not null"`
	ModulesCompleted uint    `json:"modules_completed" gorm:"default:0"`
	TotalModules     uint    `json:"total_modules" gorm:"default:0"`
	ProgressPercent  float64 `json:"progress_percent" gorm:"default:0"`
	User             User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course           Course  `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Percent derives the completion percentage, guarding the zero-total case.
func (p *EmployeeProgress) Percent() float64 {
	if p.TotalModules == 0 {
		return 0
	}
	return float64(p.ModulesCompleted) / float64(p.TotalModules) * 100
}
