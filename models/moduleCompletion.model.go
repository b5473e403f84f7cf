package models

import "gorm.io/gorm"

// ModuleCompletion records that an employee finished one module of a course.
// Rows are immutable and never deleted. The unique triple index makes a
// repeat completion a constraint violation, which the ledger reports as a
// conflict instead of double counting.
type ModuleCompletion struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_course_employee_module;not null"`
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_course_employee_module;not null"`
	ModuleNo uint   `json:"module_no" gorm:"uniqueIndex:idx_course_employee_module;not null"`
	Course   Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	User     User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
