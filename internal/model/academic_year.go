package model

// AcademicYear maps to the academic_years table.
type AcademicYear struct {
	AcademicYearID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_year_id"`
	Year           string `gorm:"type:varchar(20);not null;unique"               json:"year"` // e.g. "2025-2026"
	IsEnabled      bool   `gorm:"not null;default:false"                         json:"is_enabled"`
	BaseModel
}

// TableName sets the table name.
func (AcademicYear) TableName() string { return "academic_years" }
