package model

// Department maps to the departments table.
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(100);not null;unique"              json:"name"`
	ShortName    string `gorm:"type:varchar(20);not null"                      json:"short_name"`
	HodEmail     string `gorm:"type:varchar(100);not null;default:''"          json:"hod_email"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (Department) TableName() string { return "departments" }
