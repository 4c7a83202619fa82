package model

type CourseStatus string

const (
	CourseActive   CourseStatus = "ACTIVE"
	CourseInactive CourseStatus = "INACTIVE"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Status      CourseStatus `gorm:"size:20;default:'ACTIVE';not null" json:"status"`
	TutorID     uint         `gorm:"index;not null" json:"tutorId"`

	Modules []Module `gorm:"foreignKey:CourseID" json:"modules"`
	Tutor   *User    `gorm:"foreignKey:TutorID" json:"tutor,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
