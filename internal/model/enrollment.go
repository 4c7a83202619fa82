package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive EnrollmentStatus = "ACTIVE"
)

// Enrollment records a learner's participation in a course under a specific
// tutor. (learnerId, courseId) is unique; bulk inserts skip existing pairs.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	LearnerID  uint             `gorm:"uniqueIndex:idx_learner_course;not null" json:"learnerId"`
	CourseID   uint             `gorm:"uniqueIndex:idx_learner_course;not null" json:"courseId"`
	TutorID    uint             `gorm:"index;not null" json:"tutorId"`
	Status     EnrollmentStatus `gorm:"size:20;default:'ACTIVE';not null" json:"status"`
	EnrolledAt time.Time        `json:"enrolledAt"`

	Learner *User   `gorm:"foreignKey:LearnerID" json:"learner,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
