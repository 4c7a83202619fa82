package model

type CollaborationStatus string

const (
	CollaborationActive   CollaborationStatus = "ACTIVE"
	CollaborationInactive CollaborationStatus = "INACTIVE"
)

// Collaboration links a learner to the tutor that manages it. The pair gates
// which learners the tutor may enroll in courses.
// swagger:model Collaboration
type Collaboration struct {
	BaseModel
	LearnerID uint                `gorm:"index;not null" json:"learnerId"`
	TutorID   uint                `gorm:"index;not null" json:"tutorId"`
	Status    CollaborationStatus `gorm:"size:20;default:'ACTIVE';not null" json:"status"`

	Learner *User `gorm:"foreignKey:LearnerID" json:"learner,omitempty"`
	Tutor   *User `gorm:"foreignKey:TutorID" json:"tutor,omitempty"`
}

func (Collaboration) TableName() string {
	return "collaborations"
}
