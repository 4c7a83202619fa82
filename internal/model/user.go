package model

type UserRole string

const (
	Admin   UserRole = "ADMIN"
	Tutor   UserRole = "TUTOR"
	Learner UserRole = "LEARNER"
)

type UserStatus string

const (
	StatusActive UserStatus = "ACTIVE"
	// StatusInactive marks a learner account that has not changed its
	// temporary password yet.
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

// swagger:model User
type User struct {
	BaseModel
	Name        string     `gorm:"size:100;not null" json:"name"`
	LastName    string     `gorm:"size:100;not null" json:"lastName"`
	Email       string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	CompanyName string     `gorm:"size:100" json:"companyName"`
	Role        UserRole   `gorm:"size:20;default:'LEARNER';not null" json:"role"`
	Status      UserStatus `gorm:"size:20;default:'ACTIVE';not null" json:"status"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}

func (u *User) IsTutor() bool {
	return u.Role == Tutor
}

func (u *User) IsLearner() bool {
	return u.Role == Learner
}
