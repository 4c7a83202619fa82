package service

import (
	"fmt"
	"strings"
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Collaboration{},
		&model.Course{},
		&model.Module{},
		&model.VideoContent{},
		&model.PDFContent{},
		&model.WebLink{},
		&model.Enrollment{},
	))
	return db
}

func newTestMail() *MailService {
	return NewMailService(&config.Config{
		Mail: config.MailConfig{Driver: "console", LoginURL: "http://localhost:3000/login"},
	})
}

func createUser(t *testing.T, db *gorm.DB, role model.UserRole, email, password string) *model.User {
	t.Helper()

	hashed, err := util.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{
		Name:     "Test",
		LastName: string(role),
		Email:    email,
		Password: hashed,
		Role:     role,
		Status:   model.StatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCollaboration(t *testing.T, db *gorm.DB, learner, tutor *model.User, status model.CollaborationStatus) *model.Collaboration {
	t.Helper()

	collaboration := &model.Collaboration{
		LearnerID: learner.ID,
		TutorID:   tutor.ID,
		Status:    status,
	}
	require.NoError(t, db.Create(collaboration).Error)
	return collaboration
}

func createCourse(t *testing.T, db *gorm.DB, tutor *model.User, title string) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:   title,
		Status:  model.CourseActive,
		TutorID: tutor.ID,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func newCourseService(t *testing.T, db *gorm.DB) *CourseService {
	t.Helper()

	storage := NewStorageService(&config.Config{
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
	})
	return NewCourseService(db, repository.NewCourseRepository(db), repository.NewModuleRepository(db), storage, NewCache(nil))
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(db, repository.NewUserRepository(db), repository.NewCollaborationRepository(db), newTestMail())
}
