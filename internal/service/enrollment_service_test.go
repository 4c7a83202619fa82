package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(db, repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))
}

func TestBulkEnrollIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	l1 := createUser(t, db, model.Learner, "l1@x.com", "password123")
	l2 := createUser(t, db, model.Learner, "l2@x.com", "password123")
	createCollaboration(t, db, l1, tutor, model.CollaborationActive)
	createCollaboration(t, db, l2, tutor, model.CollaborationActive)
	course := createCourse(t, db, tutor, "Go Basics")

	enrolled, err := svc.AddLearners(tutor, course.ID, []uint{l1.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled)

	// The retry skips the existing pair and only counts the new row.
	enrolled, err = svc.AddLearners(tutor, course.ID, []uint{l1.ID, l2.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled)

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestEnrollRequiresActiveCollaboration(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	linked := createUser(t, db, model.Learner, "linked@x.com", "password123")
	inactive := createUser(t, db, model.Learner, "inactive@x.com", "password123")
	stranger := createUser(t, db, model.Learner, "stranger@x.com", "password123")
	createCollaboration(t, db, linked, tutor, model.CollaborationActive)
	createCollaboration(t, db, inactive, tutor, model.CollaborationInactive)
	course := createCourse(t, db, tutor, "Go Basics")

	_, err := svc.AddLearners(tutor, course.ID, []uint{linked.ID, stranger.ID})
	assert.ErrorIs(t, err, util.ErrNoActiveCollab)

	_, err = svc.AddLearners(tutor, course.ID, []uint{inactive.ID})
	assert.ErrorIs(t, err, util.ErrNoActiveCollab)

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnrollOwnershipGate(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	tutorA := createUser(t, db, model.Tutor, "a@x.com", "password123")
	tutorB := createUser(t, db, model.Tutor, "b@x.com", "password123")
	admin := createUser(t, db, model.Admin, "admin@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	createCollaboration(t, db, learner, tutorA, model.CollaborationActive)
	course := createCourse(t, db, tutorA, "A's course")

	_, err := svc.AddLearners(tutorB, course.ID, []uint{learner.ID})
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = svc.AddLearners(tutorA, 9999, []uint{learner.ID})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	// Admins enroll on behalf of the owning tutor.
	enrolled, err := svc.AddLearners(admin, course.ID, []uint{learner.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled)

	var stored model.Enrollment
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, tutorA.ID, stored.TutorID)
}

func TestAssignableLearnersFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	enrolledLearner := createUser(t, db, model.Learner, "enrolled@x.com", "password123")
	freshLearner := createUser(t, db, model.Learner, "fresh@x.com", "password123")
	inactiveLearner := createUser(t, db, model.Learner, "inactive@x.com", "password123")
	createCollaboration(t, db, enrolledLearner, tutor, model.CollaborationActive)
	createCollaboration(t, db, freshLearner, tutor, model.CollaborationActive)
	createCollaboration(t, db, inactiveLearner, tutor, model.CollaborationInactive)
	course := createCourse(t, db, tutor, "Go Basics")

	_, err := svc.AddLearners(tutor, course.ID, []uint{enrolledLearner.ID})
	require.NoError(t, err)

	assignable, err := svc.ListAssignableLearners(tutor, course.ID)
	require.NoError(t, err)
	require.Len(t, assignable, 1)
	assert.Equal(t, "fresh@x.com", assignable[0].Email)

	enrolled, err := svc.ListEnrolledLearners(tutor, course.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "enrolled@x.com", enrolled[0].Email)
}

func TestDeleteEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	tutorA := createUser(t, db, model.Tutor, "a@x.com", "password123")
	tutorB := createUser(t, db, model.Tutor, "b@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	createCollaboration(t, db, learner, tutorA, model.CollaborationActive)
	course := createCourse(t, db, tutorA, "A's course")

	_, err := svc.AddLearners(tutorA, course.ID, []uint{learner.ID})
	require.NoError(t, err)

	var enrollment model.Enrollment
	require.NoError(t, db.First(&enrollment).Error)

	assert.ErrorIs(t, svc.Delete(tutorB, enrollment.ID), util.ErrForbidden)
	require.NoError(t, svc.Delete(tutorA, enrollment.ID))
	assert.ErrorIs(t, svc.Delete(tutorA, enrollment.ID), util.ErrEnrollmentNotFound)
}

func TestLearnerCoursesView(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	createCollaboration(t, db, learner, tutor, model.CollaborationActive)
	course := createCourse(t, db, tutor, "Go Basics")

	_, err := svc.AddLearners(tutor, course.ID, []uint{learner.ID})
	require.NoError(t, err)

	courses, err := svc.ListLearnerCourses(learner.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
	assert.Equal(t, "Test TUTOR", courses[0].TutorName)
	assert.Equal(t, course.ID, courses[0].CourseID)
}
