package service

import (
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	DB             *gorm.DB
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
}

func NewEnrollmentService(db *gorm.DB, enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{
		DB:             db,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
	}
}

// LearnerCourse is the learner-facing view of an enrollment.
type LearnerCourse struct {
	EnrollmentID uint      `json:"enrollmentId"`
	CourseID     uint      `json:"courseId"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	TutorName    string    `json:"tutorName"`
	EnrolledAt   time.Time `json:"enrolledAt"`
}

// AddLearners bulk-enrolls learners into a course. Every learner must hold
// an ACTIVE collaboration with the course's tutor; learners already enrolled
// are skipped, so a retry is idempotent. Returns the number of rows created.
func (s *EnrollmentService) AddLearners(caller *model.User, courseID uint, learnerIDs []uint) (int, error) {
	tutorID, err := s.CourseRepo.TutorIDOf(courseID)
	if err != nil {
		return 0, asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return 0, err
	}
	if len(learnerIDs) == 0 {
		return 0, nil
	}

	var eligible []uint
	err = s.DB.Model(&model.Collaboration{}).
		Where("tutor_id = ? AND status = ? AND learner_id IN ?", tutorID, model.CollaborationActive, learnerIDs).
		Pluck("learner_id", &eligible).Error
	if err != nil {
		return 0, err
	}
	active := make(map[uint]bool, len(eligible))
	for _, id := range eligible {
		active[id] = true
	}
	for _, id := range learnerIDs {
		if !active[id] {
			return 0, util.ErrNoActiveCollab
		}
	}

	enrolled := 0
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.EnrollmentRepo.EnrolledLearnerIDs(tx, courseID, learnerIDs)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, learnerID := range learnerIDs {
			if existing[learnerID] {
				continue
			}
			enrollment := &model.Enrollment{
				LearnerID:  learnerID,
				CourseID:   courseID,
				TutorID:    tutorID,
				Status:     model.EnrollmentActive,
				EnrolledAt: now,
			}
			if err := tx.Create(enrollment).Error; err != nil {
				return err
			}
			existing[learnerID] = true
			enrolled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return enrolled, nil
}

func (s *EnrollmentService) Delete(caller *model.User, enrollmentID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		return asNotFound(err, util.ErrEnrollmentNotFound)
	}
	if err := requireOwner(caller, enrollment.TutorID); err != nil {
		return err
	}
	return s.EnrollmentRepo.Delete(enrollment.ID)
}

func (s *EnrollmentService) ListEnrolledLearners(caller *model.User, courseID uint) ([]model.User, error) {
	tutorID, err := s.CourseRepo.TutorIDOf(courseID)
	if err != nil {
		return nil, asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return nil, err
	}
	return s.EnrollmentRepo.ListEnrolledLearners(courseID)
}

// ListAssignableLearners returns the course tutor's ACTIVE collaborators not
// yet enrolled in the course.
func (s *EnrollmentService) ListAssignableLearners(caller *model.User, courseID uint) ([]model.User, error) {
	tutorID, err := s.CourseRepo.TutorIDOf(courseID)
	if err != nil {
		return nil, asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return nil, err
	}
	return s.EnrollmentRepo.ListAssignableLearners(tutorID, courseID)
}

// ListLearnerCourses powers the learner's own course list.
func (s *EnrollmentService) ListLearnerCourses(learnerID uint) ([]LearnerCourse, error) {
	enrollments, err := s.EnrollmentRepo.ListByLearner(learnerID)
	if err != nil {
		return nil, err
	}

	courses := make([]LearnerCourse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		lc := LearnerCourse{
			EnrollmentID: e.ID,
			CourseID:     e.CourseID,
			Title:        e.Course.Title,
			Description:  e.Course.Description,
			EnrolledAt:   e.EnrolledAt,
		}
		if e.Course.Tutor != nil {
			lc.TutorName = e.Course.Tutor.Name + " " + e.Course.Tutor.LastName
		}
		courses = append(courses, lc)
	}
	return courses, nil
}
