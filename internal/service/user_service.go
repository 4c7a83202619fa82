package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	DB         *gorm.DB
	UserRepo   *repository.UserRepository
	CollabRepo *repository.CollaborationRepository
	Mail       *MailService
}

func NewUserService(db *gorm.DB, userRepo *repository.UserRepository, collabRepo *repository.CollaborationRepository, mail *MailService) *UserService {
	return &UserService{
		DB:         db,
		UserRepo:   userRepo,
		CollabRepo: collabRepo,
		Mail:       mail,
	}
}

// UpdateInfoInput carries the optional profile fields of a partial update.
type UpdateInfoInput struct {
	Name        *string
	LastName    *string
	Email       *string
	CompanyName *string
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) ListAll() ([]model.User, error) {
	return s.UserRepo.ListTutorsAndLearners()
}

// UpdatePassword verifies the old password before storing the new hash. A
// learner changing its temporary password moves from INACTIVE to ACTIVE.
func (s *UserService) UpdatePassword(user *model.User, oldPassword, newPassword string) (emailSent bool, err error) {
	if !util.CheckPassword(user.Password, oldPassword) {
		return false, util.ErrOldPasswordIncorrect
	}
	if oldPassword == newPassword {
		return false, util.ErrSamePassword
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return false, err
	}

	fields := map[string]interface{}{"password": hashed}
	if user.Status == model.StatusInactive {
		fields["status"] = model.StatusActive
	}
	if err := s.UserRepo.UpdateFields(user.ID, fields); err != nil {
		return false, err
	}
	user.Password = hashed
	if user.Status == model.StatusInactive {
		user.Status = model.StatusActive
	}

	emailSent = notify(func() error { return s.Mail.SendAccountUpdated(user, true) }, "password-updated", user.Email)
	return emailSent, nil
}

// UpdateInfo applies a partial profile update, skipping unchanged fields.
func (s *UserService) UpdateInfo(user *model.User, input UpdateInfoInput) (*model.User, bool, error) {
	fields := map[string]interface{}{}

	if input.Name != nil && *input.Name != user.Name {
		fields["name"] = *input.Name
	}
	if input.LastName != nil && *input.LastName != user.LastName {
		fields["last_name"] = *input.LastName
	}
	if input.CompanyName != nil && *input.CompanyName != user.CompanyName {
		fields["company_name"] = *input.CompanyName
	}
	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.UserRepo.EmailTaken(*input.Email)
		if err != nil {
			return nil, false, err
		}
		if taken {
			return nil, false, util.ErrEmailRegistered
		}
		fields["email"] = *input.Email
	}

	if len(fields) == 0 {
		return nil, false, util.ErrNoFieldsToUpdate
	}

	if err := s.UserRepo.UpdateFields(user.ID, fields); err != nil {
		return nil, false, err
	}

	updated, err := s.UserRepo.FindByID(user.ID)
	if err != nil {
		return nil, false, err
	}

	emailSent := notify(func() error { return s.Mail.SendAccountUpdated(updated, false) }, "info-updated", updated.Email)
	return updated, emailSent, nil
}

// ToggleSuspension flips a user between ACTIVE and SUSPENDED. Admin accounts
// are never suspendable, including the caller's own.
func (s *UserService) ToggleSuspension(caller *model.User, targetID uint) (*model.User, error) {
	if caller.ID == targetID {
		return nil, util.ErrAdminSelfSuspend
	}

	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return nil, asNotFound(err, util.ErrUserNotFound)
	}
	if target.IsAdmin() {
		return nil, util.ErrForbidden
	}

	next := model.StatusSuspended
	if target.Status == model.StatusSuspended {
		next = model.StatusActive
	}
	if err := s.UserRepo.UpdateFields(target.ID, map[string]interface{}{"status": next}); err != nil {
		return nil, err
	}
	target.Status = next
	return target, nil
}

// AddLearner creates a learner account with a generated temporary password
// and, in the same transaction, the collaboration binding it to the tutor.
// The credentials mail is best-effort.
func (s *UserService) AddLearner(tutor *model.User, learner *model.User) (*model.User, bool, error) {
	taken, err := s.UserRepo.EmailTaken(learner.Email)
	if err != nil {
		return nil, false, err
	}
	if taken {
		return nil, false, util.ErrEmailRegistered
	}

	tempPassword, err := util.GenerateTemporaryPassword()
	if err != nil {
		return nil, false, err
	}
	hashed, err := util.HashPassword(tempPassword)
	if err != nil {
		return nil, false, err
	}

	learner.Password = hashed
	learner.Role = model.Learner
	learner.Status = model.StatusInactive

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(learner).Error; err != nil {
			return err
		}
		collaboration := &model.Collaboration{
			LearnerID: learner.ID,
			TutorID:   tutor.ID,
			Status:    model.CollaborationActive,
		}
		return tx.Create(collaboration).Error
	})
	if err != nil {
		return nil, false, err
	}

	emailSent := notify(func() error {
		return s.Mail.SendLearnerCredentials(learner, tempPassword, tutor)
	}, "learner-credentials", learner.Email)
	return learner, emailSent, nil
}

// Delete removes an account together with its collaborations and
// enrollments. Learners and tutors may delete their own account; tutors may
// also delete a learner they manage; admins may delete anyone but themselves.
func (s *UserService) Delete(caller *model.User, targetID uint) error {
	if caller.IsAdmin() && caller.ID == targetID {
		return util.ErrAdminSelfDelete
	}

	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return asNotFound(err, util.ErrUserNotFound)
	}

	if !caller.IsAdmin() && caller.ID != targetID {
		if !caller.IsTutor() || !target.IsLearner() {
			return util.ErrForbidden
		}
		_, err := s.CollabRepo.FindPair(target.ID, caller.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrForbidden
		}
		if err != nil {
			return err
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learner_id = ? OR tutor_id = ?", target.ID, target.ID).
			Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("learner_id = ? OR tutor_id = ?", target.ID, target.ID).
			Delete(&model.Collaboration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, target.ID).Error
	})
}
