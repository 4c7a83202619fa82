package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type CollaborationService struct {
	CollabRepo *repository.CollaborationRepository
}

func NewCollaborationService(collabRepo *repository.CollaborationRepository) *CollaborationService {
	return &CollaborationService{CollabRepo: collabRepo}
}

// Create links a learner to a tutor. A tutor cannot collaborate with itself,
// and at most one active collaboration may exist per pair.
func (s *CollaborationService) Create(learnerID, tutorID uint) (*model.Collaboration, error) {
	if learnerID == tutorID {
		return nil, util.ErrSelfCollaboration
	}

	exists, err := s.CollabRepo.ActivePairExists(learnerID, tutorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrCollaborationExists
	}

	collaboration := &model.Collaboration{
		LearnerID: learnerID,
		TutorID:   tutorID,
		Status:    model.CollaborationActive,
	}
	if err := s.CollabRepo.Create(collaboration); err != nil {
		return nil, err
	}
	return collaboration, nil
}

func (s *CollaborationService) ListByTutor(tutorID uint) ([]model.Collaboration, error) {
	return s.CollabRepo.ListByTutor(tutorID)
}

func (s *CollaborationService) ListAll() ([]model.Collaboration, error) {
	return s.CollabRepo.ListAll()
}

// ToggleStatus flips a collaboration between ACTIVE and INACTIVE. Only the
// owning tutor or an admin may do so.
func (s *CollaborationService) ToggleStatus(caller *model.User, id uint) (*model.Collaboration, error) {
	collaboration, err := s.CollabRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, util.ErrCollaborationNotFound)
	}
	if err := requireOwner(caller, collaboration.TutorID); err != nil {
		return nil, err
	}

	next := model.CollaborationInactive
	if collaboration.Status == model.CollaborationInactive {
		next = model.CollaborationActive
	}
	if err := s.CollabRepo.UpdateStatus(collaboration.ID, next); err != nil {
		return nil, err
	}
	collaboration.Status = next
	return collaboration, nil
}

func (s *CollaborationService) Delete(caller *model.User, id uint) error {
	collaboration, err := s.CollabRepo.FindByID(id)
	if err != nil {
		return asNotFound(err, util.ErrCollaborationNotFound)
	}
	if err := requireOwner(caller, collaboration.TutorID); err != nil {
		return err
	}
	return s.CollabRepo.Delete(collaboration.ID)
}
