package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCollaborationRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollaborationService(repository.NewCollaborationRepository(db))
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")

	_, err := svc.Create(tutor.ID, tutor.ID)
	assert.ErrorIs(t, err, util.ErrSelfCollaboration)

	created, err := svc.Create(learner.ID, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CollaborationActive, created.Status)

	_, err = svc.Create(learner.ID, tutor.ID)
	assert.ErrorIs(t, err, util.ErrCollaborationExists)
}

func TestToggleCollaborationStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollaborationService(repository.NewCollaborationRepository(db))
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	other := createUser(t, db, model.Tutor, "other@x.com", "password123")
	admin := createUser(t, db, model.Admin, "admin@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	collaboration := createCollaboration(t, db, learner, tutor, model.CollaborationActive)

	_, err := svc.ToggleStatus(other, collaboration.ID)
	assert.ErrorIs(t, err, util.ErrForbidden)

	toggled, err := svc.ToggleStatus(tutor, collaboration.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CollaborationInactive, toggled.Status)

	// Admins may toggle any tutor's collaboration.
	toggled, err = svc.ToggleStatus(admin, collaboration.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CollaborationActive, toggled.Status)

	_, err = svc.ToggleStatus(tutor, 9999)
	assert.ErrorIs(t, err, util.ErrCollaborationNotFound)
}

func TestDeleteCollaboration(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollaborationService(repository.NewCollaborationRepository(db))
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	other := createUser(t, db, model.Tutor, "other@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	collaboration := createCollaboration(t, db, learner, tutor, model.CollaborationActive)

	assert.ErrorIs(t, svc.Delete(other, collaboration.ID), util.ErrForbidden)
	require.NoError(t, svc.Delete(tutor, collaboration.ID))
	assert.ErrorIs(t, svc.Delete(tutor, collaboration.ID), util.ErrCollaborationNotFound)
}

func TestListByTutorScopesToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollaborationService(repository.NewCollaborationRepository(db))
	tutorA := createUser(t, db, model.Tutor, "a@x.com", "password123")
	tutorB := createUser(t, db, model.Tutor, "b@x.com", "password123")
	learner1 := createUser(t, db, model.Learner, "l1@x.com", "password123")
	learner2 := createUser(t, db, model.Learner, "l2@x.com", "password123")
	createCollaboration(t, db, learner1, tutorA, model.CollaborationActive)
	createCollaboration(t, db, learner2, tutorB, model.CollaborationActive)

	mine, err := svc.ListByTutor(tutorA.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, learner1.ID, mine[0].LearnerID)
	require.NotNil(t, mine[0].Learner)
	assert.Equal(t, "l1@x.com", mine[0].Learner.Email)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
