package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLearnerCreatesCollaborationAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")

	learner := &model.User{Name: "Lea", LastName: "Rner", Email: "lea@x.com"}
	created, _, err := svc.AddLearner(tutor, learner)
	require.NoError(t, err)

	assert.Equal(t, model.Learner, created.Role)
	assert.Equal(t, model.StatusInactive, created.Status)
	assert.NotEmpty(t, created.Password)

	var collaboration model.Collaboration
	require.NoError(t, db.Where("learner_id = ? AND tutor_id = ?", created.ID, tutor.ID).First(&collaboration).Error)
	assert.Equal(t, model.CollaborationActive, collaboration.Status)
}

func TestAddLearnerDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	createUser(t, db, model.Learner, "lea@x.com", "password123")

	_, _, err := svc.AddLearner(tutor, &model.User{Name: "Lea", LastName: "Rner", Email: "lea@x.com"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	var count int64
	require.NoError(t, db.Model(&model.Collaboration{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdatePasswordActivatesInactiveLearner(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")

	learner := &model.User{Name: "Lea", LastName: "Rner", Email: "lea@x.com"}
	created, _, err := svc.AddLearner(tutor, learner)
	require.NoError(t, err)
	require.Equal(t, model.StatusInactive, created.Status)

	// The stored hash comes from the generated temporary password; reset it
	// to a known value for the check below.
	hashed, err := util.HashPassword("temporary1!")
	require.NoError(t, err)
	require.NoError(t, db.Model(created).Updates(map[string]interface{}{"password": hashed}).Error)
	created.Password = hashed

	_, err = svc.UpdatePassword(created, "temporary1!", "brand-new-pass1!")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, model.StatusActive, stored.Status)
	assert.True(t, util.CheckPassword(stored.Password, "brand-new-pass1!"))
}

func TestUpdatePasswordRejectsWrongOldAndSameNew(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := createUser(t, db, model.Tutor, "tutor@x.com", "password123")

	_, err := svc.UpdatePassword(user, "not-the-password", "another-pass1!")
	assert.ErrorIs(t, err, util.ErrOldPasswordIncorrect)

	_, err = svc.UpdatePassword(user, "password123", "password123")
	assert.ErrorIs(t, err, util.ErrSamePassword)
}

func TestUpdateInfoDetectsChanges(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	createUser(t, db, model.Tutor, "taken@x.com", "password123")

	sameName := user.Name
	_, _, err := svc.UpdateInfo(user, UpdateInfoInput{Name: &sameName})
	assert.ErrorIs(t, err, util.ErrNoFieldsToUpdate)

	taken := "taken@x.com"
	_, _, err = svc.UpdateInfo(user, UpdateInfoInput{Email: &taken})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	newName := "Renamed"
	updated, _, err := svc.UpdateInfo(user, UpdateInfoInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestToggleSuspension(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	admin := createUser(t, db, model.Admin, "admin@x.com", "password123")
	otherAdmin := createUser(t, db, model.Admin, "admin2@x.com", "password123")
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")

	_, err := svc.ToggleSuspension(admin, admin.ID)
	assert.ErrorIs(t, err, util.ErrAdminSelfSuspend)

	_, err = svc.ToggleSuspension(admin, otherAdmin.ID)
	assert.ErrorIs(t, err, util.ErrForbidden)

	suspended, err := svc.ToggleSuspension(admin, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuspended, suspended.Status)

	restored, err := svc.ToggleSuspension(admin, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, restored.Status)

	_, err = svc.ToggleSuspension(admin, 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDeleteUserRules(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	admin := createUser(t, db, model.Admin, "admin@x.com", "password123")
	tutorA := createUser(t, db, model.Tutor, "a@x.com", "password123")
	tutorB := createUser(t, db, model.Tutor, "b@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	createCollaboration(t, db, learner, tutorA, model.CollaborationActive)

	// Admin cannot remove its own account.
	assert.ErrorIs(t, svc.Delete(admin, admin.ID), util.ErrAdminSelfDelete)

	// A tutor cannot delete another tutor, nor a learner it does not manage.
	assert.ErrorIs(t, svc.Delete(tutorA, tutorB.ID), util.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(tutorB, learner.ID), util.ErrForbidden)

	// The managing tutor can; the collaboration disappears with the account.
	require.NoError(t, svc.Delete(tutorA, learner.ID))

	var users, collaborations int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", learner.ID).Count(&users).Error)
	require.NoError(t, db.Model(&model.Collaboration{}).Count(&collaborations).Error)
	assert.Zero(t, users)
	assert.Zero(t, collaborations)

	// Admin can delete anyone else.
	require.NoError(t, svc.Delete(admin, tutorB.ID))
}

func TestSelfDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	tutor := createUser(t, db, model.Tutor, "tut@x.com", "password123")
	learner := createUser(t, db, model.Learner, "lea@x.com", "password123")
	other := createUser(t, db, model.Learner, "other@x.com", "password123")
	createCollaboration(t, db, learner, tutor, model.CollaborationActive)
	createCollaboration(t, db, other, tutor, model.CollaborationActive)

	// A learner cannot delete anyone but itself.
	assert.ErrorIs(t, svc.Delete(learner, other.ID), util.ErrForbidden)

	// Learner self-delete removes the account and its collaboration.
	require.NoError(t, svc.Delete(learner, learner.ID))

	var users, collaborations int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", learner.ID).Count(&users).Error)
	require.NoError(t, db.Model(&model.Collaboration{}).Where("learner_id = ?", learner.ID).Count(&collaborations).Error)
	assert.Zero(t, users)
	assert.Zero(t, collaborations)

	// Tutor self-delete removes the account and every collaboration it owns.
	require.NoError(t, svc.Delete(tutor, tutor.ID))

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", tutor.ID).Count(&users).Error)
	require.NoError(t, db.Model(&model.Collaboration{}).Where("tutor_id = ?", tutor.ID).Count(&collaborations).Error)
	assert.Zero(t, users)
	assert.Zero(t, collaborations)
}
