package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// requireOwner is the single ownership predicate for tutor-scoped resources.
// Admins pass unconditionally; everyone else must match the owning tutor id,
// which callers re-fetch from storage rather than taking from the request.
func requireOwner(caller *model.User, ownerTutorID uint) error {
	if caller.IsAdmin() {
		return nil
	}
	if caller.ID == ownerTutorID {
		return nil
	}
	return util.ErrForbidden
}

// asNotFound converts gorm's missing-record error into the domain sentinel
// for the resource being looked up.
func asNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
