package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("Email already in use")
	ErrInvalidCredentials = errors.New("Credentials incorrect")
	ErrAccountSuspended   = errors.New("Your account has been suspended")
	ErrUnauthorized       = errors.New("User not authenticated")
	ErrForbidden          = errors.New("You are not allowed to perform this action")

	ErrUserNotFound          = errors.New("User not found")
	ErrCourseNotFound        = errors.New("Course not found")
	ErrModuleNotFound        = errors.New("Module not found")
	ErrCollaborationNotFound = errors.New("Collaboration not found")
	ErrEnrollmentNotFound    = errors.New("Enrollment not found")

	ErrCollaborationExists = errors.New("An active collaboration already exists for this learner")
	ErrSelfCollaboration   = errors.New("A tutor can not be its own learner")
	ErrNoActiveCollab      = errors.New("Learner has no active collaboration with this tutor")

	ErrOldPasswordIncorrect = errors.New("Old password is incorrect")
	ErrSamePassword         = errors.New("New password cannot be the same as the old password")
	ErrNoFieldsToUpdate     = errors.New("No valid fields to update")
	ErrAdminSelfDelete      = errors.New("Admin can not delete himself")
	ErrAdminSelfSuspend     = errors.New("Administrators cannot suspend/unsuspend themselves")

	ErrPDFFileRequired = errors.New("PDF file is required")
	ErrInvalidContent  = errors.New("Module content fields do not match the specified content type")
	ErrInvalidOrder    = errors.New("Module order must be greater than or equal to 0")
)
