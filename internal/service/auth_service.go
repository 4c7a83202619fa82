package service

import (
	"errors"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Mail     *MailService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, mail *MailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Mail:     mail,
		Cfg:      cfg,
	}
}

// Register creates a self-service tutor account. The welcome mail is
// best-effort; the returned flag reports whether it went out.
func (s *AuthService) Register(user *model.User) (emailSent bool, err error) {
	taken, err := s.UserRepo.EmailTaken(user.Email)
	if err != nil {
		return false, err
	}
	if taken {
		return false, util.ErrEmailRegistered
	}

	hashed, err := util.HashPassword(user.Password)
	if err != nil {
		return false, err
	}
	user.Password = hashed
	user.Role = model.Tutor
	user.Status = model.StatusActive

	if err := s.UserRepo.Create(user); err != nil {
		return false, err
	}

	emailSent = notify(func() error { return s.Mail.SendWelcome(user) }, "welcome", user.Email)
	return emailSent, nil
}

// Login verifies credentials and issues a signed token. A missing account and
// a wrong password are indistinguishable to the caller; suspension is checked
// only after the password matches.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !util.CheckPassword(user.Password, password) {
		return "", nil, util.ErrInvalidCredentials
	}

	if user.Status == model.StatusSuspended {
		return "", nil, util.ErrAccountSuspended
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
