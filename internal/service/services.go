package service

import (
	"github.com/dom/account-service/internal/config"
	"github.com/dom/account-service/internal/repository"
)

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	auth := NewAuthService(repos.User, repos.Session, cfg)
	return &Services{
		Auth: auth,
		User: NewUserService(repos.User, repos.Session, auth),
	}
}
