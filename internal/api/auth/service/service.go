package authService

import (
	"context"
	"time"

	"BlogPublisher/internal/api/auth"
	authRepository "BlogPublisher/internal/api/auth/repository"
	"BlogPublisher/internal/entity"
	"BlogPublisher/pkg/bcrypt"
	"BlogPublisher/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const accessTokenTTL = time.Hour

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (auth.UserResponse, error)
	GetByID(c context.Context, id string) (auth.UserResponse, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
}

type authService struct {
	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	validator   *validator.Validate
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	validator   *validator.Validate
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	validate *validator.Validate,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) AuthService {
	return &authService{
		userDomain: &userDomainImpl{log: log, repo: authRepo, validator: validate, bcryptUtils: bcryptUtils, utils: utils},
		authDomain: &authDomainImpl{log: log, repo: authRepo, validator: validate, bcryptUtils: bcryptUtils},
	}
}

func MakeUserData(user entity.User) entity.UserLoginData {
	return entity.UserLoginData{
		ID:       user.ID,
		Username: user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func makeUserResponse(user entity.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
