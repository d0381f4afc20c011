package authService

import (
	"context"
	"errors"

	"BlogPublisher/internal/api/auth"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"BlogPublisher/pkg/response"
	"github.com/sirupsen/logrus"
)

func (s *userDomainImpl) RegisterUser(ctx context.Context, req auth.CreateUserRequest) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return auth.UserResponse{}, response.FromValidator(err)
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.UserResponse{}, err
	}

	now := s.utils.Now()
	ULID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return auth.UserResponse{}, err
	}

	user := entity.User{
		ID:        ULID,
		Email:     req.Email,
		Name:      req.Name,
		Password:  hashedPassword,
		Role:      entity.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			return auth.UserResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create user")
		return auth.UserResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return makeUserResponse(user), nil
}

func (s *userDomainImpl) GetByID(ctx context.Context, id string) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}

	user, err := repo.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    id,
			}).Warn("User not found")
		}
		return auth.UserResponse{}, err
	}

	return makeUserResponse(user), nil
}
