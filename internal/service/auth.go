package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
	"github.com/lakkaru/eksath-samithiya-backend/internal/security"
)

type authService struct {
	officerRepo repository.OfficerRepository
	tokens      security.TokenManager
}

func NewAuthService(officerRepo repository.OfficerRepository, tokens security.TokenManager) AuthService {
	return &authService{officerRepo: officerRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, memberNo int32, password string) (string, *domain.Officer, error) {
	officer, err := s.officerRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if officer.DeactivatedAt != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(officer.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(officer.ID, officer.MemberNo, officer.Roles)
	if err != nil {
		return "", nil, err
	}

	logger.Info("officer logged in", "member_no", memberNo, "roles", officer.Roles)
	officer.PasswordHash = ""
	return token, officer, nil
}

func (s *authService) ChangePassword(ctx context.Context, officerID int64, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("new password must be at least 8 characters")
	}
	officer, err := s.officerRepo.GetByID(ctx, officerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(officer.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.officerRepo.UpdatePassword(ctx, officerID, string(hash)); err != nil {
		return err
	}
	logger.Info("officer password changed", "officer_id", officerID)
	return nil
}
