package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type officerService struct {
	officerRepo repository.OfficerRepository
	memberRepo  repository.MemberRepository
}

func NewOfficerService(officerRepo repository.OfficerRepository, memberRepo repository.MemberRepository) OfficerService {
	return &officerService{officerRepo: officerRepo, memberRepo: memberRepo}
}

func (s *officerService) CreateOfficer(ctx context.Context, officer *domain.Officer, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(officer.Roles) == 0 {
		return errors.New("officer needs at least one role")
	}

	member, err := s.memberRepo.GetByMemberNo(ctx, officer.MemberNo)
	if err != nil {
		return err
	}
	officer.MemberID = member.ID
	if officer.Name == "" {
		officer.Name = member.Name
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	officer.PasswordHash = string(hash)

	if err := s.officerRepo.Create(ctx, officer); err != nil {
		return err
	}
	logger.Info("officer created", "member_no", officer.MemberNo, "roles", officer.Roles)
	return nil
}

func (s *officerService) GetOfficer(ctx context.Context, id int64) (*domain.Officer, error) {
	return s.officerRepo.GetByID(ctx, id)
}

func (s *officerService) ListOfficers(ctx context.Context) ([]domain.Officer, error) {
	return s.officerRepo.List(ctx)
}

func (s *officerService) ListOfficersByRole(ctx context.Context, role string) ([]domain.Officer, error) {
	return s.officerRepo.ListByRole(ctx, role)
}

func (s *officerService) UpdateOfficer(ctx context.Context, officer *domain.Officer) error {
	if len(officer.Roles) == 0 {
		return errors.New("officer needs at least one role")
	}
	return s.officerRepo.Update(ctx, officer)
}

func (s *officerService) DeactivateOfficer(ctx context.Context, id int64) error {
	return s.officerRepo.SetDeactivated(ctx, id, true)
}

func (s *officerService) ReactivateOfficer(ctx context.Context, id int64) error {
	return s.officerRepo.SetDeactivated(ctx, id, false)
}

func (s *officerService) DeleteOfficer(ctx context.Context, id int64) error {
	return s.officerRepo.Delete(ctx, id)
}

func (s *officerService) AssignAreaRole(ctx context.Context, officerID int64, role, area string) error {
	officer, err := s.officerRepo.GetByID(ctx, officerID)
	if err != nil {
		return err
	}
	if !officer.HasRole(role) {
		officer.Roles = append(officer.Roles, role)
	}
	if area != "" {
		officer.Area = area
	}
	return s.officerRepo.Update(ctx, officer)
}

func (s *officerService) RemoveAreaRole(ctx context.Context, officerID int64, role string) error {
	officer, err := s.officerRepo.GetByID(ctx, officerID)
	if err != nil {
		return err
	}
	roles := officer.Roles[:0]
	for _, r := range officer.Roles {
		if r != role {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		return errors.New("officer needs at least one role")
	}
	officer.Roles = roles
	return s.officerRepo.Update(ctx, officer)
}
