package service

import (
	"context"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) CreateMember(ctx context.Context, member *domain.Member) error {
	if member.Name == "" {
		return errors.New("member name is required")
	}
	if member.Status == "" {
		member.Status = domain.MemberStatusRegular
	}
	if member.MemberNo == 0 {
		next, err := s.memberRepo.NextMemberNo(ctx)
		if err != nil {
			return err
		}
		member.MemberNo = next
	}
	if member.JoinedOn.IsZero() {
		member.JoinedOn = time.Now()
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return err
	}
	logger.Info("member created", "member_no", member.MemberNo, "name", member.Name)
	return nil
}

func (s *memberService) GetMember(ctx context.Context, memberNo int32) (*domain.Member, error) {
	return s.memberRepo.GetByMemberNo(ctx, memberNo)
}

func (s *memberService) UpdateMember(ctx context.Context, member *domain.Member) error {
	if member.ID == 0 {
		existing, err := s.memberRepo.GetByMemberNo(ctx, member.MemberNo)
		if err != nil {
			return err
		}
		member.ID = existing.ID
	}
	return s.memberRepo.Update(ctx, member)
}

func (s *memberService) ListActiveMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.ListActive(ctx)
}

func (s *memberService) NextMemberNo(ctx context.Context) (int32, error) {
	return s.memberRepo.NextMemberNo(ctx)
}

func (s *memberService) SearchByName(ctx context.Context, query string) ([]domain.Member, error) {
	return s.memberRepo.SearchByName(ctx, query)
}

func (s *memberService) SearchByArea(ctx context.Context, area string) ([]domain.Member, error) {
	return s.memberRepo.SearchByArea(ctx, area)
}

func (s *memberService) Fines(ctx context.Context, memberNo int32) ([]domain.Fine, error) {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, err
	}
	return s.memberRepo.ListFines(ctx, member.ID)
}

func (s *memberService) DeleteFine(ctx context.Context, memberNo int32, fineID int64) error {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return err
	}
	if err := s.memberRepo.DeleteFine(ctx, member.ID, fineID); err != nil {
		return err
	}
	logger.Info("fine removed", "member_no", memberNo, "fine_id", fineID)
	return nil
}

func (s *memberService) Family(ctx context.Context, memberNo int32) (*domain.Member, []domain.Dependent, error) {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, nil, err
	}
	deps, err := s.memberRepo.ListDependents(ctx, member.ID)
	if err != nil {
		return nil, nil, err
	}
	return member, deps, nil
}

func (s *memberService) AddDependent(ctx context.Context, memberNo int32, dep *domain.Dependent) error {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return err
	}
	dep.MemberID = member.ID
	return s.memberRepo.AddDependent(ctx, dep)
}

func (s *memberService) MarkMemberDied(ctx context.Context, memberNo int32, diedOn time.Time) error {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return err
	}
	if diedOn.IsZero() {
		diedOn = time.Now()
	}
	if err := s.memberRepo.SetDiedOn(ctx, member.ID, diedOn); err != nil {
		return err
	}
	logger.Info("member marked deceased", "member_no", memberNo)
	return nil
}

func (s *memberService) MarkDependentDied(ctx context.Context, dependentID int64, diedOn time.Time) error {
	if diedOn.IsZero() {
		diedOn = time.Now()
	}
	return s.memberRepo.SetDependentDiedOn(ctx, dependentID, diedOn)
}
