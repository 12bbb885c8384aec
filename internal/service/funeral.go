package service

import (
	"context"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type funeralService struct {
	funeralRepo     repository.FuneralRepository
	memberRepo      repository.MemberRepository
	funeralFine     int64
	funeralWorkFine int64
}

func NewFuneralService(
	funeralRepo repository.FuneralRepository,
	memberRepo repository.MemberRepository,
	funeralFine, funeralWorkFine int64,
) FuneralService {
	return &funeralService{
		funeralRepo:     funeralRepo,
		memberRepo:      memberRepo,
		funeralFine:     funeralFine,
		funeralWorkFine: funeralWorkFine,
	}
}

func (s *funeralService) CreateFuneral(ctx context.Context, funeral *domain.Funeral) error {
	if funeral.DeceasedRef == "" {
		return errors.New("deceased reference is required")
	}
	if funeral.Date.IsZero() {
		funeral.Date = time.Now()
	}
	if err := s.funeralRepo.Create(ctx, funeral); err != nil {
		return err
	}
	logger.Info("funeral recorded",
		"funeral_id", funeral.ID,
		"deceased", funeral.DeceasedRef,
		"cemetery_assignments", len(funeral.CemeteryAssignments))
	return nil
}

func (s *funeralService) GetFuneral(ctx context.Context, id int64) (*domain.Funeral, error) {
	return s.funeralRepo.GetByID(ctx, id)
}

func (s *funeralService) FuneralByDeceased(ctx context.Context, deceasedRef string) (*domain.Funeral, error) {
	return s.funeralRepo.GetByDeceasedRef(ctx, deceasedRef)
}

func (s *funeralService) ListFunerals(ctx context.Context, limit int32) ([]domain.Funeral, error) {
	return s.funeralRepo.List(ctx, limit)
}

func (s *funeralService) LastAssignmentInfo(ctx context.Context) (int32, []int32, error) {
	latest, err := s.funeralRepo.Latest(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	var anchor int32
	if n := len(latest.CemeteryAssignments); n > 0 {
		anchor = latest.CemeteryAssignments[n-1]
	}
	return anchor, latest.RemovedMembers, nil
}

// UpdateEventAbsents replaces the funeral's attendance absence list and
// reconciles fines against the previous list: members no longer absent
// get their fine for this funeral removed, newly absent members are
// fined unless they were on duty, removed from the roster, or hold a
// fine-exempt status.
func (s *funeralService) UpdateEventAbsents(ctx context.Context, funeralID int64, absents []int32) (int, int, error) {
	funeral, err := s.funeralRepo.GetByID(ctx, funeralID)
	if err != nil {
		return 0, 0, err
	}

	excluded := toSet(funeral.CemeteryAssignments)
	addToSet(excluded, funeral.FuneralAssignments)
	addToSet(excluded, funeral.RemovedMembers)

	added, removed, err := s.reconcileFines(ctx, funeral.ID, domain.FineTypeFuneral,
		s.funeralFine, funeral.EventAbsents, absents, excluded, true)
	if err != nil {
		return 0, 0, err
	}

	if err := s.funeralRepo.UpdateEventAbsents(ctx, funeralID, absents); err != nil {
		return 0, 0, err
	}
	logger.Info("funeral attendance updated",
		"funeral_id", funeralID, "fines_added", added, "fines_removed", removed)
	return added, removed, nil
}

// UpdateWorkAttendance does the same reconciliation for funeral work
// duty. Duty absences are fined regardless of assignment lists; only the
// fine-exempt statuses are skipped.
func (s *funeralService) UpdateWorkAttendance(ctx context.Context, funeralID int64, absents []int32) (int, int, error) {
	funeral, err := s.funeralRepo.GetByID(ctx, funeralID)
	if err != nil {
		return 0, 0, err
	}

	added, removed, err := s.reconcileFines(ctx, funeral.ID, domain.FineTypeFuneralWork,
		s.funeralWorkFine, funeral.AssignmentAbsents, absents, nil, true)
	if err != nil {
		return 0, 0, err
	}

	if err := s.funeralRepo.UpdateAssignmentAbsents(ctx, funeralID, absents); err != nil {
		return 0, 0, err
	}
	logger.Info("funeral work attendance updated",
		"funeral_id", funeralID, "fines_added", added, "fines_removed", removed)
	return added, removed, nil
}

// reconcileFines diffs the old and new absence lists for one event.
// Members present again lose their event fine; newly absent members gain
// one unless excluded or, when skipExempt is set, fine-exempt by status.
func (s *funeralService) reconcileFines(
	ctx context.Context,
	eventID int64,
	fineType domain.FineType,
	amount int64,
	oldAbsents, newAbsents []int32,
	excluded map[int32]bool,
	skipExempt bool,
) (int, int, error) {
	newSet := toSet(newAbsents)
	oldSet := toSet(oldAbsents)

	var nowPresent []int32
	for _, no := range oldAbsents {
		if !newSet[no] {
			nowPresent = append(nowPresent, no)
		}
	}
	if len(nowPresent) > 0 {
		if err := s.memberRepo.RemoveFinesForEvent(ctx, nowPresent, eventID, fineType); err != nil {
			return 0, 0, err
		}
	}

	var newlyAbsent []int32
	for _, no := range newAbsents {
		if !oldSet[no] && !excluded[no] {
			newlyAbsent = append(newlyAbsent, no)
		}
	}
	if len(newlyAbsent) == 0 {
		return 0, len(nowPresent), nil
	}

	members, err := s.memberRepo.GetByMemberNos(ctx, newlyAbsent)
	if err != nil {
		return 0, 0, err
	}
	added := 0
	for _, m := range members {
		if skipExempt && !m.FinableForAttendance() {
			continue
		}
		fine := &domain.Fine{
			MemberID:  m.ID,
			EventID:   eventID,
			EventType: fineType,
			Amount:    amount,
		}
		if err := s.memberRepo.AddFine(ctx, fine); err != nil {
			return added, len(nowPresent), err
		}
		added++
	}
	return added, len(nowPresent), nil
}

func (s *funeralService) AddExtraDueFine(ctx context.Context, deceasedRef string, memberNo int32, amount int64) error {
	if amount <= 0 {
		return errors.New("extra due amount must be positive")
	}
	funeral, err := s.funeralRepo.GetByDeceasedRef(ctx, deceasedRef)
	if err != nil {
		return err
	}
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return err
	}

	// The set guard in the repository keeps re-submits from listing the
	// member twice; the fine insert below is what carries the amount.
	if err := s.funeralRepo.AddExtraDueMember(ctx, funeral.ID, memberNo); err != nil {
		return err
	}
	fine := &domain.Fine{
		MemberID:  member.ID,
		EventID:   funeral.ID,
		EventType: domain.FineTypeExtraDue,
		Amount:    amount,
	}
	if err := s.memberRepo.AddFine(ctx, fine); err != nil {
		return err
	}
	logger.Info("extra due recorded",
		"funeral_id", funeral.ID, "member_no", memberNo, "amount", amount)
	return nil
}

func (s *funeralService) ExtraDueFines(ctx context.Context, deceasedRef string) ([]domain.Fine, error) {
	funeral, err := s.funeralRepo.GetByDeceasedRef(ctx, deceasedRef)
	if err != nil {
		return nil, err
	}
	return s.memberRepo.ListFinesForEvent(ctx, funeral.ID, domain.FineTypeExtraDue)
}

func toSet(nos []int32) map[int32]bool {
	set := make(map[int32]bool, len(nos))
	for _, no := range nos {
		set[no] = true
	}
	return set
}

func addToSet(set map[int32]bool, nos []int32) {
	for _, no := range nos {
		set[no] = true
	}
}
