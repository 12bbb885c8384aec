package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type receiptService struct {
	memberRepo     repository.MemberRepository
	membershipRepo repository.MembershipPaymentRepository
	fineRepo       repository.FinePaymentRepository
}

func NewReceiptService(
	memberRepo repository.MemberRepository,
	membershipRepo repository.MembershipPaymentRepository,
	fineRepo repository.FinePaymentRepository,
) ReceiptService {
	return &receiptService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		fineRepo:       fineRepo,
	}
}

// CreateReceipts processes a collection-day sheet line by line. A bad
// line is reported and skipped rather than failing the whole batch;
// collection days are busy and the rest of the sheet still has to land.
func (s *receiptService) CreateReceipts(ctx context.Context, date time.Time, lines []domain.ReceiptLine) (*domain.ReceiptResult, error) {
	if date.IsZero() {
		return nil, errors.New("receipt date is required")
	}

	result := &domain.ReceiptResult{}
	for _, line := range lines {
		if line.MembershipPayment == 0 && line.FinePayment == 0 {
			continue
		}
		if line.MembershipPayment < 0 || line.FinePayment < 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("member %d: negative amount", line.MemberNo))
			continue
		}

		member, err := s.memberRepo.GetByMemberNo(ctx, line.MemberNo)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("member %d: %v", line.MemberNo, err))
			continue
		}

		if line.MembershipPayment > 0 {
			payment := &domain.MembershipPayment{
				MemberID: member.ID,
				Date:     date,
				Amount:   line.MembershipPayment,
			}
			if err := s.membershipRepo.Insert(ctx, payment); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("member %d: membership payment: %v", line.MemberNo, err))
				continue
			}
			result.MembershipPayments++
		}

		if line.FinePayment > 0 {
			payment := &domain.FinePayment{
				MemberID: member.ID,
				Date:     date,
				Amount:   line.FinePayment,
			}
			if err := s.fineRepo.Insert(ctx, payment); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("member %d: fine payment: %v", line.MemberNo, err))
				continue
			}
			if err := s.memberRepo.AdjustPreviousDue(ctx, member.ID, -line.FinePayment); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("member %d: due adjustment: %v", line.MemberNo, err))
				continue
			}
			result.FinePayments++
		}
	}

	logger.Info("receipt batch processed",
		"date", date.Format("2006-01-02"),
		"membership_payments", result.MembershipPayments,
		"fine_payments", result.FinePayments,
		"errors", len(result.Errors))
	return result, nil
}

func (s *receiptService) ReceiptsByDate(ctx context.Context, date time.Time) ([]domain.MembershipPayment, []domain.FinePayment, error) {
	membership, err := s.membershipRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	fines, err := s.fineRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	return membership, fines, nil
}

// DeleteFinePayment removes a fine payment and restores exactly the
// amount that was subtracted from the member's previous due when it was
// recorded.
func (s *receiptService) DeleteFinePayment(ctx context.Context, id int64) error {
	payment, err := s.fineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.fineRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.memberRepo.AdjustPreviousDue(ctx, payment.MemberID, payment.Amount); err != nil {
		return err
	}
	logger.Info("fine payment deleted", "payment_id", id, "amount", payment.Amount)
	return nil
}

func (s *receiptService) DeleteMembershipPayment(ctx context.Context, id int64) error {
	if err := s.membershipRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("membership payment deleted", "payment_id", id)
	return nil
}
