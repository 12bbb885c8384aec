package service

import (
	"context"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type attendanceService struct {
	meetingRepo  repository.MeetingRepository
	memberRepo   repository.MemberRepository
	meetingFine  int64
	fineInterval int32
}

func NewAttendanceService(
	meetingRepo repository.MeetingRepository,
	memberRepo repository.MemberRepository,
	meetingFine int64,
	fineInterval int32,
) AttendanceService {
	return &attendanceService{
		meetingRepo:  meetingRepo,
		memberRepo:   memberRepo,
		meetingFine:  meetingFine,
		fineInterval: fineInterval,
	}
}

// SaveAttendance records a meeting's absence list, resets the consecutive
// absence counter for everyone who showed up, increments it for the
// absent, and fines each member whose counter just reached a multiple of
// the fine interval.
func (s *attendanceService) SaveAttendance(ctx context.Context, date time.Time, absentNos []int32) (*domain.Meeting, error) {
	if date.IsZero() {
		return nil, errors.New("meeting date is required")
	}

	eligible, err := s.memberRepo.ListForAttendance(ctx)
	if err != nil {
		return nil, err
	}

	absentSet := toSet(absentNos)
	var present, absent []int32
	for _, m := range eligible {
		if absentSet[m.MemberNo] {
			absent = append(absent, m.MemberNo)
		} else {
			present = append(present, m.MemberNo)
		}
	}

	meeting := &domain.Meeting{Date: date, Absents: absent}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}

	if len(present) > 0 {
		if err := s.memberRepo.ResetMeetingAbsents(ctx, present); err != nil {
			return nil, err
		}
	}

	fined := 0
	if len(absent) > 0 {
		updated, err := s.memberRepo.IncrementMeetingAbsents(ctx, absent)
		if err != nil {
			return nil, err
		}
		for _, m := range updated {
			if m.MeetingAbsents == 0 || m.MeetingAbsents%s.fineInterval != 0 {
				continue
			}
			fine := &domain.Fine{
				MemberID:  m.ID,
				EventID:   meeting.ID,
				EventType: domain.FineTypeMeeting,
				Amount:    s.meetingFine,
			}
			if err := s.memberRepo.AddFine(ctx, fine); err != nil {
				return nil, err
			}
			fined++
		}
	}

	logger.Info("meeting attendance saved",
		"meeting_id", meeting.ID,
		"absent", len(absent),
		"present", len(present),
		"fined", fined)
	return meeting, nil
}

// GetAttendance returns the presence matrix for every recorded meeting
// along with the member numbers it covers.
func (s *attendanceService) GetAttendance(ctx context.Context) ([]domain.MeetingAttendance, []int32, error) {
	meetings, err := s.meetingRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.memberRepo.ListForAttendance(ctx)
	if err != nil {
		return nil, nil, err
	}

	memberNos := make([]int32, 0, len(members))
	for _, m := range members {
		memberNos = append(memberNos, m.MemberNo)
	}

	matrix := make([]domain.MeetingAttendance, 0, len(meetings))
	for _, meeting := range meetings {
		absentSet := toSet(meeting.Absents)
		records := make([]domain.AttendanceRecord, 0, len(memberNos))
		for _, no := range memberNos {
			records = append(records, domain.AttendanceRecord{
				MemberNo: no,
				Present:  !absentSet[no],
			})
		}
		matrix = append(matrix, domain.MeetingAttendance{
			Date:       meeting.Date,
			Attendance: records,
		})
	}
	return matrix, memberNos, nil
}
