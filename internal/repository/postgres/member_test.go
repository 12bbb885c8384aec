package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

func TestMemberRepository_AdjustPreviousDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)

	// A fine payment subtracts; deleting that payment adds the same
	// amount back.
	mock.ExpectExec("UPDATE members SET previous_due = previous_due \\+ \\$1").
		WithArgs(int64(-500), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE members SET previous_due = previous_due \\+ \\$1").
		WithArgs(int64(500), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.AdjustPreviousDue(context.Background(), 1, -500))
	assert.NoError(t, repo.AdjustPreviousDue(context.Background(), 1, 500))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_RemoveFinesForEvent_EmptyListIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)

	err = repo.RemoveFinesForEvent(context.Background(), nil, 7, domain.FineTypeFuneral)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_IncrementMeetingAbsents_ReturnsUpdatedCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "member_no", "name", "area", "mobile", "status", "previous_due",
		"meeting_absents", "blacklisted", "siblings_count", "joined_on", "died_on", "deactivated_at",
	}).AddRow(1, 10, "Perera", "north", "0771234567", "regular", 0, 3, false, 0, time.Now(), nil, nil)

	mock.ExpectQuery("UPDATE members SET meeting_absents = meeting_absents \\+ 1").
		WillReturnRows(rows)

	members, err := repo.IncrementMeetingAbsents(context.Background(), []int32{10})
	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, int32(3), members[0].MeetingAbsents)
}

func TestMemberRepository_NextMemberNo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)

	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(member_no\\), 0\\) \\+ 1 FROM members").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(42))

	next, err := repo.NextMemberNo(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(42), next)
}
