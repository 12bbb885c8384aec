package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type meetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) repository.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	query := `INSERT INTO meetings (date, absents) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, meeting.Date, pq.Array(meeting.Absents)).Scan(&meeting.ID)
}

func (r *meetingRepository) List(ctx context.Context) ([]domain.Meeting, error) {
	query := `SELECT id, date, absents FROM meetings ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		var absents pq.Int32Array
		if err := rows.Scan(&m.ID, &m.Date, &absents); err != nil {
			return nil, err
		}
		m.Absents = absents
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
