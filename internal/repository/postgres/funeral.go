package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type funeralRepository struct {
	db *sql.DB
}

func NewFuneralRepository(db *sql.DB) repository.FuneralRepository {
	return &funeralRepository{db: db}
}

const funeralColumns = `id, date, member_id, deceased_ref, cemetery_assignments,
	funeral_assignments, removed_members, event_absents, assignment_absents, extra_due_members`

func scanFuneral(row interface{ Scan(...any) error }) (*domain.Funeral, error) {
	var f domain.Funeral
	var cemetery, work, removed, eventAbs, assignAbs, extraDue pq.Int32Array
	err := row.Scan(&f.ID, &f.Date, &f.MemberID, &f.DeceasedRef,
		&cemetery, &work, &removed, &eventAbs, &assignAbs, &extraDue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f.CemeteryAssignments = cemetery
	f.FuneralAssignments = work
	f.RemovedMembers = removed
	f.EventAbsents = eventAbs
	f.AssignmentAbsents = assignAbs
	f.ExtraDueMembers = extraDue
	return &f, nil
}

func (r *funeralRepository) Create(ctx context.Context, funeral *domain.Funeral) error {
	query := `INSERT INTO funerals (date, member_id, deceased_ref, cemetery_assignments,
	          funeral_assignments, removed_members, event_absents, assignment_absents, extra_due_members)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, funeral.Date, funeral.MemberID, funeral.DeceasedRef,
		pq.Array(funeral.CemeteryAssignments), pq.Array(funeral.FuneralAssignments),
		pq.Array(funeral.RemovedMembers), pq.Array(funeral.EventAbsents),
		pq.Array(funeral.AssignmentAbsents), pq.Array(funeral.ExtraDueMembers)).
		Scan(&funeral.ID)
}

func (r *funeralRepository) GetByID(ctx context.Context, id int64) (*domain.Funeral, error) {
	query := `SELECT ` + funeralColumns + ` FROM funerals WHERE id = $1`
	return scanFuneral(r.db.QueryRowContext(ctx, query, id))
}

func (r *funeralRepository) GetByDeceasedRef(ctx context.Context, deceasedRef string) (*domain.Funeral, error) {
	query := `SELECT ` + funeralColumns + ` FROM funerals WHERE deceased_ref = $1`
	return scanFuneral(r.db.QueryRowContext(ctx, query, deceasedRef))
}

func (r *funeralRepository) Latest(ctx context.Context) (*domain.Funeral, error) {
	query := `SELECT ` + funeralColumns + ` FROM funerals ORDER BY id DESC LIMIT 1`
	return scanFuneral(r.db.QueryRowContext(ctx, query))
}

func (r *funeralRepository) List(ctx context.Context, limit int32) ([]domain.Funeral, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + funeralColumns + ` FROM funerals ORDER BY date DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var funerals []domain.Funeral
	for rows.Next() {
		f, err := scanFuneral(rows)
		if err != nil {
			return nil, err
		}
		funerals = append(funerals, *f)
	}
	return funerals, rows.Err()
}

func (r *funeralRepository) UpdateEventAbsents(ctx context.Context, id int64, absents []int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE funerals SET event_absents = $1 WHERE id = $2`,
		pq.Array(absents), id)
	return err
}

func (r *funeralRepository) UpdateAssignmentAbsents(ctx context.Context, id int64, absents []int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE funerals SET assignment_absents = $1 WHERE id = $2`,
		pq.Array(absents), id)
	return err
}

func (r *funeralRepository) AddExtraDueMember(ctx context.Context, id int64, memberNo int32) error {
	// Append only when not already present. COALESCE keeps the guard
	// from evaluating to NULL on a never-initialized roster, which would
	// match zero rows and drop the append.
	query := `UPDATE funerals
	          SET extra_due_members = array_append(COALESCE(extra_due_members, '{}'), $1)
	          WHERE id = $2 AND NOT ($1 = ANY(COALESCE(extra_due_members, '{}')))`
	_, err := r.db.ExecContext(ctx, query, memberNo, id)
	return err
}
