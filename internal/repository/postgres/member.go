package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, member_no, name, area, mobile, status, previous_due,
	meeting_absents, blacklisted, siblings_count, joined_on, died_on, deactivated_at`

func scanMember(row interface{ Scan(...any) error }) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.ID, &m.MemberNo, &m.Name, &m.Area, &m.Mobile, &m.Status,
		&m.PreviousDue, &m.MeetingAbsents, &m.Blacklisted, &m.SiblingsCount,
		&m.JoinedOn, &m.DiedOn, &m.DeactivatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `INSERT INTO members (member_no, name, area, mobile, status, previous_due, siblings_count, joined_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, member.MemberNo, member.Name, member.Area,
		member.Mobile, member.Status, member.PreviousDue, member.SiblingsCount, member.JoinedOn).
		Scan(&member.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) GetByMemberNo(ctx context.Context, memberNo int32) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_no = $1`
	return scanMember(r.db.QueryRowContext(ctx, query, memberNo))
}

func (r *memberRepository) GetByMemberNos(ctx context.Context, memberNos []int32) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_no = ANY($1) ORDER BY member_no`
	return r.queryMembers(ctx, query, pq.Array(memberNos))
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `UPDATE members SET name = $1, area = $2, mobile = $3, status = $4,
	          siblings_count = $5, deactivated_at = $6 WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, member.Name, member.Area, member.Mobile,
		member.Status, member.SiblingsCount, member.DeactivatedAt, member.ID)
	return err
}

func (r *memberRepository) NextMemberNo(ctx context.Context) (int32, error) {
	var next int32
	query := `SELECT COALESCE(MAX(member_no), 0) + 1 FROM members`
	err := r.db.QueryRowContext(ctx, query).Scan(&next)
	return next, err
}

func (r *memberRepository) SearchByName(ctx context.Context, q string) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE name ILIKE '%' || $1 || '%' ORDER BY member_no`
	return r.queryMembers(ctx, query, q)
}

func (r *memberRepository) SearchByArea(ctx context.Context, area string) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE area = $1 ORDER BY member_no`
	return r.queryMembers(ctx, query, area)
}

func (r *memberRepository) ListActive(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
	          WHERE deactivated_at IS NULL AND died_on IS NULL ORDER BY member_no`
	return r.queryMembers(ctx, query)
}

func (r *memberRepository) ListForAttendance(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
	          WHERE deactivated_at IS NULL AND died_on IS NULL
	          AND status NOT IN ('free', 'attendance-free') ORDER BY member_no`
	return r.queryMembers(ctx, query)
}

func (r *memberRepository) queryMembers(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *memberRepository) SetDiedOn(ctx context.Context, id int64, diedOn time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE members SET died_on = $1 WHERE id = $2`, diedOn, id)
	return err
}

func (r *memberRepository) SetBlacklisted(ctx context.Context, id int64, blacklisted bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE members SET blacklisted = $1 WHERE id = $2`, blacklisted, id)
	return err
}

func (r *memberRepository) AdjustPreviousDue(ctx context.Context, id int64, delta int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE members SET previous_due = previous_due + $1 WHERE id = $2`, delta, id)
	return err
}

func (r *memberRepository) ResetMeetingAbsents(ctx context.Context, memberNos []int32) error {
	if len(memberNos) == 0 {
		return nil
	}
	query := `UPDATE members SET meeting_absents = 0 WHERE member_no = ANY($1) AND meeting_absents > 0`
	_, err := r.db.ExecContext(ctx, query, pq.Array(memberNos))
	return err
}

func (r *memberRepository) IncrementMeetingAbsents(ctx context.Context, memberNos []int32) ([]domain.Member, error) {
	if len(memberNos) == 0 {
		return nil, nil
	}
	query := `UPDATE members SET meeting_absents = meeting_absents + 1
	          WHERE member_no = ANY($1) RETURNING ` + memberColumns
	return r.queryMembers(ctx, query, pq.Array(memberNos))
}

func (r *memberRepository) AddFine(ctx context.Context, fine *domain.Fine) error {
	query := `INSERT INTO fines (member_id, event_id, event_type, amount, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if fine.CreatedOn.IsZero() {
		fine.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, fine.MemberID, fine.EventID, fine.EventType,
		fine.Amount, fine.CreatedOn).Scan(&fine.ID)
}

func (r *memberRepository) DeleteFine(ctx context.Context, memberID, fineID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fines WHERE id = $1 AND member_id = $2`, fineID, memberID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepository) RemoveFinesForEvent(ctx context.Context, memberNos []int32, eventID int64, fineType domain.FineType) error {
	if len(memberNos) == 0 {
		return nil
	}
	query := `DELETE FROM fines WHERE event_id = $1 AND event_type = $2
	          AND member_id IN (SELECT id FROM members WHERE member_no = ANY($3))`
	_, err := r.db.ExecContext(ctx, query, eventID, fineType, pq.Array(memberNos))
	return err
}

func (r *memberRepository) ListFines(ctx context.Context, memberID int64) ([]domain.Fine, error) {
	query := `SELECT id, member_id, event_id, event_type, amount, created_on
	          FROM fines WHERE member_id = $1 ORDER BY created_on`
	return r.queryFines(ctx, query, memberID)
}

func (r *memberRepository) ListFinesForEvent(ctx context.Context, eventID int64, fineType domain.FineType) ([]domain.Fine, error) {
	query := `SELECT id, member_id, event_id, event_type, amount, created_on
	          FROM fines WHERE event_id = $1 AND event_type = $2 ORDER BY created_on`
	return r.queryFines(ctx, query, eventID, fineType)
}

func (r *memberRepository) queryFines(ctx context.Context, query string, args ...any) ([]domain.Fine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		var f domain.Fine
		if err := rows.Scan(&f.ID, &f.MemberID, &f.EventID, &f.EventType, &f.Amount, &f.CreatedOn); err != nil {
			return nil, err
		}
		fines = append(fines, f)
	}
	return fines, rows.Err()
}

func (r *memberRepository) FineTotals(ctx context.Context, memberIDs []int64) (map[int64]int64, error) {
	query := `SELECT member_id, COALESCE(SUM(amount), 0) FROM fines
	          WHERE member_id = ANY($1) GROUP BY member_id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(memberIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int64)
	for rows.Next() {
		var id, total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, err
		}
		totals[id] = total
	}
	return totals, rows.Err()
}

func (r *memberRepository) ListDependents(ctx context.Context, memberID int64) ([]domain.Dependent, error) {
	query := `SELECT id, member_id, name, relationship, died_on
	          FROM dependents WHERE member_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []domain.Dependent
	for rows.Next() {
		var d domain.Dependent
		if err := rows.Scan(&d.ID, &d.MemberID, &d.Name, &d.Relationship, &d.DiedOn); err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

func (r *memberRepository) AddDependent(ctx context.Context, dep *domain.Dependent) error {
	query := `INSERT INTO dependents (member_id, name, relationship) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, dep.MemberID, dep.Name, dep.Relationship).Scan(&dep.ID)
}

func (r *memberRepository) SetDependentDiedOn(ctx context.Context, dependentID int64, diedOn time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE dependents SET died_on = $1 WHERE id = $2`, diedOn, dependentID)
	return err
}
