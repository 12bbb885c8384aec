package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type incomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) repository.IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, income *domain.Income) error {
	query := `INSERT INTO incomes (date, category, description, amount, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if income.CreatedOn.IsZero() {
		income.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, income.Date, income.Category,
		income.Description, income.Amount, income.CreatedOn).Scan(&income.ID)
}

func (r *incomeRepository) GetByID(ctx context.Context, id int64) (*domain.Income, error) {
	var in domain.Income
	query := `SELECT id, date, category, description, amount, created_on FROM incomes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&in.ID, &in.Date, &in.Category, &in.Description, &in.Amount, &in.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *incomeRepository) List(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Income, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT COUNT(*) FROM incomes WHERE date >= $1 AND date <= $2`
	if err := r.db.QueryRowContext(ctx, countQuery, from, to).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, date, category, description, amount, created_on FROM incomes
	          WHERE date >= $1 AND date <= $2 ORDER BY date DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, from, to, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var incomes []domain.Income
	for rows.Next() {
		var in domain.Income
		if err := rows.Scan(&in.ID, &in.Date, &in.Category, &in.Description, &in.Amount, &in.CreatedOn); err != nil {
			return nil, 0, err
		}
		incomes = append(incomes, in)
	}
	return incomes, count, rows.Err()
}

func (r *incomeRepository) Update(ctx context.Context, income *domain.Income) error {
	query := `UPDATE incomes SET date = $1, category = $2, description = $3, amount = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, income.Date, income.Category,
		income.Description, income.Amount, income.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *incomeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *incomeRepository) Summary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error) {
	query := `SELECT category, COALESCE(SUM(amount), 0), COUNT(*) FROM incomes
	          WHERE date >= $1 AND date <= $2 GROUP BY category ORDER BY category`
	return querySummaries(ctx, r.db, query, from, to)
}

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `INSERT INTO expenses (date, category, description, amount, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if expense.CreatedOn.IsZero() {
		expense.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, expense.Date, expense.Category,
		expense.Description, expense.Amount, expense.CreatedOn).Scan(&expense.ID)
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	var ex domain.Expense
	query := `SELECT id, date, category, description, amount, created_on FROM expenses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&ex.ID, &ex.Date, &ex.Category, &ex.Description, &ex.Amount, &ex.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *expenseRepository) List(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Expense, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT COUNT(*) FROM expenses WHERE date >= $1 AND date <= $2`
	if err := r.db.QueryRowContext(ctx, countQuery, from, to).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, date, category, description, amount, created_on FROM expenses
	          WHERE date >= $1 AND date <= $2 ORDER BY date DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, from, to, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var ex domain.Expense
		if err := rows.Scan(&ex.ID, &ex.Date, &ex.Category, &ex.Description, &ex.Amount, &ex.CreatedOn); err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, ex)
	}
	return expenses, count, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `UPDATE expenses SET date = $1, category = $2, description = $3, amount = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, expense.Date, expense.Category,
		expense.Description, expense.Amount, expense.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepository) Summary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error) {
	query := `SELECT category, COALESCE(SUM(amount), 0), COUNT(*) FROM expenses
	          WHERE date >= $1 AND date <= $2 GROUP BY category ORDER BY category`
	return querySummaries(ctx, r.db, query, from, to)
}

func querySummaries(ctx context.Context, db *sql.DB, query string, args ...any) ([]domain.CategorySummary, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.CategorySummary
	for rows.Next() {
		var s domain.CategorySummary
		if err := rows.Scan(&s.Category, &s.Total, &s.Count); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
