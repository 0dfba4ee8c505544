package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/rental-service/internal/models"
)

// ContractFilter narrows List. Nil fields do not filter.
type ContractFilter struct {
	AgentID     *int64
	ClientID    *int64
	ApartmentID *int64
	Status      *models.ContractStatus
}

type ContractRepository interface {
	Create(ctx context.Context, c *models.Contract) error
	GetByID(ctx context.Context, id int64) (*models.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]*models.Contract, error)
	Update(ctx context.Context, c *models.Contract) error
	Delete(ctx context.Context, id int64) error
}

type contractRepo struct {
	db DB
}

func NewContractRepository(db DB) ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) error {
	if c.Status == "" {
		c.Status = models.ContractStatusPending
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO contracts (
			contract_id, agent_id, client_id, apartment_id, status, start_date, end_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, c.ContractID, c.AgentID, c.ClientID, c.ApartmentID, string(c.Status), c.StartDate, c.EndDate)
	return translateError(err)
}

func (r *contractRepo) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	row := r.db.QueryRow(ctx, baseSelectContract()+" WHERE contract_id=$1", id)
	return r.scanContract(row)
}

func (r *contractRepo) List(ctx context.Context, filter ContractFilter) ([]*models.Contract, error) {
	var conds []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if filter.AgentID != nil {
		add("agent_id", *filter.AgentID)
	}
	if filter.ClientID != nil {
		add("client_id", *filter.ClientID)
	}
	if filter.ApartmentID != nil {
		add("apartment_id", *filter.ApartmentID)
	}
	if filter.Status != nil {
		add("status", string(*filter.Status))
	}

	query := baseSelectContract()
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY contract_id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Contract{}
	for rows.Next() {
		c, err := r.scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contractRepo) Update(ctx context.Context, c *models.Contract) error {
	return expectAffected(r.db.Exec(ctx, `
		UPDATE contracts SET
			agent_id=$1, client_id=$2, apartment_id=$3, status=$4, start_date=$5, end_date=$6
		WHERE contract_id=$7
	`, c.AgentID, c.ClientID, c.ApartmentID, string(c.Status), c.StartDate, c.EndDate, c.ContractID))
}

func (r *contractRepo) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM contracts WHERE contract_id=$1`, id))
}

func baseSelectContract() string {
	return `
		SELECT contract_id, agent_id, client_id, apartment_id, status, start_date, end_date
		FROM contracts`
}

func (r *contractRepo) scanContract(row pgx.Row) (*models.Contract, error) {
	var c models.Contract
	var status string
	var start, end pgtype.Date
	if err := row.Scan(&c.ContractID, &c.AgentID, &c.ClientID, &c.ApartmentID, &status, &start, &end); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.Status = models.ContractStatus(status)
	c.StartDate = dateOrNil(start)
	c.EndDate = dateOrNil(end)
	return &c, nil
}
