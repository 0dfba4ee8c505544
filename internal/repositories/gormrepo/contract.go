package gormrepo

import (
	"context"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type contractRepo struct {
	db *gorm.DB
}

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) error {
	if c.Status == "" {
		c.Status = models.ContractStatusPending
	}
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(contractRowFrom(c)).Error)
}

func (r *contractRepo) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	var row contractRow
	if err := r.db.WithContext(ctx).Where("contract_id = ?", id).First(&row).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return row.model(), nil
}

func (r *contractRepo) List(ctx context.Context, filter repositories.ContractFilter) ([]*models.Contract, error) {
	q := r.db.WithContext(ctx).Order("contract_id")
	if filter.AgentID != nil {
		q = q.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ApartmentID != nil {
		q = q.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	var rows []contractRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Contract, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].model())
	}
	return out, nil
}

func (r *contractRepo) Update(ctx context.Context, c *models.Contract) error {
	return expectAffected(r.db.WithContext(ctx).Model(&contractRow{}).
		Where("contract_id = ?", c.ContractID).
		Updates(map[string]any{
			"agent_id":     c.AgentID,
			"client_id":    c.ClientID,
			"apartment_id": c.ApartmentID,
			"status":       string(c.Status),
			"start_date":   c.StartDate,
			"end_date":     c.EndDate,
		}))
}

func (r *contractRepo) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.WithContext(ctx).Where("contract_id = ?", id).Delete(&contractRow{}))
}
