package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
)

type ChecklistRepository struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) Create(ctx context.Context, checklist *model.RentalChecklist) error {
	return r.db.WithContext(ctx).Create(checklist).Error
}

func (r *ChecklistRepository) GetByID(ctx context.Context, id string) (*model.RentalChecklist, error) {
	var checklist model.RentalChecklist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&checklist).Error
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

type ChecklistListFilter struct {
	GeneratorID *string
	CustomerID  *string
}

func (r *ChecklistRepository) List(ctx context.Context, filter ChecklistListFilter) ([]model.RentalChecklist, error) {
	var checklists []model.RentalChecklist
	query := r.db.WithContext(ctx).Model(&model.RentalChecklist{})

	if filter.GeneratorID != nil {
		query = query.Where("generator_id = ?", *filter.GeneratorID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	if err := query.Order("created_at DESC").Find(&checklists).Error; err != nil {
		return nil, err
	}

	return checklists, nil
}
