package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
)

type TechnicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

func (r *TechnicianRepository) Create(ctx context.Context, technician *model.Technician) error {
	return r.db.WithContext(ctx).Create(technician).Error
}

func (r *TechnicianRepository) GetByID(ctx context.Context, id string) (*model.Technician, error) {
	var technician model.Technician
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&technician).Error
	if err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *TechnicianRepository) Update(ctx context.Context, technician *model.Technician) error {
	return r.db.WithContext(ctx).Save(technician).Error
}

func (r *TechnicianRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Technician{}).Error
}

type TechnicianListFilter struct {
	ActiveOnly bool
}

func (r *TechnicianRepository) List(ctx context.Context, filter TechnicianListFilter) ([]model.Technician, error) {
	var technicians []model.Technician
	query := r.db.WithContext(ctx).Model(&model.Technician{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("name ASC").Find(&technicians).Error; err != nil {
		return nil, err
	}

	return technicians, nil
}
