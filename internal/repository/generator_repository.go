package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
)

type GeneratorRepository struct {
	db *gorm.DB
}

func NewGeneratorRepository(db *gorm.DB) *GeneratorRepository {
	return &GeneratorRepository{db: db}
}

func (r *GeneratorRepository) Create(ctx context.Context, generator *model.Generator) error {
	return r.db.WithContext(ctx).Create(generator).Error
}

func (r *GeneratorRepository) GetByID(ctx context.Context, id string) (*model.Generator, error) {
	var generator model.Generator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&generator).Error
	if err != nil {
		return nil, err
	}
	return &generator, nil
}

func (r *GeneratorRepository) GetBySerialNumber(ctx context.Context, serial string) (*model.Generator, error) {
	var generator model.Generator
	err := r.db.WithContext(ctx).Where("serial_number = ?", serial).First(&generator).Error
	if err != nil {
		return nil, err
	}
	return &generator, nil
}

func (r *GeneratorRepository) Update(ctx context.Context, generator *model.Generator) error {
	return r.db.WithContext(ctx).Save(generator).Error
}

func (r *GeneratorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Generator{}).Error
}

type GeneratorListFilter struct {
	Status     *model.GeneratorStatus
	CustomerID *string
	Search     *string
}

func (r *GeneratorRepository) List(ctx context.Context, filter GeneratorListFilter) ([]model.Generator, error) {
	var generators []model.Generator
	query := r.db.WithContext(ctx).Model(&model.Generator{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("current_customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("serial_number ILIKE ? OR brand ILIKE ? OR model ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Order("created_at DESC").Find(&generators).Error; err != nil {
		return nil, err
	}

	return generators, nil
}
