package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Customer{}).Error
}

type CustomerListFilter struct {
	Search *string
}

func (r *CustomerRepository) List(ctx context.Context, filter CustomerListFilter) ([]model.Customer, error) {
	var customers []model.Customer
	query := r.db.WithContext(ctx).Model(&model.Customer{})

	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("name ILIKE ? OR document_number ILIKE ?", pattern, pattern)
	}

	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}

	return customers, nil
}
