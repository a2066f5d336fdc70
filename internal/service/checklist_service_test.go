package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
)

type fakeChecklistStore struct {
	checklists map[uuid.UUID]*model.RentalChecklist
}

func newFakeChecklistStore() *fakeChecklistStore {
	return &fakeChecklistStore{checklists: make(map[uuid.UUID]*model.RentalChecklist)}
}

func (f *fakeChecklistStore) Create(ctx context.Context, c *model.RentalChecklist) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	f.checklists[c.ID] = &stored
	return nil
}

func (f *fakeChecklistStore) GetByID(ctx context.Context, id string) (*model.RentalChecklist, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	c, ok := f.checklists[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeChecklistStore) List(ctx context.Context, filter repository.ChecklistListFilter) ([]model.RentalChecklist, error) {
	var out []model.RentalChecklist
	for _, c := range f.checklists {
		out = append(out, *c)
	}
	return out, nil
}

type fakeCustomerStore struct {
	customers map[uuid.UUID]*model.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: make(map[uuid.UUID]*model.Customer)}
}

func (f *fakeCustomerStore) Create(ctx context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	f.customers[c.ID] = &stored
	return nil
}

func (f *fakeCustomerStore) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	c, ok := f.customers[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerStore) Update(ctx context.Context, c *model.Customer) error {
	stored := *c
	f.customers[c.ID] = &stored
	return nil
}

func (f *fakeCustomerStore) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(f.customers, parsed)
	return nil
}

func (f *fakeCustomerStore) List(ctx context.Context, filter repository.CustomerListFilter) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

type checklistFixture struct {
	svc        *ChecklistService
	generators *fakeGeneratorStore
	generator  *model.Generator
	customer   *model.Customer
	office     model.Principal
}

func newChecklistFixture(t *testing.T) *checklistFixture {
	t.Helper()
	ctx := context.Background()

	checklists := newFakeChecklistStore()
	generators := newFakeGeneratorStore()
	customers := newFakeCustomerStore()

	generator := &model.Generator{
		SerialNumber: "GX390002",
		Brand:        "Honda",
		Model:        "GX390",
		PowerKVA:     7.5,
		Status:       model.GeneratorStatusAvailable,
		HoursMeter:   100,
	}
	require.NoError(t, generators.Create(ctx, generator))

	customer := &model.Customer{Name: "Construtora Alfa", DocumentNumber: "12345678000190"}
	require.NoError(t, customers.Create(ctx, customer))

	return &checklistFixture{
		svc:        NewChecklistService(checklists, generators, customers),
		generators: generators,
		generator:  generator,
		customer:   customer,
		office:     model.Principal{UserID: uuid.New(), Role: model.RoleOffice},
	}
}

func (f *checklistFixture) input(direction model.ChecklistDirection, hours float64) ChecklistInput {
	return ChecklistInput{
		GeneratorID:     f.generator.ID.String(),
		CustomerID:      f.customer.ID.String(),
		Direction:       direction,
		FuelLevelOK:     true,
		HoursMeter:      hours,
		CablesIncluded:  true,
		GroundingTested: true,
	}
}

func TestChecklistService_DeliveryRentsGenerator(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	checklist, err := f.svc.Create(ctx, f.office, f.input(model.ChecklistDirectionDelivery, 100))

	require.NoError(t, err)
	assert.Equal(t, model.ChecklistDirectionDelivery, checklist.Direction)

	generator, err := f.generators.GetByID(ctx, f.generator.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.GeneratorStatusRented, generator.Status)
	require.NotNil(t, generator.CurrentCustomerID)
	assert.Equal(t, f.customer.ID, *generator.CurrentCustomerID)
}

func TestChecklistService_ReturnReleasesGenerator(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.office, f.input(model.ChecklistDirectionDelivery, 100))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.office, f.input(model.ChecklistDirectionReturn, 180))
	require.NoError(t, err)

	generator, err := f.generators.GetByID(ctx, f.generator.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.GeneratorStatusAvailable, generator.Status)
	assert.Nil(t, generator.CurrentCustomerID)
	assert.Equal(t, 180.0, generator.HoursMeter)
}

func TestChecklistService_DeliveryRequiresAvailable(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.office, f.input(model.ChecklistDirectionDelivery, 100))
	require.NoError(t, err)

	// Already rented: a second delivery is refused.
	_, err = f.svc.Create(ctx, f.office, f.input(model.ChecklistDirectionDelivery, 100))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChecklistService_ReturnRequiresSameCustomer(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.office, f.input(model.ChecklistDirectionDelivery, 100))
	require.NoError(t, err)

	other := &model.Customer{Name: "Construtora Beta", DocumentNumber: "98765432000110"}
	require.NoError(t, f.svc.customerStore.Create(ctx, other))

	input := f.input(model.ChecklistDirectionReturn, 150)
	input.CustomerID = other.ID.String()

	_, err = f.svc.Create(ctx, f.office, input)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChecklistService_TechnicianCannotCreate(t *testing.T) {
	f := newChecklistFixture(t)

	techID := uuid.New()
	tech := model.Principal{UserID: uuid.New(), Role: model.RoleTechnician, TechnicianID: &techID}

	_, err := f.svc.Create(context.Background(), tech, f.input(model.ChecklistDirectionDelivery, 100))
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
