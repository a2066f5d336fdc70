package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
)

// In-memory fakes for the store interfaces.

type fakeAssignmentStore struct {
	assignments map[uuid.UUID]*model.MaintenanceAssignment
	createErr   error
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: make(map[uuid.UUID]*model.MaintenanceAssignment)}
}

func (f *fakeAssignmentStore) Create(ctx context.Context, a *model.MaintenanceAssignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	stored := *a
	f.assignments[a.ID] = &stored
	return nil
}

func (f *fakeAssignmentStore) GetByID(ctx context.Context, id string) (*model.MaintenanceAssignment, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	a, ok := f.assignments[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssignmentStore) Update(ctx context.Context, a *model.MaintenanceAssignment) error {
	stored := *a
	f.assignments[a.ID] = &stored
	return nil
}

func (f *fakeAssignmentStore) SnapshotForTechnicianDay(ctx context.Context, technicianID uuid.UUID, date time.Time) ([]schedule.Slot, error) {
	var slots []schedule.Slot
	for _, a := range f.assignments {
		if a.TechnicianID == technicianID && schedule.SameDate(a.VisitDate, date) {
			slots = append(slots, a.Slot())
		}
	}
	return slots, nil
}

func (f *fakeAssignmentStore) List(ctx context.Context, filter repository.AssignmentListFilter) ([]model.MaintenanceAssignment, error) {
	var out []model.MaintenanceAssignment
	for _, a := range f.assignments {
		if filter.TechnicianID != nil && a.TechnicianID.String() != *filter.TechnicianID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssignmentStore) ListActiveBefore(ctx context.Context, date time.Time) ([]model.MaintenanceAssignment, error) {
	return nil, nil
}

func (f *fakeAssignmentStore) ListForDay(ctx context.Context, date time.Time) ([]model.MaintenanceAssignment, error) {
	return nil, nil
}

type fakeReportStore struct {
	reports map[uuid.UUID]*model.MaintenanceReport
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[uuid.UUID]*model.MaintenanceReport)}
}

func (f *fakeReportStore) Create(ctx context.Context, r *model.MaintenanceReport) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	stored := *r
	f.reports[r.AssignmentID] = &stored
	return nil
}

func (f *fakeReportStore) GetByAssignmentID(ctx context.Context, assignmentID uuid.UUID) (*model.MaintenanceReport, error) {
	r, ok := f.reports[assignmentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReportStore) ExistsForAssignment(ctx context.Context, assignmentID uuid.UUID) (bool, error) {
	_, ok := f.reports[assignmentID]
	return ok, nil
}

func (f *fakeReportStore) ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]model.MaintenanceReport, error) {
	var out []model.MaintenanceReport
	for _, r := range f.reports {
		if r.TechnicianID == technicianID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeTechnicianStore struct {
	technicians map[uuid.UUID]*model.Technician
}

func newFakeTechnicianStore() *fakeTechnicianStore {
	return &fakeTechnicianStore{technicians: make(map[uuid.UUID]*model.Technician)}
}

func (f *fakeTechnicianStore) Create(ctx context.Context, t *model.Technician) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	stored := *t
	f.technicians[t.ID] = &stored
	return nil
}

func (f *fakeTechnicianStore) GetByID(ctx context.Context, id string) (*model.Technician, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	t, ok := f.technicians[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTechnicianStore) Update(ctx context.Context, t *model.Technician) error {
	stored := *t
	f.technicians[t.ID] = &stored
	return nil
}

func (f *fakeTechnicianStore) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(f.technicians, parsed)
	return nil
}

func (f *fakeTechnicianStore) List(ctx context.Context, filter repository.TechnicianListFilter) ([]model.Technician, error) {
	var out []model.Technician
	for _, t := range f.technicians {
		if filter.ActiveOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

type fakeGeneratorStore struct {
	generators map[uuid.UUID]*model.Generator
}

func newFakeGeneratorStore() *fakeGeneratorStore {
	return &fakeGeneratorStore{generators: make(map[uuid.UUID]*model.Generator)}
}

func (f *fakeGeneratorStore) Create(ctx context.Context, g *model.Generator) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	stored := *g
	f.generators[g.ID] = &stored
	return nil
}

func (f *fakeGeneratorStore) GetByID(ctx context.Context, id string) (*model.Generator, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	g, ok := f.generators[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGeneratorStore) GetBySerialNumber(ctx context.Context, serial string) (*model.Generator, error) {
	for _, g := range f.generators {
		if g.SerialNumber == serial {
			copied := *g
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGeneratorStore) Update(ctx context.Context, g *model.Generator) error {
	stored := *g
	f.generators[g.ID] = &stored
	return nil
}

func (f *fakeGeneratorStore) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(f.generators, parsed)
	return nil
}

func (f *fakeGeneratorStore) List(ctx context.Context, filter repository.GeneratorListFilter) ([]model.Generator, error) {
	var out []model.Generator
	for _, g := range f.generators {
		out = append(out, *g)
	}
	return out, nil
}

// Fixture wiring shared by the assignment service tests.

type assignmentFixture struct {
	svc         *AssignmentService
	assignments *fakeAssignmentStore
	reports     *fakeReportStore
	technicians *fakeTechnicianStore
	generators  *fakeGeneratorStore
	technician  *model.Technician
	generator   *model.Generator
	office      model.Principal
	techUser    model.Principal
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	assignments := newFakeAssignmentStore()
	reports := newFakeReportStore()
	technicians := newFakeTechnicianStore()
	generators := newFakeGeneratorStore()

	technician := &model.Technician{Name: "Carlos", IsActive: true}
	require.NoError(t, technicians.Create(context.Background(), technician))

	generator := &model.Generator{
		SerialNumber: "GX390001",
		Brand:        "Honda",
		Model:        "GX390",
		PowerKVA:     7.5,
		Status:       model.GeneratorStatusAvailable,
	}
	require.NoError(t, generators.Create(context.Background(), generator))

	techID := technician.ID

	return &assignmentFixture{
		svc:         NewAssignmentService(assignments, reports, technicians, generators),
		assignments: assignments,
		reports:     reports,
		technicians: technicians,
		generators:  generators,
		technician:  technician,
		generator:   generator,
		office:      model.Principal{UserID: uuid.New(), Role: model.RoleOffice},
		techUser:    model.Principal{UserID: uuid.New(), Role: model.RoleTechnician, TechnicianID: &techID},
	}
}

func (f *assignmentFixture) createInput(date, start, end string) CreateAssignmentInput {
	return CreateAssignmentInput{
		TechnicianID: f.technician.ID.String(),
		GeneratorID:  f.generator.ID.String(),
		VisitDate:    date,
		StartTime:    start,
		EndTime:      end,
	}
}

func TestAssignmentService_Create(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:30"))

	require.NoError(t, err)
	assert.Equal(t, schedule.StatusScheduled, assignment.Status)
	assert.Equal(t, "09:00", assignment.StartTime.String())
	assert.Equal(t, "10:30", assignment.EndTime.String())
}

func TestAssignmentService_Create_PermissionDenied(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.svc.Create(context.Background(), f.techUser, f.createInput("2025-03-10", "09:00", "10:00"))

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAssignmentService_Create_StartNotBeforeEnd(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.svc.Create(context.Background(), f.office, f.createInput("2025-03-10", "10:00", "09:00"))

	var verr *schedule.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAssignmentService_Create_Overlap(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:30"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "10:00", "11:00"))

	var cerr *schedule.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, first.ID, cerr.ConflictingID)
}

func TestAssignmentService_Create_BackToBack(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:30"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "10:30", "11:00"))
	require.NoError(t, err)
}

func TestAssignmentService_Create_SlotTakenAtPersist(t *testing.T) {
	f := newAssignmentFixture(t)
	f.assignments.createErr = repository.ErrSlotTaken

	_, err := f.svc.Create(context.Background(), f.office, f.createInput("2025-03-10", "09:00", "10:00"))

	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignmentService_Create_InactiveTechnician(t *testing.T) {
	f := newAssignmentFixture(t)
	f.technician.IsActive = false
	require.NoError(t, f.technicians.Update(context.Background(), f.technician))

	_, err := f.svc.Create(context.Background(), f.office, f.createInput("2025-03-10", "09:00", "10:00"))

	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignmentService_Reschedule_ExcludesSelf(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	moved, err := f.svc.Reschedule(ctx, f.office, assignment.ID.String(), RescheduleAssignmentInput{
		VisitDate: "2025-03-10",
		StartTime: "09:30",
		EndTime:   "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "09:30", moved.StartTime.String())
}

func TestAssignmentService_Reschedule_IntoOtherVisit(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	blocker, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "13:00", "14:00"))
	require.NoError(t, err)
	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	_, err = f.svc.Reschedule(ctx, f.office, assignment.ID.String(), RescheduleAssignmentInput{
		VisitDate: "2025-03-10",
		StartTime: "13:30",
		EndTime:   "14:30",
	})

	var cerr *schedule.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, blocker.ID, cerr.ConflictingID)
}

func TestAssignmentService_StartCompleteFlow(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	started, err := f.svc.Start(ctx, f.techUser, assignment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusInProgress, started.Status)
	require.NotNil(t, started.StartedAt)

	// Starting flips the generator into maintenance.
	generator, err := f.generators.GetByID(ctx, f.generator.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.GeneratorStatusMaintenance, generator.Status)

	// Completing without a report is refused and the status stays.
	_, err = f.svc.Complete(ctx, f.techUser, assignment.ID.String())
	var perr *schedule.PreconditionError
	require.ErrorAs(t, err, &perr)

	current, err := f.assignments.GetByID(ctx, assignment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusInProgress, current.Status)

	// File the report, then complete.
	require.NoError(t, f.reports.Create(ctx, &model.MaintenanceReport{
		AssignmentID: assignment.ID,
		TechnicianID: f.technician.ID,
		Summary:      "oil change, filters replaced",
	}))

	completed, err := f.svc.Complete(ctx, f.techUser, assignment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusCompleted, completed.Status)
	require.NotNil(t, completed.FinishedAt)

	generator, err = f.generators.GetByID(ctx, f.generator.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.GeneratorStatusAvailable, generator.Status)
}

func TestAssignmentService_Start_WrongTechnician(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	otherID := uuid.New()
	other := model.Principal{UserID: uuid.New(), Role: model.RoleTechnician, TechnicianID: &otherID}

	_, err = f.svc.Start(ctx, other, assignment.ID.String())

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAssignmentService_Cancel(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, f.office, assignment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// A cancelled visit no longer blocks its old slot.
	_, err = f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)
}

func TestAssignmentService_Cancel_Terminal(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.office, assignment.ID.String())
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.office, assignment.ID.String())

	var terr *schedule.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, schedule.StatusCancelled, terr.From)
}

func TestAssignmentService_List_TechnicianScopedToOwn(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	other := &model.Technician{Name: "Ana", IsActive: true}
	require.NoError(t, f.technicians.Create(ctx, other))

	_, err := f.svc.Create(ctx, f.office, f.createInput("2025-03-10", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.office, CreateAssignmentInput{
		TechnicianID: other.ID.String(),
		GeneratorID:  f.generator.ID.String(),
		VisitDate:    "2025-03-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
	})
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, f.techUser, repository.AssignmentListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.technician.ID, mine[0].TechnicianID)
}
