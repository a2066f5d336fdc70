package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
)

// ErrSlotTaken surfaces the exclusion constraint on active technician
// slots. It fires when two callers validated against stale snapshots and
// both tried to persist; the second write loses here.
var ErrSlotTaken = errors.New("technician slot already taken")

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const exclusionViolationCode = "23P01"

func translateSlotConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolationCode {
		return ErrSlotTaken
	}
	return err
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *model.MaintenanceAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return translateSlotConflict(err)
	}
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*model.MaintenanceAssignment, error) {
	var assignment model.MaintenanceAssignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *model.MaintenanceAssignment) error {
	if err := r.db.WithContext(ctx).Save(assignment).Error; err != nil {
		return translateSlotConflict(err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MaintenanceAssignment{}).Error
}

// SnapshotForTechnicianDay loads all visits for one technician on one
// calendar day, as input to the conflict check. Terminal visits are
// included; the validator skips them itself.
func (r *AssignmentRepository) SnapshotForTechnicianDay(ctx context.Context, technicianID uuid.UUID, date time.Time) ([]schedule.Slot, error) {
	var assignments []model.MaintenanceAssignment
	err := r.db.WithContext(ctx).
		Where("technician_id = ? AND visit_date = ?", technicianID, date.Format("2006-01-02")).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	slots := make([]schedule.Slot, 0, len(assignments))
	for i := range assignments {
		slots = append(slots, assignments[i].Slot())
	}
	return slots, nil
}

type AssignmentListFilter struct {
	TechnicianID *string
	GeneratorID  *string
	Status       *schedule.Status
	DateFrom     *string
	DateTo       *string
}

func (r *AssignmentRepository) List(ctx context.Context, filter AssignmentListFilter) ([]model.MaintenanceAssignment, error) {
	var assignments []model.MaintenanceAssignment
	query := r.db.WithContext(ctx).Model(&model.MaintenanceAssignment{})

	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.GeneratorID != nil {
		query = query.Where("generator_id = ?", *filter.GeneratorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("visit_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("visit_date <= ?", *filter.DateTo)
	}

	if err := query.Order("visit_date DESC, start_minute ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

// ListActiveBefore returns visits still in SCHEDULED status whose date is
// strictly before the given day. Used by the reminder sweep.
func (r *AssignmentRepository) ListActiveBefore(ctx context.Context, date time.Time) ([]model.MaintenanceAssignment, error) {
	var assignments []model.MaintenanceAssignment
	err := r.db.WithContext(ctx).
		Where("status = ? AND visit_date < ?", schedule.StatusScheduled, date.Format("2006-01-02")).
		Order("visit_date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListForDay returns all visits on the given day regardless of technician.
func (r *AssignmentRepository) ListForDay(ctx context.Context, date time.Time) ([]model.MaintenanceAssignment, error) {
	var assignments []model.MaintenanceAssignment
	err := r.db.WithContext(ctx).
		Where("visit_date = ?", date.Format("2006-01-02")).
		Order("start_minute ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
