package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReminderService is the daily sweep over the maintenance calendar. It
// only observes and logs; statuses are never changed from here.
type ReminderService struct {
	assignmentStore AssignmentStore
	log             zerolog.Logger
}

func NewReminderService(assignmentStore AssignmentStore, log zerolog.Logger) *ReminderService {
	return &ReminderService{
		assignmentStore: assignmentStore,
		log:             log,
	}
}

// Sweep logs today's scheduled visits and warns about visits whose date
// has passed while still scheduled.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) {
	today, err := s.assignmentStore.ListForDay(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder sweep: load today's visits")
		return
	}

	perTechnician := make(map[string]int)
	for i := range today {
		perTechnician[today[i].TechnicianID.String()]++
	}
	for technicianID, count := range perTechnician {
		s.log.Info().
			Str("technician_id", technicianID).
			Int("visits", count).
			Str("date", now.Format("2006-01-02")).
			Msg("maintenance visits today")
	}

	overdue, err := s.assignmentStore.ListActiveBefore(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder sweep: load overdue visits")
		return
	}
	for i := range overdue {
		s.log.Warn().
			Str("assignment_id", overdue[i].ID.String()).
			Str("technician_id", overdue[i].TechnicianID.String()).
			Str("visit_date", overdue[i].VisitDate.Format("2006-01-02")).
			Msg("scheduled visit is overdue")
	}
}
