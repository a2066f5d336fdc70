package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, raw string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(raw)
	require.NoError(t, err)
	return tod
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return parsed
}

func TestValidate_RejectsInvertedRange(t *testing.T) {
	tech := uuid.New()
	candidate := Slot{
		TechnicianID: tech,
		Date:         day(t, "2025-03-10"),
		Start:        mustTime(t, "11:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}

	err := Validate(candidate, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidate_RejectsZeroLengthRange(t *testing.T) {
	candidate := Slot{
		TechnicianID: uuid.New(),
		Date:         day(t, "2025-03-10"),
		Start:        mustTime(t, "10:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}

	var verr *ValidationError
	require.ErrorAs(t, Validate(candidate, nil), &verr)
}

func TestValidate_OverlapMatrix(t *testing.T) {
	tech := uuid.New()
	date := day(t, "2025-03-10")

	existing := Slot{
		ID:           uuid.New(),
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:30"),
		Status:       StatusScheduled,
	}

	tests := []struct {
		name     string
		start    string
		end      string
		conflict bool
	}{
		{"partial overlap from the right", "10:00", "11:00", true},
		{"starts exactly at existing end", "10:30", "11:00", false},
		{"ends exactly at existing start", "08:00", "09:00", false},
		{"identical range", "09:00", "10:30", true},
		{"fully inside", "09:30", "10:00", true},
		{"fully covering", "08:00", "12:00", true},
		{"well before", "06:00", "07:00", false},
		{"well after", "11:00", "12:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidate := Slot{
				TechnicianID: tech,
				Date:         date,
				Start:        mustTime(t, tc.start),
				End:          mustTime(t, tc.end),
				Status:       StatusScheduled,
			}

			err := Validate(candidate, []Slot{existing})

			if tc.conflict {
				var cerr *ConflictError
				require.ErrorAs(t, err, &cerr)
				assert.Equal(t, existing.ID, cerr.ConflictingID)
				assert.Equal(t, existing.Start, cerr.Start)
				assert.Equal(t, existing.End, cerr.End)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidate_DifferentTechnicianNeverConflicts(t *testing.T) {
	date := day(t, "2025-03-10")
	existing := Slot{
		ID:           uuid.New(),
		TechnicianID: uuid.New(),
		Date:         date,
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}
	candidate := Slot{
		TechnicianID: uuid.New(),
		Date:         date,
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}

	require.NoError(t, Validate(candidate, []Slot{existing}))
}

func TestValidate_DifferentDateNeverConflicts(t *testing.T) {
	tech := uuid.New()
	existing := Slot{
		ID:           uuid.New(),
		TechnicianID: tech,
		Date:         day(t, "2025-03-10"),
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}
	candidate := Slot{
		TechnicianID: tech,
		Date:         day(t, "2025-03-11"),
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}

	require.NoError(t, Validate(candidate, []Slot{existing}))
}

func TestValidate_TerminalStatusesNeverBlock(t *testing.T) {
	tech := uuid.New()
	date := day(t, "2025-03-10")

	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		existing := Slot{
			ID:           uuid.New(),
			TechnicianID: tech,
			Date:         date,
			Start:        mustTime(t, "09:00"),
			End:          mustTime(t, "10:00"),
			Status:       status,
		}
		candidate := Slot{
			TechnicianID: tech,
			Date:         date,
			Start:        mustTime(t, "09:00"),
			End:          mustTime(t, "10:00"),
			Status:       StatusScheduled,
		}

		require.NoError(t, Validate(candidate, []Slot{existing}), "status %s should not block", status)
	}
}

func TestValidate_EditDoesNotConflictWithItself(t *testing.T) {
	tech := uuid.New()
	date := day(t, "2025-03-10")
	id := uuid.New()

	existing := Slot{
		ID:           id,
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}
	candidate := Slot{
		ID:           id,
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "09:30"),
		End:          mustTime(t, "10:30"),
		Status:       StatusScheduled,
	}

	require.NoError(t, Validate(candidate, []Slot{existing}))
}

func TestValidate_ReportsFirstConflictOnly(t *testing.T) {
	tech := uuid.New()
	date := day(t, "2025-03-10")

	first := Slot{
		ID:           uuid.New(),
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:00"),
		Status:       StatusScheduled,
	}
	second := Slot{
		ID:           uuid.New(),
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "10:00"),
		End:          mustTime(t, "11:00"),
		Status:       StatusInProgress,
	}
	candidate := Slot{
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "09:30"),
		End:          mustTime(t, "10:30"),
		Status:       StatusScheduled,
	}

	err := Validate(candidate, []Slot{first, second})

	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, first.ID, cerr.ConflictingID)
}

func TestValidate_SnapshotNotMutated(t *testing.T) {
	tech := uuid.New()
	date := day(t, "2025-03-10")

	existing := []Slot{{
		ID:           uuid.New(),
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "09:00"),
		End:          mustTime(t, "10:30"),
		Status:       StatusScheduled,
	}}
	snapshot := make([]Slot, len(existing))
	copy(snapshot, existing)

	candidate := Slot{
		TechnicianID: tech,
		Date:         date,
		Start:        mustTime(t, "10:00"),
		End:          mustTime(t, "11:00"),
		Status:       StatusScheduled,
	}
	_ = Validate(candidate, existing)

	assert.Equal(t, snapshot, existing)
}
