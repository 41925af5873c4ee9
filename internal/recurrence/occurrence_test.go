package recurrence

import (
	"testing"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func dates(occ []models.Occurrence) []string {
	out := make([]string, 0, len(occ))
	for _, o := range occ {
		out = append(out, o.Date.Format(dateLayout))
	}
	return out
}

func TestGenerate_MonthlyClampsToMonthEnd(t *testing.T) {
	s := models.RecurringSchedule{ID: 1, Type: models.FlowExpense, Amount: 50, Frequency: models.FrequencyMonthly,
		StartDate: day(2025, 1, 31), Indefinite: true}

	occ := Generate(s, nil, Window{Start: day(2025, 1, 1), End: day(2025, 4, 30)})
	assert.Equal(t, []string{"2025-01-31", "2025-02-28", "2025-03-31", "2025-04-30"}, dates(occ))

	s.StartDate = day(2024, 1, 31)
	leap := Generate(s, nil, Window{Start: day(2024, 1, 1), End: day(2024, 4, 30)})
	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}, dates(leap))

	for _, o := range occ {
		assert.Equal(t, 50.0, o.Amount)
		assert.Equal(t, models.FlowExpense, o.Type)
	}
}

func TestGenerate_WeeklyKeepsWeekday(t *testing.T) {
	monday := day(2025, 3, 3)
	require.Equal(t, time.Monday, monday.Weekday())
	s := models.RecurringSchedule{ID: 2, Type: models.FlowIncome, Amount: 10, Frequency: models.FrequencyWeekly,
		StartDate: monday, Indefinite: true}

	windows := []Window{
		{Start: day(2025, 3, 1), End: day(2025, 3, 31)},
		{Start: day(2025, 4, 2), End: day(2025, 6, 19)},
		{Start: day(2025, 12, 25), End: day(2026, 1, 14)},
	}
	for _, w := range windows {
		occ := Generate(s, nil, w)
		require.NotEmpty(t, occ)
		for _, o := range occ {
			assert.Equal(t, time.Monday, o.Date.Weekday(), o.Date)
			assert.False(t, o.Date.Before(w.Start))
			assert.False(t, o.Date.After(w.End))
		}
	}
}

func TestGenerate_Daily(t *testing.T) {
	s := models.RecurringSchedule{ID: 3, Type: models.FlowExpense, Amount: 5, Frequency: models.FrequencyDaily,
		StartDate: day(2025, 5, 10), EndDate: ptr(day(2025, 5, 12))}

	occ := Generate(s, nil, Window{Start: day(2025, 5, 1), End: day(2025, 5, 31)})
	assert.Equal(t, []string{"2025-05-10", "2025-05-11", "2025-05-12"}, dates(occ))
}

func TestGenerate_EmptyWhenScheduleEndedBeforeWindow(t *testing.T) {
	s := models.RecurringSchedule{ID: 4, Frequency: models.FrequencyDaily,
		StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 1, 10))}

	assert.Empty(t, Generate(s, nil, Window{Start: day(2025, 2, 1), End: day(2025, 2, 28)}))
}

func TestGenerate_IndefiniteIgnoresEndDate(t *testing.T) {
	s := models.RecurringSchedule{ID: 5, Frequency: models.FrequencyDaily,
		StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 1, 2)), Indefinite: true}

	occ := Generate(s, nil, Window{Start: day(2025, 1, 1), End: day(2025, 1, 5)})
	assert.Len(t, occ, 5)
}

func TestGenerate_SkipRemovesExactlyOne(t *testing.T) {
	s := models.RecurringSchedule{ID: 6, Frequency: models.FrequencyWeekly, StartDate: day(2025, 3, 3), Indefinite: true}
	w := Window{Start: day(2025, 3, 1), End: day(2025, 3, 31)}
	exceptions := []models.ScheduleException{{ScheduleID: 6, OriginalDate: day(2025, 3, 17), Action: models.ExceptionSkip}}

	assert.Equal(t, []string{"2025-03-03", "2025-03-10", "2025-03-24", "2025-03-31"}, dates(Generate(s, exceptions, w)))
}

func TestGenerate_PostponeSuppressesOriginal(t *testing.T) {
	s := models.RecurringSchedule{ID: 7, Frequency: models.FrequencyMonthly, StartDate: day(2025, 1, 15), Indefinite: true}
	w := Window{Start: day(2025, 1, 1), End: day(2025, 3, 31)}
	exceptions := []models.ScheduleException{{ScheduleID: 7, OriginalDate: day(2025, 2, 15), Action: models.ExceptionPostpone}}

	assert.Equal(t, []string{"2025-01-15", "2025-03-15"}, dates(Generate(s, exceptions, w)))
}

func TestGenerate_MoveInsideAndOutsideWindow(t *testing.T) {
	s := models.RecurringSchedule{ID: 8, Amount: 20, Type: models.FlowExpense, Frequency: models.FrequencyMonthly,
		StartDate: day(2025, 1, 10), Indefinite: true}
	w := Window{Start: day(2025, 1, 1), End: day(2025, 3, 31)}

	inside := []models.ScheduleException{{ScheduleID: 8, OriginalDate: day(2025, 2, 10), NewDate: ptr(day(2025, 2, 20)), Action: models.ExceptionMove}}
	occ := Generate(s, inside, w)
	assert.Equal(t, []string{"2025-01-10", "2025-02-20", "2025-03-10"}, dates(occ))
	assert.Equal(t, 20.0, occ[1].Amount)
	assert.Equal(t, models.FlowExpense, occ[1].Type)

	outside := []models.ScheduleException{{ScheduleID: 8, OriginalDate: day(2025, 2, 10), NewDate: ptr(day(2025, 5, 1)), Action: models.ExceptionMove}}
	assert.Equal(t, []string{"2025-01-10", "2025-03-10"}, dates(Generate(s, outside, w)))
}

func TestGenerate_IgnoresOtherSchedulesExceptions(t *testing.T) {
	s := models.RecurringSchedule{ID: 9, Frequency: models.FrequencyDaily, StartDate: day(2025, 1, 1), Indefinite: true}
	exceptions := []models.ScheduleException{{ScheduleID: 99, OriginalDate: day(2025, 1, 2), Action: models.ExceptionSkip}}

	assert.Len(t, Generate(s, exceptions, Window{Start: day(2025, 1, 1), End: day(2025, 1, 3)}), 3)
}

func TestGenerate_ClampedDateDoesNotMatchException(t *testing.T) {
	s := models.RecurringSchedule{ID: 10, Frequency: models.FrequencyMonthly, StartDate: day(2025, 1, 31), Indefinite: true}
	w := Window{Start: day(2025, 2, 1), End: day(2025, 2, 28)}
	exceptions := []models.ScheduleException{{ScheduleID: 10, OriginalDate: day(2025, 2, 28), Action: models.ExceptionSkip}}

	// the match key for February is the un-clamped 2025-02-31
	assert.Equal(t, []string{"2025-02-28"}, dates(Generate(s, exceptions, w)))
}

func TestGenerate_Restartable(t *testing.T) {
	s := models.RecurringSchedule{ID: 11, Frequency: models.FrequencyWeekly, StartDate: day(2025, 1, 6), Indefinite: true}
	w := Window{Start: day(2025, 1, 1), End: day(2025, 2, 28)}

	assert.Equal(t, Generate(s, nil, w), Generate(s, nil, w))
}

func TestGenerateAll_MergesSorted(t *testing.T) {
	schedules := []models.RecurringSchedule{
		{ID: 1, Frequency: models.FrequencyMonthly, StartDate: day(2025, 1, 20), Indefinite: true},
		{ID: 2, Frequency: models.FrequencyMonthly, StartDate: day(2025, 1, 5), Indefinite: true},
	}
	occ := GenerateAll(schedules, nil, Window{Start: day(2025, 1, 1), End: day(2025, 2, 28)})
	assert.Equal(t, []string{"2025-01-05", "2025-01-20", "2025-02-05", "2025-02-20"}, dates(occ))
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(time.Date(2024, 2, 10, 15, 4, 0, 0, time.UTC))
	assert.Equal(t, day(2024, 2, 1), w.Start)
	assert.Equal(t, day(2024, 2, 29), w.End)
	assert.Equal(t, 30, DaysIn(2025, time.April))
}
