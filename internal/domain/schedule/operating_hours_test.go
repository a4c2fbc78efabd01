package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

func TestWeekendCodeTranslation(t *testing.T) {
	code, ok := weekendCode(time.Saturday)
	require.True(t, ok)
	assert.Equal(t, 5, code)

	code, ok = weekendCode(time.Sunday)
	require.True(t, ok)
	assert.Equal(t, 6, code)

	_, ok = weekendCode(time.Wednesday)
	assert.False(t, ok)

	for _, d := range []time.Weekday{time.Saturday, time.Sunday} {
		code, _ := weekendCode(d)
		back, ok := weekdayFromWeekendCode(code)
		require.True(t, ok)
		assert.Equal(t, d, back)
	}

	_, ok = weekdayFromWeekendCode(0)
	assert.False(t, ok)
}

func TestResolveOperatingHours(t *testing.T) {
	plant := SomePlant(plantA)

	tests := []struct {
		name   string
		rows   []models.OperatingHours
		date   time.Time
		kind   WindowKind
		window string
	}{
		{
			name: "weekday without rows is unrestricted",
			date: monday,
			kind: Unrestricted,
		},
		{
			name:   "weekday with active row",
			rows:   []models.OperatingHours{weekdaysRow(uintPtr(plantA), "08:00", "17:00", true)},
			date:   monday,
			kind:   Open,
			window: "08:00-17:00",
		},
		{
			name: "weekday with inactive row is unrestricted",
			rows: []models.OperatingHours{weekdaysRow(uintPtr(plantA), "08:00", "17:00", false)},
			date: monday,
			kind: Unrestricted,
		},
		{
			name: "saturday without rows is closed",
			rows: []models.OperatingHours{weekdaysRow(uintPtr(plantA), "08:00", "17:00", true)},
			date: saturday,
			kind: Closed,
		},
		{
			name:   "saturday uses code 5",
			rows:   []models.OperatingHours{weekendRow(uintPtr(plantA), 5, "08:00", "12:00", true)},
			date:   saturday,
			kind:   Open,
			window: "08:00-12:00",
		},
		{
			name: "saturday row does not open sunday",
			rows: []models.OperatingHours{weekendRow(uintPtr(plantA), 5, "08:00", "12:00", true)},
			date: sunday,
			kind: Closed,
		},
		{
			name: "inactive sunday row stays closed",
			rows: []models.OperatingHours{weekendRow(uintPtr(plantA), 6, "08:00", "12:00", false)},
			date: sunday,
			kind: Closed,
		},
		{
			name:   "tenant-global row applies when plant has none",
			rows:   []models.OperatingHours{weekdaysRow(nil, "06:00", "22:00", true)},
			date:   tuesday,
			kind:   Open,
			window: "06:00-22:00",
		},
		{
			name: "plant row beats tenant-global row",
			rows: []models.OperatingHours{
				weekdaysRow(nil, "06:00", "22:00", true),
				weekdaysRow(uintPtr(plantA), "08:00", "17:00", true),
			},
			date:   tuesday,
			kind:   Open,
			window: "08:00-17:00",
		},
		{
			name: "other plant rows are ignored",
			rows: []models.OperatingHours{weekdaysRow(uintPtr(99), "08:00", "17:00", true)},
			date: tuesday,
			kind: Unrestricted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveOperatingHours(tt.rows, plant, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, w.Kind)
			if tt.window != "" {
				assert.Equal(t, tt.window, w.String())
			}
		})
	}
}

func TestResolveOperatingHours_ClosedReasons(t *testing.T) {
	w, err := ResolveOperatingHours(nil, SomePlant(plantA), saturday)
	require.NoError(t, err)
	assert.Equal(t, "weekend not configured", w.Reason)

	rows := []models.OperatingHours{weekendRow(uintPtr(plantA), 5, "08:00", "12:00", false)}
	w, err = ResolveOperatingHours(rows, SomePlant(plantA), saturday)
	require.NoError(t, err)
	assert.Equal(t, "weekend operation disabled", w.Reason)
}

func TestResolveOperatingHours_Legacy(t *testing.T) {
	w, err := ResolveOperatingHours(nil, LegacyPlant(), saturday)
	require.NoError(t, err)
	assert.Equal(t, Unrestricted, w.Kind)
}

func TestResolveOperatingHours_MalformedRow(t *testing.T) {
	rows := []models.OperatingHours{weekdaysRow(uintPtr(plantA), "8h", "17:00", true)}
	_, err := ResolveOperatingHours(rows, SomePlant(plantA), monday)
	assert.Error(t, err)
}

func TestResolveOperatingHoursAs_Holiday(t *testing.T) {
	holiday := models.OperatingHours{
		CompanyID:      1,
		PlantID:        uintPtr(plantA),
		ScheduleType:   ScheduleHoliday,
		OperatingStart: "09:00",
		OperatingEnd:   "13:00",
		IsActive:       true,
	}
	weekdays := weekdaysRow(uintPtr(plantA), "08:00", "17:00", true)

	t.Run("not triggered by date", func(t *testing.T) {
		w, err := ResolveOperatingHours([]models.OperatingHours{holiday, weekdays}, SomePlant(plantA), monday)
		require.NoError(t, err)
		assert.Equal(t, "08:00-17:00", w.String())
	})

	t.Run("explicit holiday uses holiday row", func(t *testing.T) {
		w, err := ResolveOperatingHoursAs([]models.OperatingHours{holiday, weekdays}, SomePlant(plantA), monday, ScheduleHoliday)
		require.NoError(t, err)
		assert.Equal(t, "09:00-13:00", w.String())
		assert.Equal(t, ScheduleHoliday, w.ScheduleType)
	})

	t.Run("inactive holiday falls back to the date rule", func(t *testing.T) {
		off := holiday
		off.IsActive = false
		w, err := ResolveOperatingHoursAs([]models.OperatingHours{off, weekdays}, SomePlant(plantA), monday, ScheduleHoliday)
		require.NoError(t, err)
		assert.Equal(t, "08:00-17:00", w.String())
	})
}

func TestWindow(t *testing.T) {
	w := Window{Kind: Open, Start: At(8, 0), End: At(17, 0)}

	assert.True(t, w.Contains(At(8, 0)))
	assert.True(t, w.Contains(At(16, 0)))
	assert.False(t, w.Contains(At(17, 0)))
	assert.False(t, w.Contains(At(7, 0)))

	assert.True(t, w.AllowsEnd(At(17, 0)))
	assert.False(t, w.AllowsEnd(At(18, 0)))

	assert.True(t, Window{Kind: Unrestricted}.Contains(At(3, 0)))
	assert.True(t, Window{Kind: Unrestricted}.AllowsEnd(EndOfDay))
	assert.False(t, Window{Kind: Closed}.Contains(At(9, 0)))
	assert.False(t, Window{Kind: Closed}.AllowsEnd(At(10, 0)))
}
