package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type env struct {
	db      *gorm.DB
	repo    *repository.ScheduleGormRepository
	company models.Company
	plant   models.Plant
	admin   auth.Principal
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e := &env{db: db, repo: repository.NewScheduleGormRepository(db)}

	e.company = models.Company{Name: "Atacado", IsActive: true}
	require.NoError(t, db.Create(&e.company).Error)
	e.plant = models.Plant{CompanyID: e.company.ID, Name: "CD Sul", IsActive: true, MaxCapacity: 1}
	require.NoError(t, db.Create(&e.plant).Error)

	e.admin = auth.Principal{UserID: 1, CompanyID: e.company.ID, Role: auth.RoleAdmin}
	return e
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	return be.Code
}

func intPtr(v int) *int { return &v }

func TestOperatingHours_SaveAndAvailability(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	hours := NewOperatingHours(e.repo, nil, zap.NewNop())
	avail := NewGetAvailability(e.repo, "America/Sao_Paulo")

	rows, err := hours.Save(ctx, e.admin, e.plant.ID, []OperatingHoursRow{
		{ScheduleType: domain.ScheduleWeekdays, OperatingStart: "08:00", OperatingEnd: "17:00", IsActive: true},
		{ScheduleType: domain.ScheduleWeekend, DayOfWeek: intPtr(5), OperatingStart: "8:00", OperatingEnd: "12:00", IsActive: true},
		{ScheduleType: domain.ScheduleWeekend, DayOfWeek: intPtr(6), IsActive: false},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	t.Run("saturday uses weekend code 5", func(t *testing.T) {
		got, err := avail.Execute(ctx, AvailabilityInput{Principal: e.admin, PlantID: e.plant.ID, Date: "2025-06-14"})
		require.NoError(t, err)
		assert.Equal(t, "08:00-12:00", got.Window)
		require.Len(t, got.Slots, 24)
		assert.True(t, got.Slots[8].IsAvailable)
		assert.False(t, got.Slots[12].IsAvailable)
	})

	t.Run("sunday disabled", func(t *testing.T) {
		got, err := avail.Execute(ctx, AvailabilityInput{Principal: e.admin, PlantID: e.plant.ID, Date: "2025-06-15"})
		require.NoError(t, err)
		assert.Equal(t, "closed", got.Window)
		for _, s := range got.Slots {
			assert.False(t, s.IsAvailable, s.Time)
		}
	})

	t.Run("holiday without row falls back to the date rule", func(t *testing.T) {
		got, err := avail.Execute(ctx, AvailabilityInput{Principal: e.admin, PlantID: e.plant.ID, Date: "2025-06-10", DayType: "holiday"})
		require.NoError(t, err)
		assert.Equal(t, "08:00-17:00", got.Window)
	})

	t.Run("unknown day type", func(t *testing.T) {
		_, err := avail.Execute(ctx, AvailabilityInput{Principal: e.admin, PlantID: e.plant.ID, Date: "2025-06-10", DayType: "carnival"})
		assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))
	})
}

func TestOperatingHours_RejectsInvalidRows(t *testing.T) {
	e := newEnv(t)
	hours := NewOperatingHours(e.repo, nil, zap.NewNop())

	cases := map[string]OperatingHoursRow{
		"unknown type":         {ScheduleType: "night", OperatingStart: "08:00", OperatingEnd: "17:00", IsActive: true},
		"weekend without day":  {ScheduleType: domain.ScheduleWeekend, OperatingStart: "08:00", OperatingEnd: "12:00", IsActive: true},
		"weekend day 0":        {ScheduleType: domain.ScheduleWeekend, DayOfWeek: intPtr(0), OperatingStart: "08:00", OperatingEnd: "12:00", IsActive: true},
		"weekday with day":     {ScheduleType: domain.ScheduleWeekdays, DayOfWeek: intPtr(1), OperatingStart: "08:00", OperatingEnd: "17:00", IsActive: true},
		"end before start":     {ScheduleType: domain.ScheduleWeekdays, OperatingStart: "17:00", OperatingEnd: "08:00", IsActive: true},
		"malformed clock":      {ScheduleType: domain.ScheduleHoliday, OperatingStart: "8h", OperatingEnd: "12:00", IsActive: true},
		"active without times": {ScheduleType: domain.ScheduleHoliday, IsActive: true},
	}

	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := hours.Save(context.Background(), e.admin, e.plant.ID, []OperatingHoursRow{row})
			assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))
		})
	}
}

func TestOverrides(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ov := NewOverrides(e.repo, nil)
	avail := NewGetAvailability(e.repo, "America/Sao_Paulo")

	sc, err := ov.UpsertScheduleConfig(ctx, e.admin, e.plant.ID, ScheduleConfigInput{
		Date: "2025-06-10", Time: "12:30", IsAvailable: false, Reason: "Inventário",
	})
	require.NoError(t, err)
	assert.Equal(t, "12:00", sc.Time)

	ds, err := ov.UpsertDefaultSchedule(ctx, e.admin, e.plant.ID, DefaultScheduleInput{
		DayOfWeek: intPtr(int(time.Tuesday)), Time: "15:00",
	})
	require.NoError(t, err)

	got, err := avail.Execute(ctx, AvailabilityInput{Principal: e.admin, PlantID: e.plant.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	assert.Equal(t, "24h", got.Window)
	require.NotNil(t, got.Slots[12].Reason)
	assert.Equal(t, "Inventário", *got.Slots[12].Reason)
	assert.Equal(t, domain.SourceSpecific, got.Slots[12].Source)
	assert.Equal(t, domain.SourceWeekly, got.Slots[15].Source)
	assert.True(t, got.Slots[3].IsAvailable)

	list, err := ov.ListScheduleConfigs(ctx, e.admin, e.plant.ID, "2025-06-09", 7)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, ov.DeleteScheduleConfig(ctx, e.admin, sc.ID))
	require.NoError(t, ov.DeleteDefaultSchedule(ctx, e.admin, ds.ID))

	err = ov.DeleteDefaultSchedule(ctx, e.admin, ds.ID)
	assert.Equal(t, httperr.CodeScheduleConfigNotFound, codeOf(t, err))

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := ov.UpsertDefaultSchedule(ctx, e.admin, e.plant.ID, DefaultScheduleInput{DayOfWeek: intPtr(7), Time: "10:00"})
		assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))

		_, err = ov.UpsertScheduleConfig(ctx, e.admin, e.plant.ID, ScheduleConfigInput{Date: "2025-06-10", Time: "24:00"})
		assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))
	})
}

func TestCapacity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewCapacity(e.repo, nil)

	require.NoError(t, uc.Set(ctx, e.admin, e.plant.ID, 3))
	got, err := uc.Get(ctx, e.admin, e.plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	err = uc.Set(ctx, e.admin, e.plant.ID, 0)
	assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))

	t.Run("plant user of another plant", func(t *testing.T) {
		other := e.plant.ID + 1
		p := auth.Principal{UserID: 5, CompanyID: e.company.ID, Role: auth.RolePlant, PlantID: &other}
		_, err := uc.Get(ctx, p, e.plant.ID)
		assert.Equal(t, httperr.CodePlantNotFound, codeOf(t, err))
	})

	t.Run("another company", func(t *testing.T) {
		p := auth.Principal{UserID: 6, CompanyID: e.company.ID + 1, Role: auth.RoleAdmin}
		_, err := uc.Get(ctx, p, e.plant.ID)
		assert.Equal(t, httperr.CodePlantNotFound, codeOf(t, err))
	})
}
