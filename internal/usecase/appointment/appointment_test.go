package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/erp"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/dock-scheduler/internal/lock"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

const testTZ = "America/Sao_Paulo"

// Segunda-feira, 09/06/2025, 10:00 em São Paulo.
var fixedNow = time.Date(2025, 6, 9, 13, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu  sync.Mutex
	got []erp.Payload
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, _ uint, payload erp.Payload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, payload)
	return p.err
}

type env struct {
	db        *gorm.DB
	repo      *repository.AppointmentGormRepository
	company   models.Company
	plant     models.Plant
	supplier  models.Supplier
	other     models.Supplier
	publisher *recordingPublisher

	create   *CreateAppointment
	update   *UpdateAppointment
	remove   *DeleteAppointment
	checkIn  *CheckInAppointment
	checkOut *CheckOutAppointment
	list     *ListAppointments
}

func newEnv(t *testing.T, capacity int) *env {
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

	e := &env{db: db, publisher: &recordingPublisher{}}

	e.company = models.Company{Name: "Atacado", IsActive: true}
	require.NoError(t, db.Create(&e.company).Error)

	e.plant = models.Plant{CompanyID: e.company.ID, Name: "CD Norte", IsActive: true, MaxCapacity: capacity}
	require.NoError(t, db.Create(&e.plant).Error)

	e.supplier = models.Supplier{CompanyID: e.company.ID, CNPJ: "12.345.678/0001-90", Description: "ACME", IsActive: true}
	require.NoError(t, db.Create(&e.supplier).Error)

	e.other = models.Supplier{CompanyID: e.company.ID, CNPJ: "98.765.432/0001-10", Description: "Globex", IsActive: true}
	require.NoError(t, db.Create(&e.other).Error)

	plantID := e.plant.ID
	require.NoError(t, db.Create(&models.OperatingHours{
		CompanyID:      e.company.ID,
		PlantID:        &plantID,
		ScheduleType:   schedule.ScheduleWeekdays,
		OperatingStart: "08:00",
		OperatingEnd:   "17:00",
		IsActive:       true,
	}).Error)

	repo := repository.NewAppointmentGormRepository(db)
	e.repo = repo
	locker := lock.NewLocal()
	log := zap.NewNop()
	now := func() time.Time { return fixedNow }

	e.create = NewCreateAppointment(repo, locker, nil, testTZ, log)
	e.create.now = now
	e.update = NewUpdateAppointment(repo, locker, nil, testTZ, log)
	e.update.now = now
	e.remove = NewDeleteAppointment(repo, nil, testTZ)
	e.remove.now = now
	e.checkIn = NewCheckInAppointment(repo, e.publisher, nil, testTZ, log)
	e.checkIn.now = now
	e.checkOut = NewCheckOutAppointment(repo, nil, testTZ)
	e.checkOut.now = now
	e.list = NewListAppointments(repo, testTZ)
	e.list.now = now

	return e
}

func (e *env) admin() auth.Principal {
	return auth.Principal{UserID: 1, CompanyID: e.company.ID, Role: auth.RoleAdmin}
}

func (e *env) supplierUser(s models.Supplier) auth.Principal {
	id := s.ID
	return auth.Principal{UserID: 2, CompanyID: e.company.ID, Role: auth.RoleSupplier, SupplierID: &id}
}

func (e *env) input(date, start, end string) CreateAppointmentInput {
	return CreateAppointmentInput{
		Principal:     e.admin(),
		PlantID:       e.plant.ID,
		SupplierID:    e.supplier.ID,
		Date:          date,
		Time:          start,
		TimeEnd:       end,
		PurchaseOrder: "PO-778",
		TruckPlate:    " abc1d23 ",
		DriverName:    "João",
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	return be.Code
}

func strPtr(v string) *string { return &v }

// interleavingRepo roda before uma única vez antes da primeira escrita,
// simulando outra requisição entre a leitura e a gravação.
type interleavingRepo struct {
	domain.Repository
	before func()
}

func (r *interleavingRepo) interleave() {
	if f := r.before; f != nil {
		r.before = nil
		f()
	}
}

func (r *interleavingRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment, fromStatus string) error {
	r.interleave()
	return r.Repository.UpdateAppointment(ctx, ap, fromStatus)
}

func (r *interleavingRepo) DeleteAppointment(ctx context.Context, companyID, id uint, fromStatus string) error {
	r.interleave()
	return r.Repository.DeleteAppointment(ctx, companyID, id, fromStatus)
}

// insertRaw grava um agendamento direto no banco (legado ou data passada).
func (e *env) insertRaw(t *testing.T, date time.Time, start string, end *string) *models.Appointment {
	t.Helper()
	plantID := e.plant.ID
	ap := &models.Appointment{
		CompanyID:     e.company.ID,
		PlantID:       &plantID,
		SupplierID:    e.supplier.ID,
		Date:          date,
		Time:          start,
		TimeEnd:       end,
		PurchaseOrder: "PO-1",
		TruckPlate:    "ABC1D23",
		DriverName:    "João",
		Status:        string(domain.StatusScheduled),
	}
	require.NoError(t, e.db.Create(ap).Error)
	return ap
}

// ==================================================
// Create
// ==================================================

func TestCreateAppointment(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-10", "08:00", "10:00"))
	require.NoError(t, err)

	require.NotNil(t, ap.AppointmentNumber)
	assert.Equal(t, "AG-20250610-0001", *ap.AppointmentNumber)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "ABC1D23", ap.TruckPlate)
	require.NotNil(t, ap.TimeEnd)
	assert.Equal(t, "10:00", *ap.TimeEnd)

	t.Run("overlap at capacity", func(t *testing.T) {
		_, err := e.create.Execute(ctx, e.input("2025-06-10", "09:00", "11:00"))
		assert.Equal(t, httperr.CodeCapacityExceeded, codeOf(t, err))

		be, _ := httperr.AsBusiness(err)
		assert.Equal(t, "09:00", be.Slot)
	})

	t.Run("adjacent interval fits", func(t *testing.T) {
		ap, err := e.create.Execute(ctx, e.input("2025-06-10", "10:00", "11:00"))
		require.NoError(t, err)
		assert.Equal(t, "AG-20250610-0002", *ap.AppointmentNumber)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := e.create.Execute(ctx, e.input("2025-06-08", "08:00", "09:00"))
		assert.Equal(t, httperr.CodePastDate, codeOf(t, err))
	})

	t.Run("bad interval wins over missing fields", func(t *testing.T) {
		in := e.input("2025-06-10", "10:00", "09:00")
		in.DriverName = ""
		_, err := e.create.Execute(ctx, in)
		assert.Equal(t, httperr.CodeBadInterval, codeOf(t, err))
	})

	t.Run("invalid date format", func(t *testing.T) {
		_, err := e.create.Execute(ctx, e.input("10/06/2025", "08:00", "09:00"))
		assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))
	})

	t.Run("outside operating hours", func(t *testing.T) {
		_, err := e.create.Execute(ctx, e.input("2025-06-10", "16:00", "18:00"))
		assert.Equal(t, httperr.CodeOutsideOperatingHours, codeOf(t, err))
	})

	t.Run("weekend closed by default", func(t *testing.T) {
		_, err := e.create.Execute(ctx, e.input("2025-06-14", "09:00", "10:00"))
		assert.Equal(t, httperr.CodeOutsideOperatingHours, codeOf(t, err))
	})

	t.Run("plant of another company", func(t *testing.T) {
		in := e.input("2025-06-10", "12:00", "13:00")
		in.Principal.CompanyID = e.company.ID + 1
		_, err := e.create.Execute(ctx, in)
		assert.Equal(t, httperr.CodePlantNotFound, codeOf(t, err))
	})
}

func TestCreateAppointment_BlockedSlot(t *testing.T) {
	e := newEnv(t, 2)
	require.NoError(t, e.db.Create(&models.ScheduleConfig{
		CompanyID: e.company.ID,
		PlantID:   e.plant.ID,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:      "12:00",
		Reason:    "Manutenção",
	}).Error)

	_, err := e.create.Execute(context.Background(), e.input("2025-06-10", "11:00", "13:00"))
	assert.Equal(t, httperr.CodeBlockedSlot, codeOf(t, err))

	be, _ := httperr.AsBusiness(err)
	assert.Equal(t, "12:00", be.Slot)
	assert.Equal(t, "Manutenção", be.Details["reason"])
}

func TestCreateAppointment_SupplierBinding(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()

	in := e.input("2025-06-10", "08:00", "09:00")
	in.Principal = e.supplierUser(e.other)
	in.SupplierID = 0

	ap, err := e.create.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, e.other.ID, ap.SupplierID)

	in.SupplierID = e.supplier.ID
	_, err = e.create.Execute(ctx, in)
	assert.Equal(t, httperr.CodeForbidden, codeOf(t, err))
}

func TestCreateAppointment_ConcurrentSubmissionsRespectCapacity(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected []error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.create.Execute(ctx, e.input("2025-06-10", "09:00", "10:00"))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
				return
			}
			rejected = append(rejected, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, accepted)
	require.Len(t, rejected, workers-2)
	for _, err := range rejected {
		assert.True(t, httperr.IsBusiness(err, httperr.CodeCapacityExceeded), "unexpected error: %v", err)
	}

	var numbers []string
	require.NoError(t, e.db.Model(&models.Appointment{}).Order("appointment_number").Pluck("appointment_number", &numbers).Error)
	assert.Equal(t, []string{"AG-20250610-0001", "AG-20250610-0002"}, numbers)
}

// ==================================================
// Update
// ==================================================

func TestUpdateAppointment(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-10", "08:00", "09:00"))
	require.NoError(t, err)

	t.Run("non-schedule fields need no reason", func(t *testing.T) {
		got, err := e.update.Execute(ctx, UpdateAppointmentInput{
			Principal:  e.admin(),
			ID:         ap.ID,
			DriverName: strPtr("Maria"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Maria", got.DriverName)
		assert.Equal(t, string(domain.StatusScheduled), got.Status)
		assert.Equal(t, ap.AppointmentNumber, got.AppointmentNumber)
	})

	t.Run("reschedule requires reason", func(t *testing.T) {
		_, err := e.update.Execute(ctx, UpdateAppointmentInput{
			Principal: e.admin(),
			ID:        ap.ID,
			Time:      strPtr("10:00"),
			TimeEnd:   strPtr("11:00"),
		})
		assert.Equal(t, httperr.CodeRescheduleReasonRequired, codeOf(t, err))
	})

	t.Run("reschedule excludes own occupancy", func(t *testing.T) {
		got, err := e.update.Execute(ctx, UpdateAppointmentInput{
			Principal: e.admin(),
			ID:        ap.ID,
			Time:      strPtr("08:00"),
			TimeEnd:   strPtr("10:00"),
			Reason:    "Atraso na rota",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusRescheduled), got.Status)
		assert.Equal(t, "Atraso na rota", got.RescheduleReason)
		assert.Equal(t, "10:00", *got.TimeEnd)
	})

	t.Run("reschedule into a full slot", func(t *testing.T) {
		other, err := e.create.Execute(ctx, e.input("2025-06-10", "13:00", "14:00"))
		require.NoError(t, err)

		_, err = e.update.Execute(ctx, UpdateAppointmentInput{
			Principal: e.admin(),
			ID:        other.ID,
			Time:      strPtr("09:00"),
			TimeEnd:   strPtr("10:00"),
			Reason:    "Cliente pediu",
		})
		assert.Equal(t, httperr.CodeCapacityExceeded, codeOf(t, err))
	})

	t.Run("supplier cannot move to another supplier", func(t *testing.T) {
		other := e.other.ID
		_, err := e.update.Execute(ctx, UpdateAppointmentInput{
			Principal:  e.supplierUser(e.supplier),
			ID:         ap.ID,
			SupplierID: &other,
		})
		assert.Equal(t, httperr.CodeForbidden, codeOf(t, err))
	})

	t.Run("foreign supplier sees not found", func(t *testing.T) {
		_, err := e.update.Execute(ctx, UpdateAppointmentInput{
			Principal:  e.supplierUser(e.other),
			ID:         ap.ID,
			DriverName: strPtr("Pedro"),
		})
		assert.Equal(t, httperr.CodeAppointmentNotFound, codeOf(t, err))
	})
}

func TestUpdateAppointment_PastDay(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	ap := e.insertRaw(t, friday, "08:00", strPtr("09:00"))

	got, err := e.update.Execute(ctx, UpdateAppointmentInput{
		Principal:  e.admin(),
		ID:         ap.ID,
		DriverName: strPtr("Maria"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.DriverName)
	assert.Equal(t, string(domain.StatusScheduled), got.Status)

	_, err = e.update.Execute(ctx, UpdateAppointmentInput{
		Principal: e.admin(),
		ID:        ap.ID,
		Time:      strPtr("10:00"),
		TimeEnd:   strPtr("11:00"),
		Reason:    "Atraso",
	})
	assert.Equal(t, httperr.CodePastDate, codeOf(t, err))
}

func TestUpdateAppointment_LegacyKeepsOpenEnd(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap := e.insertRaw(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", nil)

	_, err := e.update.Execute(ctx, UpdateAppointmentInput{
		Principal:  e.admin(),
		ID:         ap.ID,
		DriverName: strPtr("Maria"),
	})
	require.NoError(t, err)

	var stored models.Appointment
	require.NoError(t, e.db.First(&stored, ap.ID).Error)
	assert.Nil(t, stored.TimeEnd)
	assert.Equal(t, "09:00", stored.Time)
	assert.Equal(t, "Maria", stored.DriverName)
}

func TestUpdateAppointment_AuditAction(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	dispatcher := audit.NewDispatcher(audit.New(e.db), 10, zap.NewNop())
	uc := NewUpdateAppointment(e.repo, lock.NewLocal(), dispatcher, testTZ, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }

	ap, err := e.create.Execute(ctx, e.input("2025-06-10", "08:00", "09:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, UpdateAppointmentInput{
		Principal: e.admin(),
		ID:        ap.ID,
		Time:      strPtr("10:00"),
		TimeEnd:   strPtr("11:00"),
		Reason:    "Atraso",
	})
	require.NoError(t, err)

	// mesmo motivo reenviado numa edição sem mudança de horário
	_, err = uc.Execute(ctx, UpdateAppointmentInput{
		Principal:  e.admin(),
		ID:         ap.ID,
		DriverName: strPtr("Maria"),
		Reason:     "Atraso",
	})
	require.NoError(t, err)

	dispatcher.Close()

	var actions []string
	require.NoError(t, e.db.Model(&models.AuditLog{}).
		Where("entity_id = ?", ap.ID).
		Order("id ASC").
		Pluck("action", &actions).Error)
	assert.Equal(t, []string{"appointment_rescheduled", "appointment_updated"}, actions)
}

// ==================================================
// Lifecycle
// ==================================================

func TestLifecycle(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-10", "08:00", "09:00"))
	require.NoError(t, err)

	t.Run("supplier check-in outside the day", func(t *testing.T) {
		_, err := e.checkIn.Execute(ctx, e.supplierUser(e.supplier), ap.ID)
		assert.Equal(t, httperr.CodeNotToday, codeOf(t, err))
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		_, err := e.checkOut.Execute(ctx, e.admin(), ap.ID)
		assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))
	})

	res, err := e.checkIn.Execute(ctx, e.admin(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), res.Appointment.Status)
	require.NotNil(t, res.Appointment.CheckInTime)
	assert.Equal(t, "12.345.678/0001-90", res.ERPPayload.SupplierCNPJ)
	assert.Equal(t, "AG-20250610-0001", res.ERPPayload.AppointmentNumber)
	require.Len(t, e.publisher.got, 1)

	t.Run("checked-in cannot be edited or deleted", func(t *testing.T) {
		_, err := e.update.Execute(ctx, UpdateAppointmentInput{
			Principal:  e.admin(),
			ID:         ap.ID,
			DriverName: strPtr("Outro"),
		})
		assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))

		err = e.remove.Execute(ctx, e.admin(), ap.ID)
		assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))
	})

	out, err := e.checkOut.Execute(ctx, e.admin(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedOut), out.Status)
	require.NotNil(t, out.CheckOutTime)

	_, err = e.checkIn.Execute(ctx, e.admin(), ap.ID)
	assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))
}

func TestCheckIn_PublishFailureDoesNotUndo(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()
	e.publisher.err = errors.New("bucket unavailable")

	ap, err := e.create.Execute(ctx, e.input("2025-06-09", "14:00", "15:00"))
	require.NoError(t, err)

	res, err := e.checkIn.Execute(ctx, e.supplierUser(e.supplier), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), res.Appointment.Status)
}

func TestDeleteAppointment_LosesToConcurrentCheckIn(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-09", "14:00", "15:00"))
	require.NoError(t, err)

	remove := NewDeleteAppointment(&interleavingRepo{
		Repository: e.repo,
		before: func() {
			_, err := e.checkIn.Execute(ctx, e.admin(), ap.ID)
			require.NoError(t, err)
		},
	}, nil, testTZ)
	remove.now = func() time.Time { return fixedNow }

	err = remove.Execute(ctx, e.admin(), ap.ID)
	assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))

	var stored models.Appointment
	require.NoError(t, e.db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusCheckedIn), stored.Status)
}

func TestCheckIn_ConcurrentCheckInPublishesOnce(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-09", "14:00", "15:00"))
	require.NoError(t, err)

	checkIn := NewCheckInAppointment(&interleavingRepo{
		Repository: e.repo,
		before: func() {
			_, err := e.checkIn.Execute(ctx, e.admin(), ap.ID)
			require.NoError(t, err)
		},
	}, e.publisher, nil, testTZ, zap.NewNop())
	checkIn.now = func() time.Time { return fixedNow }

	_, err = checkIn.Execute(ctx, e.admin(), ap.ID)
	assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))
	assert.Len(t, e.publisher.got, 1)
}

func TestCheckOut_LosesToConcurrentCheckOut(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-09", "14:00", "15:00"))
	require.NoError(t, err)
	_, err = e.checkIn.Execute(ctx, e.admin(), ap.ID)
	require.NoError(t, err)

	checkOut := NewCheckOutAppointment(&interleavingRepo{
		Repository: e.repo,
		before: func() {
			_, err := e.checkOut.Execute(ctx, e.admin(), ap.ID)
			require.NoError(t, err)
		},
	}, nil, testTZ)
	checkOut.now = func() time.Time { return fixedNow }

	_, err = checkOut.Execute(ctx, e.admin(), ap.ID)
	assert.Equal(t, httperr.CodeIllegalTransition, codeOf(t, err))
}

func TestDeleteAppointment(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.input("2025-06-10", "08:00", "09:00"))
	require.NoError(t, err)

	err = e.remove.Execute(ctx, e.supplierUser(e.other), ap.ID)
	assert.Equal(t, httperr.CodeAppointmentNotFound, codeOf(t, err))

	require.NoError(t, e.remove.Execute(ctx, e.supplierUser(e.supplier), ap.ID))

	err = e.remove.Execute(ctx, e.admin(), ap.ID)
	assert.Equal(t, httperr.CodeAppointmentNotFound, codeOf(t, err))

	_, err = e.create.Execute(ctx, e.input("2025-06-10", "08:00", "09:00"))
	assert.NoError(t, err, "slot freed by delete")
}

// ==================================================
// List
// ==================================================

func TestListAppointments(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()

	_, err := e.create.Execute(ctx, e.input("2025-06-10", "08:00", "09:00"))
	require.NoError(t, err)
	_, err = e.create.Execute(ctx, e.input("2025-06-12", "08:00", "09:00"))
	require.NoError(t, err)
	mine := e.input("2025-06-10", "10:00", "11:00")
	mine.SupplierID = e.other.ID
	_, err = e.create.Execute(ctx, mine)
	require.NoError(t, err)

	t.Run("by date", func(t *testing.T) {
		got, err := e.list.Execute(ctx, ListAppointmentsInput{Principal: e.admin(), Date: "2025-06-10"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "08:00", got[0].Time)
		assert.Equal(t, "CD Norte", got[0].PlantName)
	})

	t.Run("by week", func(t *testing.T) {
		got, err := e.list.Execute(ctx, ListAppointmentsInput{Principal: e.admin(), Week: "2025-06-12"})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("supplier sees only own", func(t *testing.T) {
		got, err := e.list.Execute(ctx, ListAppointmentsInput{Principal: e.supplierUser(e.other), Week: "2025-06-09"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Globex", got[0].SupplierName)
	})

	t.Run("today by default", func(t *testing.T) {
		got, err := e.list.Execute(ctx, ListAppointmentsInput{Principal: e.admin()})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("date and week together", func(t *testing.T) {
		_, err := e.list.Execute(ctx, ListAppointmentsInput{Principal: e.admin(), Date: "2025-06-10", Week: "2025-06-10"})
		assert.Equal(t, httperr.CodeInvalidInput, codeOf(t, err))
	})
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, monday, WeekStart(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, monday, WeekStart(time.Date(2025, 6, 12, 18, 0, 0, 0, time.UTC)))
}
