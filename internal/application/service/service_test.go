package service

import (
	"context"
	"testing"
	"time"

	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"
	"pillulu/internal/infrastructure/database/sqlite"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	tx            repository.Transactor
	users         repository.UserRepository
	meds          repository.MedicationRepository
	schedules     repository.ScheduleRepository
	notifications repository.NotificationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testEnv{
		db:            db,
		tx:            sqlite.NewTransactor(db),
		users:         sqlite.NewUserRepository(db),
		meds:          sqlite.NewMedicationRepository(db),
		schedules:     sqlite.NewScheduleRepository(db),
		notifications: sqlite.NewNotificationRepository(db),
	}
}

func (e *testEnv) user(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, PasswordHash: "x"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) med(t *testing.T, userID uint, name string, stock, threshold int) *entity.Medication {
	t.Helper()
	m := &entity.Medication{UserID: userID, Name: name, StockCount: stock, LowStockThreshold: threshold}
	require.NoError(t, e.meds.Create(context.Background(), m))
	return m
}

func (e *testEnv) schedule(t *testing.T, medID uint, hm, tz, days string) *entity.Schedule {
	t.Helper()
	s := &entity.Schedule{MedicationID: medID, TimeOfDay: hm, Timezone: tz, DaysOfWeek: days, Enabled: true}
	require.NoError(t, e.schedules.Create(context.Background(), s))
	return s
}

// mustLocalUTC returns the UTC instant of a wall-clock time in zone.
func mustLocalUTC(t *testing.T, zone string, year int, month time.Month, day, hour, min, sec int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)
	return time.Date(year, month, day, hour, min, sec, 0, loc).UTC()
}
