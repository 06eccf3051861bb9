package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedMedication(t *testing.T, db *gorm.DB, userID uint, name string, stock, threshold int) *entity.Medication {
	t.Helper()
	m := &entity.Medication{UserID: userID, Name: name, StockCount: stock, LowStockThreshold: threshold}
	require.NoError(t, NewMedicationRepository(db).Create(context.Background(), m))
	return m
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	versions, err := AppliedMigrations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"001_create_users",
		"002_create_pillbox",
		"003_create_notifications",
		"004_add_user_line_link",
	}, versions)
}

func TestMedicationRepository_OwnershipAndCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	meds := NewMedicationRepository(db)
	schedules := NewScheduleRepository(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	med := seedMedication(t, db, alice.ID, "Aspirin", 10, 5)
	require.NoError(t, schedules.Create(ctx, &entity.Schedule{
		MedicationID: med.ID, TimeOfDay: "08:30", Timezone: "America/New_York", DaysOfWeek: "daily", Enabled: true,
	}))

	got, err := meds.FindByIDForUser(ctx, med.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, got.Schedules, 1)
	assert.Equal(t, "08:30", got.Schedules[0].TimeOfDay)

	_, err = meds.FindByIDForUser(ctx, med.ID, bob.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, meds.Delete(ctx, med.ID))
	left, err := schedules.FindByMedicationID(ctx, med.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestScheduleRepository_FindEnabledPreloadsMedication(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewScheduleRepository(db)

	u := seedUser(t, db, "carol@example.com")
	med := seedMedication(t, db, u.ID, "Metformin", 30, 5)
	on := &entity.Schedule{MedicationID: med.ID, TimeOfDay: "09:00", Timezone: "UTC", DaysOfWeek: "daily", Enabled: true}
	off := &entity.Schedule{MedicationID: med.ID, TimeOfDay: "21:00", Timezone: "UTC", DaysOfWeek: "daily", Enabled: false}
	require.NoError(t, repo.Create(ctx, on))
	require.NoError(t, repo.Create(ctx, off))

	enabled, err := repo.FindEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, on.ID, enabled[0].ID)
	require.NotNil(t, enabled[0].Medication)
	assert.Equal(t, "Metformin", enabled[0].Medication.Name)
}

func TestScheduleRepository_MarkFiredKeepsInstant(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewScheduleRepository(db)

	u := seedUser(t, db, "dave@example.com")
	med := seedMedication(t, db, u.ID, "Aspirin", 3, 1)
	s := &entity.Schedule{MedicationID: med.ID, TimeOfDay: "08:30", Timezone: "America/New_York", DaysOfWeek: "daily", Enabled: true}
	require.NoError(t, repo.Create(ctx, s))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	firedAt := time.Date(2024, 1, 8, 8, 30, 0, 0, ny)
	s.LastReminderSentAt = &firedAt
	require.NoError(t, repo.MarkFired(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastReminderSentAt)
	assert.True(t, got.LastReminderSentAt.Equal(firedAt), "got %v", got.LastReminderSentAt)
}

func TestMedicationRepository_SaveEvaluation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewMedicationRepository(db)

	u := seedUser(t, db, "erin@example.com")
	med := seedMedication(t, db, u.ID, "Lisinopril", 3, 5)
	other := seedMedication(t, db, u.ID, "Vitamin C", 50, 5)

	low, err := repo.FindLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, med.ID, low[0].ID)

	d := datatypes.Date(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	med.StockCount = 2
	med.LastLowStockSentAt = &d
	require.NoError(t, repo.SaveEvaluation(ctx, med))

	got, err := repo.FindByID(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockCount)
	require.NotNil(t, got.LastLowStockSentAt)
	y, m, day := time.Time(*got.LastLowStockSentAt).UTC().Date()
	assert.Equal(t, []int{2024, 1, 10}, []int{y, int(m), day})

	untouched, err := repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, untouched.StockCount)
	assert.Nil(t, untouched.LastLowStockSentAt)
}

func TestNotificationRepository_ListAndRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)

	batch := []*entity.Notification{
		{Type: constant.NotificationTimeToTake, Title: "first", Message: "m1"},
		{Type: constant.NotificationLowStock, Title: "second", Message: "m2"},
		{Type: constant.NotificationTimeToTake, Title: "third", Message: "m3"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	for _, n := range batch {
		assert.NotZero(t, n.ID)
	}

	list, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)

	now := time.Now().UTC()
	require.NoError(t, repo.MarkRead(ctx, batch[0].ID, now))
	require.NoError(t, repo.MarkRead(ctx, 9999, now))

	list, err = repo.List(ctx, 50)
	require.NoError(t, err)
	unread := 0
	for _, n := range list {
		if n.ReadAt == nil {
			unread++
		}
	}
	assert.Equal(t, 2, unread)

	require.NoError(t, repo.MarkAllRead(ctx, now))
	list, err = repo.List(ctx, 50)
	require.NoError(t, err)
	for _, n := range list {
		assert.NotNil(t, n.ReadAt)
	}
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tx := NewTransactor(db)
	meds := NewMedicationRepository(db)
	notifications := NewNotificationRepository(db)

	u := seedUser(t, db, "frank@example.com")
	med := seedMedication(t, db, u.ID, "Aspirin", 5, 1)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		med.StockCount = 4
		if err := meds.SaveEvaluation(ctx, med); err != nil {
			return err
		}
		if err := notifications.CreateBatch(ctx, []*entity.Notification{
			{Type: constant.NotificationTimeToTake, Title: "t", Message: "m"},
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := meds.FindByID(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StockCount)

	list, err := notifications.List(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserRepository_LineLink(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	u := seedUser(t, db, "gina@example.com")
	code := "ABC123"
	u.LineLinkCode = &code
	require.NoError(t, repo.Update(ctx, u))

	found, err := repo.FindByLineLinkCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	lineID := "U123"
	found.LineUserID = &lineID
	found.LineLinkCode = nil
	require.NoError(t, repo.Update(ctx, found))

	require.NoError(t, repo.ClearLineUserID(ctx, lineID))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.HasLine())

	users, err := repo.FindByIDs(ctx, []uint{u.ID, 12345})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
