package services

import (
	"encoding/json"
	"testing"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	target *models.User

	userRepo        *mockUserRepo
	productionRepo  *mockProductionRepo
	auditRepo       *mockAuditRepo
	notificationSvc *mockNotificationService

	statusUpdates []models.UserStatus
	auditEntries  []*models.AuditLog
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		target: &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: models.UserRoleTalent, Status: models.UserStatusActive},
	}

	f.userRepo = &mockUserRepo{
		findByID: func(id string) (*models.User, error) {
			if id == f.target.ID {
				return f.target, nil
			}
			return nil, repositories.ErrUserNotFound
		},
		updateStatus: func(userID string, status models.UserStatus) error {
			f.statusUpdates = append(f.statusUpdates, status)
			return nil
		},
	}

	f.productionRepo = &mockProductionRepo{}
	f.auditRepo = &mockAuditRepo{create: func(entry *models.AuditLog) error {
		f.auditEntries = append(f.auditEntries, entry)
		return nil
	}}
	f.notificationSvc = &mockNotificationService{
		notifyAccountStatus: func(string, models.UserStatus) error { return nil },
	}

	return f
}

func (f *adminFixture) service() AdminService {
	return NewAdminService(f.userRepo, f.productionRepo, f.auditRepo, f.notificationSvc)
}

func auditDetail(t *testing.T, entry *models.AuditLog) map[string]string {
	t.Helper()
	detail := map[string]string{}
	require.NoError(t, json.Unmarshal(entry.Detail, &detail))
	return detail
}

func TestSuspendUser_WritesAuditEntry(t *testing.T) {
	f := newAdminFixture()

	err := f.service().SuspendUser(nil, "admin-1", "user-1", "spam listings")

	require.NoError(t, err)
	assert.Equal(t, []models.UserStatus{models.UserStatusSuspended}, f.statusUpdates)
	require.Len(t, f.auditEntries, 1)

	entry := f.auditEntries[0]
	assert.Equal(t, "admin-1", entry.AdminUserID)
	assert.Equal(t, AuditActionSuspendUser, entry.Action)
	assert.Equal(t, "user", entry.EntityType)
	assert.Equal(t, "user-1", entry.EntityID)

	detail := auditDetail(t, entry)
	assert.Equal(t, "spam listings", detail["reason"])
	assert.Equal(t, string(models.UserStatusSuspended), detail["new_status"])
}

func TestSuspendUser_AdminTargetIsForbidden(t *testing.T) {
	f := newAdminFixture()
	f.target.Role = models.UserRoleAdmin

	err := f.service().SuspendUser(nil, "admin-1", "user-1", "test")

	assert.Error(t, err)
	assert.Empty(t, f.statusUpdates)
	assert.Empty(t, f.auditEntries)
}

func TestSuspendUser_AlreadySuspendedIsRejected(t *testing.T) {
	f := newAdminFixture()
	f.target.Status = models.UserStatusSuspended

	err := f.service().SuspendUser(nil, "admin-1", "user-1", "again")

	assert.Error(t, err)
	assert.Empty(t, f.statusUpdates)
}

func TestReactivateUser_NotifiesTarget(t *testing.T) {
	f := newAdminFixture()
	f.target.Status = models.UserStatusSuspended
	var notified models.UserStatus
	f.notificationSvc.notifyAccountStatus = func(recipientID string, status models.UserStatus) error {
		assert.Equal(t, "user-1", recipientID)
		notified = status
		return nil
	}

	err := f.service().ReactivateUser(nil, "admin-1", "user-1", "appeal approved")

	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, notified)
}

// Аудит принудительной смены статуса хранит и прежний статус,
// иначе действие администратора нельзя откатить осмысленно.
func TestForceProductionStatus_RecordsPreviousStatus(t *testing.T) {
	f := newAdminFixture()
	f.productionRepo.findByID = func(id string) (*models.Production, error) {
		return &models.Production{ID: id, Status: models.ProductionStatusCasting}, nil
	}
	var forced models.ProductionStatus
	f.productionRepo.updateStatus = func(id string, status models.ProductionStatus) error {
		forced = status
		return nil
	}

	err := f.service().ForceProductionStatus(nil, "admin-1", "p1", &dto.ForceProductionStatusRequest{
		Status: string(models.ProductionStatusComplete),
		Reason: "reported as finished",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ProductionStatusComplete, forced)
	require.Len(t, f.auditEntries, 1)

	detail := auditDetail(t, f.auditEntries[0])
	assert.Equal(t, string(models.ProductionStatusCasting), detail["previous_status"])
	assert.Equal(t, string(models.ProductionStatusComplete), detail["new_status"])
	assert.Equal(t, "reported as finished", detail["reason"])
}

func TestForceProductionStatus_UnknownStatusIsRejected(t *testing.T) {
	f := newAdminFixture()

	err := f.service().ForceProductionStatus(nil, "admin-1", "p1", &dto.ForceProductionStatusRequest{
		Status: "Cancelled Forever",
		Reason: "test",
	})

	assert.Error(t, err)
	assert.Empty(t, f.auditEntries)
}
