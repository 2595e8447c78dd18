package services

import (
	"errors"
	"testing"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	production *models.Production
	theater    *models.User
	talent     *models.User

	matchRepo       *mockMatchRepo
	userRepo        *mockUserRepo
	profileRepo     *mockProfileRepo
	productionRepo  *mockProductionRepo
	emailRepo       *mockEmailRepo
	chatSvc         *mockChatService
	notificationSvc *mockNotificationService

	enqueued       []*models.EmailQueue
	notifications  []string
	threadMessages []string
}

func newMatchFixture() *matchFixture {
	f := &matchFixture{
		production: productionWithRoles("p1", openRole("r1")),
		theater:    &models.User{BaseModel: models.BaseModel{ID: "theater-1"}, Email: "theater@example.com", Role: models.UserRoleTheater},
		talent:     &models.User{BaseModel: models.BaseModel{ID: "talent-1"}, Email: "talent@example.com", Role: models.UserRoleTalent},
	}

	f.productionRepo = &mockProductionRepo{findByID: func(id string) (*models.Production, error) {
		if id == f.production.ID {
			return f.production, nil
		}
		return nil, repositories.ErrProductionNotFound
	}}

	f.userRepo = &mockUserRepo{findByID: func(id string) (*models.User, error) {
		switch id {
		case f.theater.ID:
			return f.theater, nil
		case f.talent.ID:
			return f.talent, nil
		}
		return nil, repositories.ErrUserNotFound
	}}

	f.profileRepo = &mockProfileRepo{
		findTalentByUserID: func(userID string) (*models.TalentProfile, error) {
			return &models.TalentProfile{UserID: userID, Name: "Talent Name", ContactEmail: "contact@example.com"}, nil
		},
		findTheaterByUserID: func(userID string) (*models.TheaterProfile, error) {
			return &models.TheaterProfile{UserID: userID, CompanyName: "Theater Co"}, nil
		},
	}

	f.matchRepo = &mockMatchRepo{
		findByTriple: func(string, string, string) (*models.TheaterTalentMatch, error) {
			return nil, repositories.ErrMatchNotFound
		},
		create: func(m *models.TheaterTalentMatch) error { return nil },
		update: func(m *models.TheaterTalentMatch) error { return nil },
	}

	f.emailRepo = &mockEmailRepo{enqueue: func(e *models.EmailQueue) error {
		f.enqueued = append(f.enqueued, e)
		return nil
	}}

	f.chatSvc = &mockChatService{
		ensureThread: func(theaterUserID, talentUserID string) (*models.MessageThread, bool, error) {
			return &models.MessageThread{ID: "thread-1", TheaterUserID: theaterUserID, TalentUserID: talentUserID}, true, nil
		},
		appendMessage: func(thread *models.MessageThread, senderID, body string) (*dto.MessageResponse, error) {
			f.threadMessages = append(f.threadMessages, body)
			return &dto.MessageResponse{ThreadID: thread.ID, SenderID: senderID, Body: body}, nil
		},
	}

	f.notificationSvc = &mockNotificationService{
		notifyInterest: func(recipientID string) error {
			f.notifications = append(f.notifications, "interest:"+recipientID)
			return nil
		},
		notifyMatchConfirmed: func(recipientID, threadID string) error {
			f.notifications = append(f.notifications, "confirmed:"+recipientID)
			return nil
		},
	}

	return f
}

func (f *matchFixture) service() MatchService {
	return NewMatchService(f.matchRepo, f.productionRepo, f.profileRepo, f.userRepo, f.emailRepo, f.chatSvc, f.notificationSvc)
}

func TestExpressInterest_TheaterCreatesMatch(t *testing.T) {
	f := newMatchFixture()
	var created *models.TheaterTalentMatch
	f.matchRepo.create = func(m *models.TheaterTalentMatch) error {
		created = m
		return nil
	}

	resp, err := f.service().ExpressInterest(nil, "theater-1", models.UserRoleTheater, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		TalentUserID: "talent-1",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.Status)
	assert.Equal(t, models.MatchPartyTheater, created.InitiatedBy)
	assert.Equal(t, "theater-1", created.TheaterUserID)
	assert.Nil(t, created.ConfirmedBy)
	assert.False(t, resp.NotificationFailed)

	// Уведомление уходит таланту, письмо на контактный email анкеты
	assert.Contains(t, f.notifications, "interest:talent-1")
	require.Len(t, f.enqueued, 1)
	assert.Equal(t, "contact@example.com", f.enqueued[0].ToEmail)
}

func TestExpressInterest_TalentCounterInterestConfirms(t *testing.T) {
	f := newMatchFixture()
	existing := &models.TheaterTalentMatch{
		ID:            "m1",
		ProductionID:  "p1",
		RoleID:        "r1",
		TalentUserID:  "talent-1",
		TheaterUserID: "theater-1",
		Status:        true,
		InitiatedBy:   models.MatchPartyTheater,
	}
	f.matchRepo.findByTriple = func(string, string, string) (*models.TheaterTalentMatch, error) {
		return existing, nil
	}
	var updated *models.TheaterTalentMatch
	f.matchRepo.update = func(m *models.TheaterTalentMatch) error {
		updated = m
		return nil
	}

	resp, err := f.service().ExpressInterest(nil, "talent-1", models.UserRoleTalent, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.ConfirmedBy)
	assert.Equal(t, models.MatchPartyTalent, *updated.ConfirmedBy)
	assert.True(t, resp.IsConfirmed)
	assert.Equal(t, "thread-1", resp.ThreadID)

	// Обе стороны уведомлены о подтверждении
	assert.Contains(t, f.notifications, "confirmed:theater-1")
	assert.Contains(t, f.notifications, "confirmed:talent-1")
	assert.Len(t, f.enqueued, 2)

	// В тред пары уходит сообщение о матче с контактом подтвердившей стороны
	require.Len(t, f.threadMessages, 1)
	assert.Contains(t, f.threadMessages[0], "Ensemble")
	assert.Contains(t, f.threadMessages[0], "contact@example.com")
}

func TestExpressInterest_ResolvedMatchIsRejected(t *testing.T) {
	f := newMatchFixture()
	confirmed := models.MatchPartyTalent
	f.matchRepo.findByTriple = func(string, string, string) (*models.TheaterTalentMatch, error) {
		return &models.TheaterTalentMatch{
			ProductionID: "p1", RoleID: "r1", TalentUserID: "talent-1",
			InitiatedBy: models.MatchPartyTheater, ConfirmedBy: &confirmed,
		}, nil
	}

	_, err := f.service().ExpressInterest(nil, "theater-1", models.UserRoleTheater, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		TalentUserID: "talent-1",
	})

	assert.ErrorIs(t, err, apperrors.ErrMatchAlreadyResolved)
}

// Повторный интерес по открытой записи подтверждает матч независимо от
// того, какая сторона его инициировала.
func TestExpressInterest_RepeatBySamePartyConfirms(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.findByTriple = func(string, string, string) (*models.TheaterTalentMatch, error) {
		return &models.TheaterTalentMatch{
			ID: "m1", ProductionID: "p1", RoleID: "r1", TalentUserID: "talent-1",
			TheaterUserID: "theater-1",
			Status:        true, InitiatedBy: models.MatchPartyTheater,
		}, nil
	}
	f.matchRepo.create = func(*models.TheaterTalentMatch) error {
		t.Fatal("повторный интерес не должен создавать вторую запись")
		return nil
	}
	var updated *models.TheaterTalentMatch
	f.matchRepo.update = func(m *models.TheaterTalentMatch) error {
		updated = m
		return nil
	}

	resp, err := f.service().ExpressInterest(nil, "theater-1", models.UserRoleTheater, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		TalentUserID: "talent-1",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.ConfirmedBy)
	assert.Equal(t, models.MatchPartyTheater, *updated.ConfirmedBy)
	assert.True(t, resp.IsConfirmed)
	assert.Equal(t, "thread-1", resp.ThreadID)
	assert.Contains(t, f.notifications, "confirmed:theater-1")
	assert.Contains(t, f.notifications, "confirmed:talent-1")
}

// Подтверждение матча через живой сервис чата: сообщение о матче
// реально пишется в тред и обновляет его сводку.
func TestExpressInterest_ConfirmWritesThreadMessage(t *testing.T) {
	f := newMatchFixture()
	existing := &models.TheaterTalentMatch{
		ID: "m1", ProductionID: "p1", RoleID: "r1", TalentUserID: "talent-1",
		TheaterUserID: "theater-1",
		Status:        true, InitiatedBy: models.MatchPartyTheater,
	}
	f.matchRepo.findByTriple = func(string, string, string) (*models.TheaterTalentMatch, error) {
		return existing, nil
	}

	var added *models.ThreadMessage
	var lastMessage string
	threadRepo := &mockThreadRepo{
		findByPair: func(theaterUserID, talentUserID string) (*models.MessageThread, error) {
			return &models.MessageThread{ID: "thread-1", TheaterUserID: theaterUserID, TalentUserID: talentUserID}, nil
		},
		addMessage: func(m *models.ThreadMessage) error {
			added = m
			return nil
		},
		updateLast: func(threadID, last, senderID string) error {
			lastMessage = last
			return nil
		},
	}
	f.notificationSvc.notifyNewMessage = func(recipientID, threadID string) error { return nil }

	chatSvc := NewChatService(threadRepo, f.userRepo, f.notificationSvc, nil)
	svc := NewMatchService(f.matchRepo, f.productionRepo, f.profileRepo, f.userRepo, f.emailRepo, chatSvc, f.notificationSvc)

	resp, err := svc.ExpressInterest(nil, "talent-1", models.UserRoleTalent, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
	})

	require.NoError(t, err)
	assert.False(t, resp.NotificationFailed)
	require.NotNil(t, added)
	assert.Equal(t, "thread-1", added.ThreadID)
	assert.Equal(t, "talent-1", added.SenderID)
	assert.Contains(t, added.Body, "Ensemble")
	assert.Contains(t, added.Body, "Test Production")
	assert.Contains(t, added.Body, "contact@example.com")
	assert.Equal(t, added.Body, lastMessage)
}

func TestExpressInterest_InactiveProductionIsRejected(t *testing.T) {
	f := newMatchFixture()
	f.production.Status = models.ProductionStatusComplete

	_, err := f.service().ExpressInterest(nil, "talent-1", models.UserRoleTalent, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
	})

	assert.Error(t, err)
}

func TestExpressInterest_ForeignProductionIsForbidden(t *testing.T) {
	f := newMatchFixture()

	_, err := f.service().ExpressInterest(nil, "theater-2", models.UserRoleTheater, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		TalentUserID: "talent-1",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotProductionOwner)
}

// Сбой уведомлений не откатывает записанный матч, а только
// помечается в ответе.
func TestExpressInterest_NotificationFailureIsSoft(t *testing.T) {
	f := newMatchFixture()
	f.notificationSvc.notifyInterest = func(string) error {
		return errors.New("notification store down")
	}

	resp, err := f.service().ExpressInterest(nil, "theater-1", models.UserRoleTheater, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		TalentUserID: "talent-1",
	})

	require.NoError(t, err)
	assert.True(t, resp.NotificationFailed)
}

// Цепочка выбора адреса: без контактного email анкеты письмо уходит
// на email аккаунта.
func TestExpressInterest_EmailFallsBackToAccountEmail(t *testing.T) {
	f := newMatchFixture()
	f.profileRepo.findTalentByUserID = func(userID string) (*models.TalentProfile, error) {
		return &models.TalentProfile{UserID: userID, Name: "Talent Name"}, nil
	}

	_, err := f.service().ExpressInterest(nil, "theater-1", models.UserRoleTheater, &dto.ExpressInterestRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		TalentUserID: "talent-1",
	})

	require.NoError(t, err)
	require.Len(t, f.enqueued, 1)
	assert.Equal(t, "talent@example.com", f.enqueued[0].ToEmail)
}

func TestDecline_SetsRejectedByAndStatus(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.findByTriple = func(string, string, string) (*models.TheaterTalentMatch, error) {
		return &models.TheaterTalentMatch{
			ID: "m1", ProductionID: "p1", RoleID: "r1",
			TalentUserID: "talent-1", TheaterUserID: "theater-1",
			Status: true, InitiatedBy: models.MatchPartyTheater,
		}, nil
	}
	var updated *models.TheaterTalentMatch
	f.matchRepo.update = func(m *models.TheaterTalentMatch) error {
		updated = m
		return nil
	}

	resp, err := f.service().Decline(nil, "talent-1", models.UserRoleTalent, "p1", "r1", "")

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Status)
	require.NotNil(t, updated.RejectedBy)
	assert.Equal(t, models.MatchPartyTalent, *updated.RejectedBy)
	assert.False(t, resp.Status)
}

// Отказ без предшествующего интереса создает запись со status=false,
// не рассылая уведомлений.
func TestDecline_CreatesRecordWhenMissing(t *testing.T) {
	f := newMatchFixture()
	var created *models.TheaterTalentMatch
	f.matchRepo.create = func(m *models.TheaterTalentMatch) error {
		created = m
		return nil
	}

	resp, err := f.service().Decline(nil, "talent-1", models.UserRoleTalent, "p1", "r1", "")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.Status)
	assert.Equal(t, models.MatchPartyTalent, created.InitiatedBy)
	assert.Equal(t, "theater-1", created.TheaterUserID)
	assert.Equal(t, "talent-1", created.TalentUserID)
	assert.Nil(t, created.RejectedBy)
	assert.False(t, resp.Status)
	assert.Empty(t, f.notifications)
	assert.Empty(t, f.enqueued)
}

func TestDecline_ResolvedMatchIsRejected(t *testing.T) {
	f := newMatchFixture()
	rejected := models.MatchPartyTheater
	f.matchRepo.findByTriple = func(string, string, string) (*models.TheaterTalentMatch, error) {
		return &models.TheaterTalentMatch{
			ID: "m1", TalentUserID: "talent-1", TheaterUserID: "theater-1",
			RejectedBy: &rejected,
		}, nil
	}

	_, err := f.service().Decline(nil, "talent-1", models.UserRoleTalent, "p1", "r1", "")

	assert.ErrorIs(t, err, apperrors.ErrMatchAlreadyResolved)
}
