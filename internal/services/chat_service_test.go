package services

import (
	"testing"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatUsers() *mockUserRepo {
	return &mockUserRepo{findByID: func(id string) (*models.User, error) {
		switch id {
		case "theater-1":
			return &models.User{BaseModel: models.BaseModel{ID: id}, Role: models.UserRoleTheater}, nil
		case "talent-1":
			return &models.User{BaseModel: models.BaseModel{ID: id}, Role: models.UserRoleTalent}, nil
		case "talent-2":
			return &models.User{BaseModel: models.BaseModel{ID: id}, Role: models.UserRoleTalent}, nil
		}
		return nil, repositories.ErrUserNotFound
	}}
}

func quietNotifications() *mockNotificationService {
	return &mockNotificationService{
		notifyNewMessage: func(string, string) error { return nil },
	}
}

func TestEnsureThread_ReusesExistingPair(t *testing.T) {
	existing := &models.MessageThread{ID: "thread-1", TheaterUserID: "theater-1", TalentUserID: "talent-1"}
	threadRepo := &mockThreadRepo{
		findByPair: func(theaterUserID, talentUserID string) (*models.MessageThread, error) {
			assert.Equal(t, "theater-1", theaterUserID)
			assert.Equal(t, "talent-1", talentUserID)
			return existing, nil
		},
		create: func(*models.MessageThread) error {
			t.Fatal("существующий тред пары не должен пересоздаваться")
			return nil
		},
	}
	svc := NewChatService(threadRepo, chatUsers(), quietNotifications(), nil)

	thread, created, err := svc.EnsureThread(nil, "theater-1", "talent-1")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "thread-1", thread.ID)
}

func TestEnsureThread_CreatesWhenMissing(t *testing.T) {
	var stored *models.MessageThread
	threadRepo := &mockThreadRepo{
		findByPair: func(string, string) (*models.MessageThread, error) {
			return nil, repositories.ErrThreadNotFound
		},
		create: func(thread *models.MessageThread) error {
			thread.ID = "thread-new"
			stored = thread
			return nil
		},
	}
	svc := NewChatService(threadRepo, chatUsers(), quietNotifications(), nil)

	thread, created, err := svc.EnsureThread(nil, "theater-1", "talent-1")

	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, stored)
	assert.Equal(t, "theater-1", stored.TheaterUserID)
	assert.Equal(t, "talent-1", stored.TalentUserID)
	assert.Equal(t, "thread-new", thread.ID)
}

// Стороны треда определяются ролями, а не тем, кто пишет первым:
// талант, начиная переписку, все равно оказывается в talent_user_id.
func TestStartThread_OrientsPairByRoles(t *testing.T) {
	var stored *models.MessageThread
	threadRepo := &mockThreadRepo{
		findByPair: func(string, string) (*models.MessageThread, error) {
			return nil, repositories.ErrThreadNotFound
		},
		create: func(thread *models.MessageThread) error {
			thread.ID = "thread-new"
			stored = thread
			return nil
		},
		addMessage: func(*models.ThreadMessage) error { return nil },
		updateLast: func(string, string, string) error { return nil },
	}
	svc := NewChatService(threadRepo, chatUsers(), quietNotifications(), nil)

	resp, err := svc.StartThread(nil, "talent-1", &dto.StartThreadRequest{
		RecipientID: "theater-1",
		Body:        "Здравствуйте, интересует роль",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "theater-1", stored.TheaterUserID)
	assert.Equal(t, "talent-1", stored.TalentUserID)
	assert.Equal(t, "Здравствуйте, интересует роль", resp.LastMessage)
}

func TestStartThread_RejectsSameRolePair(t *testing.T) {
	svc := NewChatService(&mockThreadRepo{}, chatUsers(), quietNotifications(), nil)

	_, err := svc.StartThread(nil, "talent-1", &dto.StartThreadRequest{
		RecipientID: "talent-2",
		Body:        "hi",
	})

	assert.Error(t, err)
}

func TestSendMessage_NonParticipantIsRejected(t *testing.T) {
	threadRepo := &mockThreadRepo{
		findByID: func(id string) (*models.MessageThread, error) {
			return &models.MessageThread{ID: id, TheaterUserID: "theater-1", TalentUserID: "talent-1"}, nil
		},
	}
	svc := NewChatService(threadRepo, chatUsers(), quietNotifications(), nil)

	_, err := svc.SendMessage(nil, "talent-2", "thread-1", &dto.SendMessageRequest{Body: "hi"})

	assert.ErrorIs(t, err, apperrors.ErrNotThreadParticipant)
}

func TestSendMessage_NotifiesCounterpart(t *testing.T) {
	threadRepo := &mockThreadRepo{
		findByID: func(id string) (*models.MessageThread, error) {
			return &models.MessageThread{ID: id, TheaterUserID: "theater-1", TalentUserID: "talent-1"}, nil
		},
		addMessage: func(*models.ThreadMessage) error { return nil },
		updateLast: func(threadID, lastMessage, senderID string) error {
			assert.Equal(t, "theater-1", senderID)
			return nil
		},
	}
	var notified string
	notifications := &mockNotificationService{
		notifyNewMessage: func(recipientID, threadID string) error {
			notified = recipientID
			return nil
		},
	}
	svc := NewChatService(threadRepo, chatUsers(), notifications, nil)

	resp, err := svc.SendMessage(nil, "theater-1", "thread-1", &dto.SendMessageRequest{Body: "Ждем вас на прослушивание"})

	require.NoError(t, err)
	assert.Equal(t, "talent-1", notified)
	assert.Equal(t, "Ждем вас на прослушивание", resp.Body)
}
