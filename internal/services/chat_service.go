package services

import (
	"errors"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/internal/ws"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// EventPusher отдает событие в открытые вебсокет соединения пользователя.
// Реализуется ws.Hub, в тестах может быть nil.
type EventPusher interface {
	Push(userID string, event ws.Event)
}

type ChatService interface {
	// EnsureThread возвращает тред пары, создавая его при отсутствии.
	// Второе значение - true, если тред был создан этим вызовом.
	EnsureThread(db *gorm.DB, theaterUserID, talentUserID string) (*models.MessageThread, bool, error)

	// AppendMessage пишет сообщение в уже загруженный тред без проверки
	// участника. Для внутренних вызовов (диспатч матча), где тред только
	// что выбран по паре.
	AppendMessage(db *gorm.DB, thread *models.MessageThread, senderID, body string) (*dto.MessageResponse, error)

	StartThread(db *gorm.DB, senderID string, req *dto.StartThreadRequest) (*dto.ThreadResponse, error)
	SendMessage(db *gorm.DB, senderID, threadID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetThreads(db *gorm.DB, userID string) ([]dto.ThreadResponse, error)
	GetMessages(db *gorm.DB, userID, threadID string, page, pageSize int) (*dto.MessageListResponse, error)
}

type chatService struct {
	threadRepo      repositories.ThreadRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
	pusher          EventPusher
}

func NewChatService(
	threadRepo repositories.ThreadRepository,
	userRepo repositories.UserRepository,
	notificationSvc NotificationService,
	pusher EventPusher,
) ChatService {
	return &chatService{
		threadRepo:      threadRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		pusher:          pusher,
	}
}

func (s *chatService) EnsureThread(db *gorm.DB, theaterUserID, talentUserID string) (*models.MessageThread, bool, error) {
	thread, err := s.threadRepo.FindByPair(db, theaterUserID, talentUserID)
	if err == nil {
		return thread, false, nil
	}
	if !errors.Is(err, repositories.ErrThreadNotFound) {
		return nil, false, err
	}

	thread = &models.MessageThread{
		TheaterUserID: theaterUserID,
		TalentUserID:  talentUserID,
	}
	if err := s.threadRepo.Create(db, thread); err != nil {
		return nil, false, err
	}
	return thread, true, nil
}

// StartThread открывает переписку с пользователем. Стороны треда
// определяются ролями аккаунтов: тред всегда театр <-> талант.
func (s *chatService) StartThread(db *gorm.DB, senderID string, req *dto.StartThreadRequest) (*dto.ThreadResponse, error) {
	sender, err := s.userRepo.FindByID(db, senderID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	recipient, err := s.userRepo.FindByID(db, req.RecipientID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	var theaterUserID, talentUserID string
	switch {
	case sender.Role == models.UserRoleTheater && recipient.Role == models.UserRoleTalent:
		theaterUserID, talentUserID = sender.ID, recipient.ID
	case sender.Role == models.UserRoleTalent && recipient.Role == models.UserRoleTheater:
		theaterUserID, talentUserID = recipient.ID, sender.ID
	default:
		return nil, apperrors.ErrInvalidOperation("thread", "Threads connect a theater account with a talent account")
	}

	thread, _, err := s.EnsureThread(db, theaterUserID, talentUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.appendMessage(db, thread, senderID, req.Body); err != nil {
		return nil, err
	}

	thread.LastMessage = req.Body
	thread.LastSenderID = senderID
	resp := dto.NewThreadResponse(thread)
	return &resp, nil
}

func (s *chatService) SendMessage(db *gorm.DB, senderID, threadID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	thread, err := s.threadRepo.FindByID(db, threadID)
	if err != nil {
		if errors.Is(err, repositories.ErrThreadNotFound) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !thread.IsParticipant(senderID) {
		return nil, apperrors.ErrNotThreadParticipant
	}

	return s.appendMessage(db, thread, senderID, req.Body)
}

func (s *chatService) AppendMessage(db *gorm.DB, thread *models.MessageThread, senderID, body string) (*dto.MessageResponse, error) {
	return s.appendMessage(db, thread, senderID, body)
}

// appendMessage пишет сообщение, обновляет сводку треда и уведомляет
// второго участника. Сбой уведомления не ломает отправку.
func (s *chatService) appendMessage(db *gorm.DB, thread *models.MessageThread, senderID, body string) (*dto.MessageResponse, error) {
	message := &models.ThreadMessage{
		ThreadID: thread.ID,
		SenderID: senderID,
		Body:     body,
	}
	if err := s.threadRepo.AddMessage(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.threadRepo.UpdateLastMessage(db, thread.ID, body, senderID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	recipientID := thread.TheaterUserID
	if senderID == thread.TheaterUserID {
		recipientID = thread.TalentUserID
	}
	_ = s.notificationSvc.NotifyNewMessage(db, recipientID, thread.ID, "")

	resp := dto.NewMessageResponse(message)
	if s.pusher != nil {
		s.pusher.Push(recipientID, ws.Event{Type: "message.new", Payload: resp})
	}
	return &resp, nil
}

func (s *chatService) GetThreads(db *gorm.DB, userID string) ([]dto.ThreadResponse, error) {
	threads, err := s.threadRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ThreadResponse, 0, len(threads))
	for i := range threads {
		items = append(items, dto.NewThreadResponse(&threads[i]))
	}
	return items, nil
}

func (s *chatService) GetMessages(db *gorm.DB, userID, threadID string, page, pageSize int) (*dto.MessageListResponse, error) {
	thread, err := s.threadRepo.FindByID(db, threadID)
	if err != nil {
		if errors.Is(err, repositories.ErrThreadNotFound) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !thread.IsParticipant(userID) {
		return nil, apperrors.ErrNotThreadParticipant
	}

	messages, total, err := s.threadRepo.FindMessages(db, threadID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewMessageResponse(&messages[i]))
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	return &dto.MessageListResponse{
		Messages: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
