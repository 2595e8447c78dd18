package services

import (
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"

	"gorm.io/gorm"
)

// Ручные моки репозиториев. Встраивание интерфейса позволяет
// реализовывать только методы, нужные конкретному тесту.

type mockProfileRepo struct {
	repositories.ProfileRepository

	findTalentByUserID    func(userID string) (*models.TalentProfile, error)
	findTheaterByUserID   func(userID string) (*models.TheaterProfile, error)
	equalityCandidateIDs  func(equals map[string]interface{}) ([]string, error)
	candidateIDsByFilter  func(filter repositories.ArrayFilter) ([]string, error)
	findProfilesByUserIDs func(userIDs []string) ([]models.TalentProfile, error)
}

func (m *mockProfileRepo) FindTalentProfileByUserID(_ *gorm.DB, userID string) (*models.TalentProfile, error) {
	return m.findTalentByUserID(userID)
}

func (m *mockProfileRepo) FindTheaterProfileByUserID(_ *gorm.DB, userID string) (*models.TheaterProfile, error) {
	return m.findTheaterByUserID(userID)
}

func (m *mockProfileRepo) EqualityCandidateIDs(_ *gorm.DB, equals map[string]interface{}) ([]string, error) {
	return m.equalityCandidateIDs(equals)
}

func (m *mockProfileRepo) CandidateIDsByArrayFilter(_ *gorm.DB, filter repositories.ArrayFilter) ([]string, error) {
	return m.candidateIDsByFilter(filter)
}

func (m *mockProfileRepo) FindTalentProfilesByUserIDs(_ *gorm.DB, userIDs []string) ([]models.TalentProfile, error) {
	return m.findProfilesByUserIDs(userIDs)
}

type mockProductionRepo struct {
	repositories.ProductionRepository

	findByID          func(id string) (*models.Production, error)
	findAllByStatuses func(statuses []models.ProductionStatus) ([]models.Production, error)
	updateStatus      func(id string, status models.ProductionStatus) error
}

func (m *mockProductionRepo) FindByID(_ *gorm.DB, id string) (*models.Production, error) {
	return m.findByID(id)
}

func (m *mockProductionRepo) FindAllByStatuses(_ *gorm.DB, statuses []models.ProductionStatus) ([]models.Production, error) {
	return m.findAllByStatuses(statuses)
}

func (m *mockProductionRepo) UpdateStatus(_ *gorm.DB, id string, status models.ProductionStatus) error {
	return m.updateStatus(id, status)
}

type mockMatchRepo struct {
	repositories.MatchRepository

	create          func(match *models.TheaterTalentMatch) error
	findByTriple    func(productionID, roleID, talentUserID string) (*models.TheaterTalentMatch, error)
	update          func(match *models.TheaterTalentMatch) error
	talentIDsByRole func(productionID, roleID string, status bool) ([]string, error)
}

func (m *mockMatchRepo) Create(_ *gorm.DB, match *models.TheaterTalentMatch) error {
	return m.create(match)
}

func (m *mockMatchRepo) FindByTriple(_ *gorm.DB, productionID, roleID, talentUserID string) (*models.TheaterTalentMatch, error) {
	return m.findByTriple(productionID, roleID, talentUserID)
}

func (m *mockMatchRepo) Update(_ *gorm.DB, match *models.TheaterTalentMatch) error {
	return m.update(match)
}

func (m *mockMatchRepo) TalentIDsByRoleAndStatus(_ *gorm.DB, productionID, roleID string, status bool) ([]string, error) {
	return m.talentIDsByRole(productionID, roleID, status)
}

type mockUserRepo struct {
	repositories.UserRepository

	findByID     func(id string) (*models.User, error)
	updateStatus func(userID string, status models.UserStatus) error
}

func (m *mockUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	return m.findByID(id)
}

func (m *mockUserRepo) UpdateStatus(_ *gorm.DB, userID string, status models.UserStatus) error {
	return m.updateStatus(userID, status)
}

type mockThreadRepo struct {
	repositories.ThreadRepository

	create     func(thread *models.MessageThread) error
	findByID   func(id string) (*models.MessageThread, error)
	findByPair func(theaterUserID, talentUserID string) (*models.MessageThread, error)
	addMessage func(message *models.ThreadMessage) error
	updateLast func(threadID, lastMessage, senderID string) error
}

func (m *mockThreadRepo) Create(_ *gorm.DB, thread *models.MessageThread) error {
	return m.create(thread)
}

func (m *mockThreadRepo) FindByID(_ *gorm.DB, id string) (*models.MessageThread, error) {
	return m.findByID(id)
}

func (m *mockThreadRepo) FindByPair(_ *gorm.DB, theaterUserID, talentUserID string) (*models.MessageThread, error) {
	return m.findByPair(theaterUserID, talentUserID)
}

func (m *mockThreadRepo) AddMessage(_ *gorm.DB, message *models.ThreadMessage) error {
	return m.addMessage(message)
}

func (m *mockThreadRepo) UpdateLastMessage(_ *gorm.DB, threadID, lastMessage, senderID string) error {
	return m.updateLast(threadID, lastMessage, senderID)
}

type mockEmailRepo struct {
	repositories.EmailRepository

	enqueue func(email *models.EmailQueue) error
}

func (m *mockEmailRepo) Enqueue(_ *gorm.DB, email *models.EmailQueue) error {
	return m.enqueue(email)
}

type mockAuditRepo struct {
	repositories.AuditRepository

	create func(entry *models.AuditLog) error
}

func (m *mockAuditRepo) Create(_ *gorm.DB, entry *models.AuditLog) error {
	return m.create(entry)
}

// Моки сервисов для диспатчера матчей

type mockChatService struct {
	ChatService

	ensureThread  func(theaterUserID, talentUserID string) (*models.MessageThread, bool, error)
	appendMessage func(thread *models.MessageThread, senderID, body string) (*dto.MessageResponse, error)
}

func (m *mockChatService) EnsureThread(_ *gorm.DB, theaterUserID, talentUserID string) (*models.MessageThread, bool, error) {
	return m.ensureThread(theaterUserID, talentUserID)
}

func (m *mockChatService) AppendMessage(_ *gorm.DB, thread *models.MessageThread, senderID, body string) (*dto.MessageResponse, error) {
	return m.appendMessage(thread, senderID, body)
}

type mockNotificationService struct {
	NotificationService

	notifyInterest       func(recipientID string) error
	notifyMatchConfirmed func(recipientID, threadID string) error
	notifyAccountStatus  func(recipientID string, status models.UserStatus) error
	notifyNewMessage     func(recipientID, threadID string) error
}

func (m *mockNotificationService) NotifyInterest(_ *gorm.DB, recipientID, _, _, _, _ string) error {
	return m.notifyInterest(recipientID)
}

func (m *mockNotificationService) NotifyMatchConfirmed(_ *gorm.DB, recipientID, _, _, _, _, threadID string) error {
	return m.notifyMatchConfirmed(recipientID, threadID)
}

func (m *mockNotificationService) NotifyAccountStatus(_ *gorm.DB, recipientID string, status models.UserStatus) error {
	return m.notifyAccountStatus(recipientID, status)
}

func (m *mockNotificationService) NotifyNewMessage(_ *gorm.DB, recipientID, threadID, _ string) error {
	return m.notifyNewMessage(recipientID, threadID)
}
