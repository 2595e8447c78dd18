package services

import (
	"errors"
	"fmt"

	"stagematch_backend/internal/email"
	"stagematch_backend/internal/logger"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// EmailNotAvailable подставляется вместо контакта, когда у второй стороны
// нет ни контактного email в анкете, ни email аккаунта
const EmailNotAvailable = "email not available"

type MatchService interface {
	// ExpressInterest записывает интерес стороны к тройке (постановка,
	// роль, талант). Первый вызов создает матч, встречный вызов второй
	// стороны подтверждает его.
	ExpressInterest(db *gorm.DB, actorUserID string, actorRole models.UserRole, req *dto.ExpressInterestRequest) (*dto.MatchResponse, error)

	// Decline отклоняет матч со стороны участника
	Decline(db *gorm.DB, actorUserID string, actorRole models.UserRole, productionID, roleID, talentUserID string) (*dto.MatchResponse, error)

	ListForUser(db *gorm.DB, userID string, role models.UserRole) (*dto.MatchListResponse, error)
	ListForProduction(db *gorm.DB, theaterUserID, productionID string) (*dto.MatchListResponse, error)
}

type matchService struct {
	matchRepo       repositories.MatchRepository
	productionRepo  repositories.ProductionRepository
	profileRepo     repositories.ProfileRepository
	userRepo        repositories.UserRepository
	emailRepo       repositories.EmailRepository
	chatSvc         ChatService
	notificationSvc NotificationService
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	productionRepo repositories.ProductionRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	emailRepo repositories.EmailRepository,
	chatSvc ChatService,
	notificationSvc NotificationService,
) MatchService {
	return &matchService{
		matchRepo:       matchRepo,
		productionRepo:  productionRepo,
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		emailRepo:       emailRepo,
		chatSvc:         chatSvc,
		notificationSvc: notificationSvc,
	}
}

// matchContext - загруженное окружение матча для валидации и диспатча
type matchContext struct {
	production   *models.Production
	role         *models.Role
	theaterUser  *models.User
	talentUser   *models.User
	talentUserID string
}

func (s *matchService) ExpressInterest(db *gorm.DB, actorUserID string, actorRole models.UserRole, req *dto.ExpressInterestRequest) (*dto.MatchResponse, error) {
	mc, actorParty, err := s.loadMatchContext(db, actorUserID, actorRole, req.ProductionID, req.RoleID, req.TalentUserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.matchRepo.FindByTriple(db, req.ProductionID, req.RoleID, mc.talentUserID)
	if err != nil && !errors.Is(err, repositories.ErrMatchNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// Первый интерес: новая запись, уведомление второй стороне
	if errors.Is(err, repositories.ErrMatchNotFound) {
		match := &models.TheaterTalentMatch{
			ProductionID:  req.ProductionID,
			RoleID:        req.RoleID,
			TalentUserID:  mc.talentUserID,
			TheaterUserID: mc.production.TheaterID,
			Status:        true,
			InitiatedBy:   actorParty,
		}
		if err := s.matchRepo.Create(db, match); err != nil {
			return nil, apperrors.InternalError(err)
		}

		resp := dto.NewMatchResponse(match)
		if !s.dispatchInterest(db, mc, actorParty) {
			resp.NotificationFailed = true
		}
		return &resp, nil
	}

	if existing.IsResolved() {
		return nil, apperrors.ErrMatchAlreadyResolved
	}

	// Повторный интерес по открытой записи подтверждает матч. Сторона
	// не важна: встречный интерес и повтор инициатора трактуются одинаково.
	existing.Status = true
	existing.ConfirmedBy = &actorParty
	if err := s.matchRepo.Update(db, existing); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewMatchResponse(existing)
	threadID, ok := s.dispatchConfirmed(db, mc, actorParty)
	resp.ThreadID = threadID
	if !ok {
		resp.NotificationFailed = true
	}
	return &resp, nil
}

func (s *matchService) Decline(db *gorm.DB, actorUserID string, actorRole models.UserRole, productionID, roleID, talentUserID string) (*dto.MatchResponse, error) {
	if actorRole == models.UserRoleTalent {
		talentUserID = actorUserID
	}

	match, err := s.matchRepo.FindByTriple(db, productionID, roleID, talentUserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.InternalError(err)
		}

		// Отказ без предшествующего интереса тоже записывается: тройка
		// фиксируется со status=false, вторая сторона не уведомляется.
		mc, actorParty, err := s.loadMatchContext(db, actorUserID, actorRole, productionID, roleID, talentUserID)
		if err != nil {
			return nil, err
		}
		match = &models.TheaterTalentMatch{
			ProductionID:  productionID,
			RoleID:        roleID,
			TalentUserID:  mc.talentUserID,
			TheaterUserID: mc.production.TheaterID,
			Status:        false,
			InitiatedBy:   actorParty,
		}
		if err := s.matchRepo.Create(db, match); err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp := dto.NewMatchResponse(match)
		return &resp, nil
	}

	actorParty := models.MatchPartyTalent
	if actorRole == models.UserRoleTheater {
		actorParty = models.MatchPartyTheater
		if match.TheaterUserID != actorUserID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	} else if match.TalentUserID != actorUserID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if match.IsResolved() {
		return nil, apperrors.ErrMatchAlreadyResolved
	}

	match.Status = false
	match.RejectedBy = &actorParty
	if err := s.matchRepo.Update(db, match); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewMatchResponse(match)
	return &resp, nil
}

func (s *matchService) ListForUser(db *gorm.DB, userID string, role models.UserRole) (*dto.MatchListResponse, error) {
	var matches []models.TheaterTalentMatch
	var err error
	if role == models.UserRoleTheater {
		matches, err = s.matchRepo.FindByTheater(db, userID)
	} else {
		matches, err = s.matchRepo.FindByTalent(db, userID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildMatchList(matches), nil
}

func (s *matchService) ListForProduction(db *gorm.DB, theaterUserID, productionID string) (*dto.MatchListResponse, error) {
	production, err := s.productionRepo.FindByID(db, productionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductionNotFound) {
			return nil, apperrors.ErrProductionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if production.TheaterID != theaterUserID {
		return nil, apperrors.ErrNotProductionOwner
	}

	matches, err := s.matchRepo.FindByProduction(db, productionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildMatchList(matches), nil
}

// loadMatchContext проверяет предусловия матча: постановка существует и
// открыта для матчинга, роль есть в постановке, оба аккаунта существуют,
// театр действует только от своей постановки.
func (s *matchService) loadMatchContext(db *gorm.DB, actorUserID string, actorRole models.UserRole, productionID, roleID, talentUserID string) (*matchContext, models.MatchParty, error) {
	var actorParty models.MatchParty
	switch actorRole {
	case models.UserRoleTheater:
		actorParty = models.MatchPartyTheater
		if talentUserID == "" {
			return nil, "", apperrors.ErrInvalidOperation("match", "talent_user_id is required when a theater expresses interest")
		}
	case models.UserRoleTalent:
		actorParty = models.MatchPartyTalent
		talentUserID = actorUserID
	default:
		return nil, "", apperrors.ErrInvalidAccountRole
	}

	production, err := s.productionRepo.FindByID(db, productionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductionNotFound) {
			return nil, "", apperrors.ErrProductionNotFound
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !production.Status.IsActiveForMatching() {
		return nil, "", apperrors.ErrInvalidStatus("match", "Production is not open for matching")
	}

	if actorRole == models.UserRoleTheater && production.TheaterID != actorUserID {
		return nil, "", apperrors.ErrNotProductionOwner
	}

	role := production.FindRole(roleID)
	if role == nil {
		return nil, "", apperrors.ErrRoleNotFound
	}

	theaterUser, err := s.userRepo.FindByID(db, production.TheaterID)
	if err != nil {
		return nil, "", apperrors.ErrMatchAccountNotFound
	}
	talentUser, err := s.userRepo.FindByID(db, talentUserID)
	if err != nil {
		return nil, "", apperrors.ErrMatchAccountNotFound
	}

	return &matchContext{
		production:   production,
		role:         role,
		theaterUser:  theaterUser,
		talentUser:   talentUser,
		talentUserID: talentUserID,
	}, actorParty, nil
}

// dispatchInterest уведомляет вторую сторону о новом интересе.
// Возвращает false при сбое: матч уже записан, сбой уведомлений
// не откатывает его.
func (s *matchService) dispatchInterest(db *gorm.DB, mc *matchContext, initiator models.MatchParty) bool {
	recipient := mc.theaterUser
	if initiator == models.MatchPartyTheater {
		recipient = mc.talentUser
	}

	ok := true
	if err := s.notificationSvc.NotifyInterest(db, recipient.ID, mc.production.ID, mc.production.Title, mc.role.RoleID, mc.role.Name); err != nil {
		logger.WithError(err).Warn("Не удалось создать уведомление об интересе", "recipient_id", recipient.ID)
		ok = false
	}

	address, name := s.recipientAddress(db, recipient)
	if address == "" {
		logger.Warn("Письмо об интересе пропущено: нет адреса", "recipient_id", recipient.ID)
		return ok
	}

	msg := email.BuildInterestEmail(address, name, mc.production.Title, mc.role.Name)
	if err := s.enqueueEmail(db, msg); err != nil {
		logger.WithError(err).Warn("Не удалось поставить письмо об интересе в очередь", "recipient_id", recipient.ID)
		ok = false
	}
	return ok
}

// dispatchConfirmed создает (или переиспользует) тред пары, пишет в него
// сообщение о матче от подтвердившей стороны и уведомляет обе стороны.
// Возвращает id треда и флаг успеха.
func (s *matchService) dispatchConfirmed(db *gorm.DB, mc *matchContext, confirmer models.MatchParty) (string, bool) {
	ok := true

	thread, _, err := s.chatSvc.EnsureThread(db, mc.production.TheaterID, mc.talentUserID)
	if err != nil {
		logger.WithError(err).Warn("Не удалось создать тред для подтвержденного матча",
			"theater_user_id", mc.production.TheaterID, "talent_user_id", mc.talentUserID)
		return "", false
	}

	theaterAddress, theaterName := s.recipientAddress(db, mc.theaterUser)
	talentAddress, talentName := s.recipientAddress(db, mc.talentUser)

	theaterContact := theaterAddress
	if theaterContact == "" {
		theaterContact = EmailNotAvailable
	}
	talentContact := talentAddress
	if talentContact == "" {
		talentContact = EmailNotAvailable
	}

	sender := mc.theaterUser
	senderContact := theaterContact
	if confirmer == models.MatchPartyTalent {
		sender = mc.talentUser
		senderContact = talentContact
	}

	body := fmt.Sprintf("It's a match! Role %q in %q is confirmed. Contact: %s",
		mc.role.Name, mc.production.Title, senderContact)
	if _, err := s.chatSvc.AppendMessage(db, thread, sender.ID, body); err != nil {
		logger.WithError(err).Warn("Не удалось записать сообщение о матче в тред", "thread_id", thread.ID)
		ok = false
	}

	for _, side := range []struct {
		user               *models.User
		address, name      string
		otherName, contact string
	}{
		{mc.theaterUser, theaterAddress, theaterName, talentName, talentContact},
		{mc.talentUser, talentAddress, talentName, theaterName, theaterContact},
	} {
		if err := s.notificationSvc.NotifyMatchConfirmed(db, side.user.ID, mc.production.ID, mc.production.Title, mc.role.RoleID, mc.role.Name, thread.ID); err != nil {
			logger.WithError(err).Warn("Не удалось создать уведомление о матче", "recipient_id", side.user.ID)
			ok = false
		}

		if side.address == "" {
			logger.Warn("Письмо о матче пропущено: нет адреса", "recipient_id", side.user.ID)
			continue
		}
		msg := email.BuildMatchConfirmedEmail(side.address, side.name, side.otherName, side.contact, mc.production.Title, mc.role.Name)
		if err := s.enqueueEmail(db, msg); err != nil {
			logger.WithError(err).Warn("Не удалось поставить письмо о матче в очередь", "recipient_id", side.user.ID)
			ok = false
		}
	}

	return thread.ID, ok
}

// recipientAddress применяет цепочку выбора адреса: контактный email
// анкеты, затем email аккаунта. Пустая строка - адреса нет.
func (s *matchService) recipientAddress(db *gorm.DB, user *models.User) (address, name string) {
	switch user.Role {
	case models.UserRoleTalent:
		if profile, err := s.profileRepo.FindTalentProfileByUserID(db, user.ID); err == nil {
			name = profile.Name
			if profile.ContactEmail != "" {
				return profile.ContactEmail, name
			}
		}
	case models.UserRoleTheater:
		if profile, err := s.profileRepo.FindTheaterProfileByUserID(db, user.ID); err == nil {
			name = profile.CompanyName
			if profile.ContactEmail != "" {
				return profile.ContactEmail, name
			}
		}
	}
	return user.Email, name
}

func (s *matchService) enqueueEmail(db *gorm.DB, msg *email.Email) error {
	return s.emailRepo.Enqueue(db, &models.EmailQueue{
		ToEmail:  msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
		Status:   models.EmailStatusQueued,
	})
}

func buildMatchList(matches []models.TheaterTalentMatch) *dto.MatchListResponse {
	items := make([]dto.MatchResponse, 0, len(matches))
	for i := range matches {
		items = append(items, dto.NewMatchResponse(&matches[i]))
	}
	return &dto.MatchListResponse{Matches: items, Total: len(items)}
}
