package handlers

import "stagematch_backend/internal/ws"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	ProductionHandler   *ProductionHandler
	MatchingHandler     *MatchingHandler
	MatchHandler        *MatchHandler
	ChatHandler         *ChatHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
	WSHandler           *ws.Handler
}
