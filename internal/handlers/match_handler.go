package handlers

import (
	"net/http"

	"stagematch_backend/internal/middleware"
	"stagematch_backend/internal/services"
	"stagematch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	*BaseHandler
	matchService services.MatchService
}

func NewMatchHandler(base *BaseHandler, matchService services.MatchService) *MatchHandler {
	return &MatchHandler{
		BaseHandler:  base,
		matchService: matchService,
	}
}

func (h *MatchHandler) RegisterRoutes(r *gin.RouterGroup) {
	matches := r.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	{
		matches.POST("/interest", h.ExpressInterest)
		matches.POST("/decline", h.Decline)
		matches.GET("", h.ListMine)
		matches.GET("/production/:id", h.ListForProduction)
	}
}

func (h *MatchHandler) ExpressInterest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ExpressInterestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.matchService.ExpressInterest(h.GetDB(c), userID, middleware.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MatchHandler) Decline(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ExpressInterestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.matchService.Decline(h.GetDB(c), userID, middleware.GetUserRole(c), req.ProductionID, req.RoleID, req.TalentUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MatchHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.matchService.ListForUser(h.GetDB(c), userID, middleware.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MatchHandler) ListForProduction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.matchService.ListForProduction(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
