package handlers

import (
	"net/http"

	"stagematch_backend/internal/middleware"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/services"
	"stagematch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	matching.Use(middleware.AuthMiddleware())
	{
		// Подбор талантов доступен только театрам
		theater := matching.Group("")
		theater.Use(middleware.RoleMiddleware(models.UserRoleTheater))
		{
			theater.GET("/talent", h.FindTalentForRole)
		}

		// Лента ролей доступна только талантам
		talent := matching.Group("")
		talent.Use(middleware.RoleMiddleware(models.UserRoleTalent))
		{
			talent.GET("/roles", h.FindRolesForTalent)
		}
	}
}

func (h *MatchingHandler) FindTalentForRole(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.FindTalentRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.matchingService.FindTalentForRole(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MatchingHandler) FindRolesForTalent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.matchingService.FindRolesForTalent(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
