package handlers

import (
	"net/http"

	"stagematch_backend/internal/middleware"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services"
	"stagematch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.PUT("/talent", h.UpsertTalentProfile)
		profiles.GET("/talent/:userId", h.GetTalentProfile)
		profiles.GET("/talent", h.SearchTalentProfiles)
		profiles.POST("/talent/photo", h.UploadTalentPhoto)

		profiles.PUT("/theater", h.UpsertTheaterProfile)
		profiles.GET("/theater/:userId", h.GetTheaterProfile)
	}
}

func (h *ProfileHandler) UpsertTalentProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertTalentProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.UpsertTalentProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UploadTalentPhoto принимает multipart поле "photo" и отдает анкету
// с обновленными URL рендеров
func (h *ProfileHandler) UploadTalentPhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart field 'photo' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	response, err := h.profileService.UploadTalentPhoto(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) GetTalentProfile(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.profileService.GetTalentProfile(h.GetDB(c), viewerID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) SearchTalentProfiles(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var criteria repositories.TalentSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	response, err := h.profileService.SearchTalentProfiles(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) UpsertTheaterProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertTheaterProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.UpsertTheaterProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) GetTheaterProfile(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	response, err := h.profileService.GetTheaterProfile(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
