package handlers

import (
	"net/http"

	"stagematch_backend/internal/middleware"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/services"
	"stagematch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:userId/suspend", h.SuspendUser)
		admin.PUT("/users/:userId/reactivate", h.ReactivateUser)
		admin.PUT("/productions/:id/status", h.ForceProductionStatus)
		admin.GET("/audit", h.GetAuditLog)
		admin.GET("/audit/:entityType/:entityId", h.GetEntityAuditLog)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ListUsersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.adminService.ListUsers(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SuspendUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.adminService.SuspendUser(h.GetDB(c), adminID, c.Param("userId"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User suspended"})
}

func (h *AdminHandler) ReactivateUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SuspendUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.adminService.ReactivateUser(h.GetDB(c), adminID, c.Param("userId"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User reactivated"})
}

func (h *AdminHandler) ForceProductionStatus(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ForceProductionStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.adminService.ForceProductionStatus(h.GetDB(c), adminID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Production status updated"})
}

func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	response, err := h.adminService.GetAuditLog(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) GetEntityAuditLog(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	response, err := h.adminService.GetEntityAuditLog(h.GetDB(c), c.Param("entityType"), c.Param("entityId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": response})
}
