package handlers

import (
	"net/http"

	"stagematch_backend/internal/middleware"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/services"
	"stagematch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProductionHandler struct {
	*BaseHandler
	productionService services.ProductionService
}

func NewProductionHandler(base *BaseHandler, productionService services.ProductionService) *ProductionHandler {
	return &ProductionHandler{
		BaseHandler:       base,
		productionService: productionService,
	}
}

func (h *ProductionHandler) RegisterRoutes(r *gin.RouterGroup) {
	productions := r.Group("/productions")
	productions.Use(middleware.AuthMiddleware())
	{
		productions.GET("", h.ListActive)
		productions.GET("/:id", h.Get)
		productions.GET("/mine", h.ListMine)

		theater := productions.Group("")
		theater.Use(middleware.RoleMiddleware(models.UserRoleTheater))
		{
			theater.POST("", h.Create)
			theater.PUT("/:id", h.Update)
			theater.PUT("/:id/status", h.UpdateStatus)
			theater.DELETE("/:id", h.Delete)
		}
	}
}

func (h *ProductionHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProductionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.productionService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ProductionHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.productionService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProductionHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductionStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.productionService.UpdateStatus(h.GetDB(c), userID, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProductionHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	response, err := h.productionService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProductionHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.productionService.ListByTheater(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productions": response})
}

func (h *ProductionHandler) ListActive(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	response, err := h.productionService.ListActive(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProductionHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.productionService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Production deleted"})
}
