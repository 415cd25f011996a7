package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"
)

type TaxCalculationHandler struct {
	calculationService service.TaxCalculationService
}

func NewTaxCalculationHandler(calculationService service.TaxCalculationService) *TaxCalculationHandler {
	return &TaxCalculationHandler{calculationService: calculationService}
}

func (h *TaxCalculationHandler) RegisterRoutes(router *gin.RouterGroup, secret []byte) {
	group := router.Group("/api/tax")
	group.Use(middleware.RequireRole(secret, middleware.RoleAdmin, middleware.RoleManager, middleware.RoleStaff, middleware.RoleService))
	{
		group.POST("/calculate", h.Calculate)
	}
}

// Calculate computes the tax owed on an amount
// @Summary      Calculate tax
// @Description  Resolves the applicable rates of the company's profile (or the global default) and returns the itemized tax
// @Tags         tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CalculateTaxRequest  true  "Calculation input"
// @Success      200      {object}  response.Response{data=service.CalculateTaxResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tax/calculate [post]
func (h *TaxCalculationHandler) Calculate(c *gin.Context) {
	var req service.CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.calculationService.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
