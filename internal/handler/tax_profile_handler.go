package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/internal/tax"
	"taxengine/pkg/pagination"
	"taxengine/pkg/response"
)

type TaxProfileHandler struct {
	profileService service.TaxProfileService
}

func NewTaxProfileHandler(profileService service.TaxProfileService) *TaxProfileHandler {
	return &TaxProfileHandler{profileService: profileService}
}

func (h *TaxProfileHandler) RegisterRoutes(router *gin.RouterGroup, secret []byte) {
	read := middleware.RequireRole(secret, middleware.RoleAdmin, middleware.RoleManager, middleware.RoleStaff, middleware.RoleService)
	write := middleware.RequireRole(secret, middleware.RoleAdmin, middleware.RoleManager)

	profiles := router.Group("/api/tax-profiles")
	{
		profiles.GET("", read, h.ListProfiles)
		profiles.GET("/effective", read, h.GetEffectiveProfile)
		profiles.GET("/:id", read, h.GetProfile)

		profiles.POST("", write, h.CreateProfile)
		profiles.PUT("/:id/global-default", write, h.SetGlobalDefault)
		profiles.DELETE("/:id", write, h.DeactivateProfile)

		profiles.POST("/:id/rates", write, h.AddTaxRate)
		profiles.PATCH("/:id/rates/:code", write, h.UpdateTaxRate)
		profiles.DELETE("/:id/rates/:code", write, h.RemoveTaxRate)

		profiles.POST("/:id/exemptions", write, h.AddTaxExemption)
		profiles.PATCH("/:id/exemptions/:code", write, h.UpdateTaxExemption)
		profiles.DELETE("/:id/exemptions/:code", write, h.RemoveTaxExemption)
	}
}

// ListProfiles returns tax profiles, newest first
// @Summary      List tax profiles
// @Tags         tax-profiles
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]tax.Profile}
// @Router       /api/tax-profiles [get]
func (h *TaxProfileHandler) ListProfiles(c *gin.Context) {
	p := pagination.Parse(c)

	profiles, total, err := h.profileService.ListProfiles(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, profiles, p, total))
}

// GetEffectiveProfile returns the profile a calculation for the company would use
// @Summary      Get the effective tax profile
// @Description  Company's active profile, or the global default when the company has none
// @Tags         tax-profiles
// @Security     BearerAuth
// @Produce      json
// @Param        company_id  query     string  false  "Company ID"
// @Success      200         {object}  response.Response{data=tax.Profile}
// @Failure      404         {object}  response.Response
// @Router       /api/tax-profiles/effective [get]
func (h *TaxProfileHandler) GetEffectiveProfile(c *gin.Context) {
	var companyID *uuid.UUID
	if raw := c.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid company ID"))
			return
		}
		companyID = &id
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// GetProfile returns a single tax profile
// @Summary      Get tax profile
// @Tags         tax-profiles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Tax profile ID"
// @Success      200  {object}  response.Response{data=tax.Profile}
// @Failure      404  {object}  response.Response
// @Router       /api/tax-profiles/{id} [get]
func (h *TaxProfileHandler) GetProfile(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// CreateProfile creates a tax profile for a company, or a company-less profile
// @Summary      Create tax profile
// @Tags         tax-profiles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateTaxProfileRequest  true  "Tax profile"
// @Success      201      {object}  response.Response{data=tax.Profile}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/tax-profiles [post]
func (h *TaxProfileHandler) CreateProfile(c *gin.Context) {
	var req service.CreateTaxProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), req, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, profile))
}

// SetGlobalDefault makes the profile the global default, demoting the previous one
// @Summary      Set global default tax profile
// @Tags         tax-profiles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Tax profile ID"
// @Success      200  {object}  response.Response{data=tax.Profile}
// @Router       /api/tax-profiles/{id}/global-default [put]
func (h *TaxProfileHandler) SetGlobalDefault(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.SetGlobalDefault(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// DeactivateProfile soft deletes a tax profile
// @Summary      Deactivate tax profile
// @Tags         tax-profiles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Tax profile ID"
// @Success      200  {object}  response.Response{data=tax.Profile}
// @Router       /api/tax-profiles/{id} [delete]
func (h *TaxProfileHandler) DeactivateProfile(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.DeactivateProfile(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// AddTaxRate appends a rate to the profile
// @Summary      Add tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string       true  "Tax profile ID"
// @Param        request  body      tax.TaxRate  true  "Tax rate"
// @Success      201      {object}  response.Response{data=tax.Profile}
// @Failure      409      {object}  response.Response
// @Router       /api/tax-profiles/{id}/rates [post]
func (h *TaxProfileHandler) AddTaxRate(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var rate tax.TaxRate
	if err := c.ShouldBindJSON(&rate); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.AddTaxRate(c.Request.Context(), id, rate, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, profile))
}

// UpdateTaxRate patches the rate with the given code
// @Summary      Update tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Tax profile ID"
// @Param        code     path      string            true  "Tax rate code"
// @Param        request  body      tax.TaxRatePatch  true  "Fields to change"
// @Success      200      {object}  response.Response{data=tax.Profile}
// @Failure      404      {object}  response.Response
// @Router       /api/tax-profiles/{id}/rates/{code} [patch]
func (h *TaxProfileHandler) UpdateTaxRate(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var patch tax.TaxRatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.UpdateTaxRate(c.Request.Context(), id, c.Param("code"), patch, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// RemoveTaxRate deletes the rate with the given code
// @Summary      Remove tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true  "Tax profile ID"
// @Param        code  path      string  true  "Tax rate code"
// @Success      200   {object}  response.Response{data=tax.Profile}
// @Router       /api/tax-profiles/{id}/rates/{code} [delete]
func (h *TaxProfileHandler) RemoveTaxRate(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.RemoveTaxRate(c.Request.Context(), id, c.Param("code"), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// AddTaxExemption appends an exemption to the profile
// @Summary      Add tax exemption
// @Tags         tax-exemptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Tax profile ID"
// @Param        request  body      tax.TaxExemption  true  "Tax exemption"
// @Success      201      {object}  response.Response{data=tax.Profile}
// @Router       /api/tax-profiles/{id}/exemptions [post]
func (h *TaxProfileHandler) AddTaxExemption(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var exemption tax.TaxExemption
	if err := c.ShouldBindJSON(&exemption); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.AddTaxExemption(c.Request.Context(), id, exemption, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, profile))
}

// UpdateTaxExemption patches the exemption with the given code
// @Summary      Update tax exemption
// @Tags         tax-exemptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Tax profile ID"
// @Param        code     path      string                 true  "Tax exemption code"
// @Param        request  body      tax.TaxExemptionPatch  true  "Fields to change"
// @Success      200      {object}  response.Response{data=tax.Profile}
// @Router       /api/tax-profiles/{id}/exemptions/{code} [patch]
func (h *TaxProfileHandler) UpdateTaxExemption(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var patch tax.TaxExemptionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.UpdateTaxExemption(c.Request.Context(), id, c.Param("code"), patch, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// RemoveTaxExemption deletes the exemption with the given code
// @Summary      Remove tax exemption
// @Tags         tax-exemptions
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true  "Tax profile ID"
// @Param        code  path      string  true  "Tax exemption code"
// @Success      200   {object}  response.Response{data=tax.Profile}
// @Router       /api/tax-profiles/{id}/exemptions/{code} [delete]
func (h *TaxProfileHandler) RemoveTaxExemption(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.RemoveTaxExemption(c.Request.Context(), id, c.Param("code"), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}
