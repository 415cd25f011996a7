package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/pagination"
	"taxengine/pkg/response"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, secret []byte) {
	group := router.Group("/api/tax-profiles")
	group.Use(middleware.RequireRole(secret, middleware.RoleAdmin, middleware.RoleManager)) // Protect history logs
	{
		group.GET("/:id/audit-logs", h.GetAuditLogs)
	}
}

// GetAuditLogs returns the change history of a tax profile, newest first
// @Summary      Get tax profile audit logs
// @Description  Who changed which rate or exemption of the profile, and the resulting version
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Tax profile ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/tax-profiles/{id}/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)

	logs, total, err := h.auditService.GetProfileAuditLogs(c.Request.Context(), id, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, p, total))
}
