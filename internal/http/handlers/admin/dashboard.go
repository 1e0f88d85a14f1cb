package admin

import (
	"time"

	"github.com/meiye-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardSummary 获取当日经营概览
func (h *Handler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.DashboardService.Summary(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "查询经营概览失败", err)
		return
	}
	response.Success(c, summary)
}
