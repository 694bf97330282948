// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trip-planner-go/internal/middleware"
	"trip-planner-go/internal/model"
	"trip-planner-go/internal/service"
	"trip-planner-go/pkg/errs"
	"trip-planner-go/pkg/log"
)

// maxHistoryLimit 是历史列表单次返回的上限，超出时截断。
const maxHistoryLimit = 100

// TripHandler 处理与行程规划相关的 API 请求。
type TripHandler struct {
	service service.PlannerService
}

// NewTripHandler 创建一个新的 TripHandler。
func NewTripHandler(service service.PlannerService) *TripHandler {
	return &TripHandler{service: service}
}

// RegisterRoutes 把行程相关路由挂到 group 上。
func (h *TripHandler) RegisterRoutes(group *gin.RouterGroup) {
	trips := group.Group("/trips")
	{
		trips.POST("/individual", h.PlanIndividual)
		trips.POST("/group", h.PlanGroup)
		trips.GET("", h.RecentTrips)
		trips.GET("/:id/members", h.TripMembers)
	}
	group.GET("/moods", h.Moods)
}

// PlanIndividual 处理个人行程规划请求。
func (h *TripHandler) PlanIndividual(c *gin.Context) {
	var req service.IndividualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求参数: " + err.Error(), "data": nil})
		return
	}

	res, err := h.service.PlanIndividual(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "plan individual trip", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": res})
}

// PlanGroup 处理团体行程规划请求。
func (h *TripHandler) PlanGroup(c *gin.Context) {
	var req service.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求参数: " + err.Error(), "data": nil})
		return
	}

	res, err := h.service.PlanGroup(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "plan group trip", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": res})
}

// RecentTrips 返回最近的行程列表，limit 参数可选。
func (h *TripHandler) RecentTrips(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "Invalid limit", "data": nil})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	trips, err := h.service.RecentTrips(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, "fetch recent trips", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": trips})
}

// TripMembers 返回某个行程的成员列表。
func (h *TripHandler) TripMembers(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "Invalid trip ID format", "data": nil})
		return
	}

	members, err := h.service.TripMembers(c.Request.Context(), uint(id))
	if err != nil {
		h.fail(c, "fetch trip members", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": members})
}

// Moods 返回可选的性格标签。
func (h *TripHandler) Moods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": model.Moods})
}

// fail 把服务层错误映射为 HTTP 状态码并记录日志。
func (h *TripHandler) fail(c *gin.Context, op string, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("[TripHandler] %s failed, requestID: %s, error: %v", op, c.GetString(middleware.RequestIDKey), err)
	} else {
		log.Warnw("[TripHandler] request rejected", "op", op, "requestID", c.GetString(middleware.RequestIDKey), "error", err)
	}
	c.JSON(status, gin.H{"code": status, "message": message, "data": nil})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errs.IsConfiguration(err):
		return http.StatusInternalServerError, "服务未配置模型凭证"
	case errs.IsTimeout(err):
		return http.StatusGatewayTimeout, "模型服务响应超时"
	case errs.IsRemote(err):
		return http.StatusBadGateway, "模型服务调用失败"
	case errs.IsStorage(err):
		return http.StatusInternalServerError, "保存行程失败"
	default:
		return http.StatusInternalServerError, "内部错误"
	}
}
