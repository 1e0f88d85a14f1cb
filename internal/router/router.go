package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meiye-next/internal/authz"
	"github.com/meiye-next/internal/cache"
	"github.com/meiye-next/internal/config"
	adminhandlers "github.com/meiye-next/internal/http/handlers/admin"
	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "my"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁，请 %d 秒后重试",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 登录前接口（无需鉴权）
			admin.GET("/captcha/image", adminHandler.GetImageCaptcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 经营概览
				authorized.GET("/dashboard", adminHandler.GetDashboardSummary)

				// 当前操作员
				authorized.GET("/profile", adminHandler.GetProfile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 操作员管理
				authorized.GET("/operators", adminHandler.ListOperators)
				authorized.POST("/operators", adminHandler.CreateOperator)
				authorized.GET("/operators/:id", adminHandler.GetOperator)
				authorized.PUT("/operators/:id/roles", adminHandler.SetOperatorRoles)
				authorized.POST("/operators/:id/revoke-tokens", adminHandler.RevokeOperatorTokens)
				authorized.GET("/authz/permissions", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 会员档案
				authorized.POST("/members", adminHandler.CreateMember)
				authorized.GET("/members", adminHandler.GetMembers)
				authorized.GET("/members/:id", adminHandler.GetMember)
				authorized.PUT("/members/:id", adminHandler.UpdateMember)
				authorized.DELETE("/members/:id", adminHandler.DeleteMember)
				authorized.POST("/members/:id/freeze", adminHandler.FreezeMember)
				authorized.POST("/members/:id/unfreeze", adminHandler.UnfreezeMember)

				// 会员等级
				authorized.GET("/levels", adminHandler.GetLevels)
				authorized.POST("/levels", adminHandler.CreateLevel)
				authorized.PUT("/levels/:id", adminHandler.UpdateLevel)
				authorized.DELETE("/levels/:id", adminHandler.DeleteLevel)

				// 产品与分类
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 服务项目
				authorized.GET("/services", adminHandler.GetServiceItems)
				authorized.GET("/services/:id", adminHandler.GetServiceItem)
				authorized.POST("/services", adminHandler.CreateServiceItem)
				authorized.PUT("/services/:id", adminHandler.UpdateServiceItem)
				authorized.DELETE("/services/:id", adminHandler.DeleteServiceItem)

				// 员工
				authorized.GET("/staff", adminHandler.GetStaffList)
				authorized.GET("/staff/:id", adminHandler.GetStaff)
				authorized.POST("/staff", adminHandler.CreateStaff)
				authorized.PUT("/staff/:id", adminHandler.UpdateStaff)
				authorized.DELETE("/staff/:id", adminHandler.DeleteStaff)

				// 充值套餐
				authorized.GET("/packages", adminHandler.GetPackages)
				authorized.GET("/packages/:id", adminHandler.GetPackage)
				authorized.POST("/packages", adminHandler.CreatePackage)
				authorized.PUT("/packages/:id", adminHandler.UpdatePackage)
				authorized.DELETE("/packages/:id", adminHandler.DeletePackage)

				// 消费与充值
				authorized.POST("/consumes", adminHandler.CreateConsume)
				authorized.GET("/consumes", adminHandler.GetConsumes)
				authorized.GET("/consumes/:id", adminHandler.GetConsume)
				authorized.POST("/recharges", adminHandler.CreateRecharge)
				authorized.GET("/recharges", adminHandler.GetRecharges)
				authorized.GET("/recharges/:id", adminHandler.GetRecharge)

				// 库存
				authorized.POST("/stock/adjust", adminHandler.AdjustStock)
				authorized.GET("/stock/logs", adminHandler.GetStockLogs)
				authorized.GET("/stock/low", adminHandler.GetLowStockProducts)

				// 预约
				authorized.POST("/appointments", adminHandler.CreateAppointment)
				authorized.GET("/appointments", adminHandler.GetAppointments)
				authorized.GET("/appointments/:id", adminHandler.GetAppointment)
				authorized.PUT("/appointments/:id", adminHandler.UpdateAppointment)
				authorized.POST("/appointments/:id/confirm", adminHandler.ConfirmAppointment)
				authorized.POST("/appointments/:id/complete", adminHandler.CompleteAppointment)
				authorized.POST("/appointments/:id/cancel", adminHandler.CancelAppointment)
				authorized.POST("/appointments/:id/no-show", adminHandler.MarkAppointmentNoShow)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" || item.Path == "/api/v1/admin/captcha/image" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
