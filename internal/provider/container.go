package provider

import (
	"time"

	"github.com/meiye-next/internal/authz"
	"github.com/meiye-next/internal/cache"
	"github.com/meiye-next/internal/config"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/payment/wechatpay"
	"github.com/meiye-next/internal/queue"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo       repository.AdminRepository
	MemberRepo      repository.MemberRepository
	LevelRepo       repository.MemberLevelRepository
	ProductRepo     repository.ProductRepository
	CategoryRepo    repository.ProductCategoryRepository
	ServiceItemRepo repository.ServiceItemRepository
	StaffRepo       repository.StaffRepository
	StockLogRepo    repository.StockLogRepository
	ConsumeRepo     repository.ConsumeRepository
	RechargeRepo    repository.RechargeRepository
	PackageRepo     repository.RechargePackageRepository
	AppointmentRepo repository.AppointmentRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	CaptchaService     *service.CaptchaService
	MemberService      *service.MemberService
	LevelService       *service.LevelService
	ProductService     *service.ProductService
	ServiceItemService *service.ServiceItemService
	StaffService       *service.StaffService
	StockService       *service.StockService
	ConsumeService     *service.ConsumeService
	RechargeService    *service.RechargeService
	PackageService     *service.PackageService
	AppointmentService *service.AppointmentService
	DashboardService   *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.MemberRepo = repository.NewMemberRepository(db)
	c.LevelRepo = repository.NewMemberLevelRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewProductCategoryRepository(db)
	c.ServiceItemRepo = repository.NewServiceItemRepository(db)
	c.StaffRepo = repository.NewStaffRepository(db)
	c.StockLogRepo = repository.NewStockLogRepository(db)
	c.ConsumeRepo = repository.NewConsumeRepository(db)
	c.RechargeRepo = repository.NewRechargeRepository(db)
	c.PackageRepo = repository.NewRechargePackageRepository(db)
	c.AppointmentRepo = repository.NewAppointmentRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.MemberService = service.NewMemberService(c.MemberRepo, c.LevelRepo)
	c.LevelService = service.NewLevelService(c.LevelRepo, c.MemberRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.ServiceItemService = service.NewServiceItemService(c.ServiceItemRepo)
	c.StaffService = service.NewStaffService(c.StaffRepo)
	c.PackageService = service.NewPackageService(c.PackageRepo)

	c.StockService = service.NewStockService(c.ProductRepo, c.StockLogRepo, c.buildLowStockNotifier())
	c.ConsumeService = service.NewConsumeService(
		c.MemberRepo,
		c.LevelRepo,
		c.ProductRepo,
		c.ServiceItemRepo,
		c.ConsumeRepo,
		c.StockLogRepo,
	)
	c.RechargeService = service.NewRechargeService(
		c.MemberRepo,
		c.LevelRepo,
		c.RechargeRepo,
		c.PackageRepo,
		c.buildQRCollector(),
	)
	c.AppointmentService = service.NewAppointmentService(
		c.AppointmentRepo,
		c.MemberRepo,
		c.ServiceItemRepo,
		c.StaffRepo,
		c.buildAppointmentReminder(),
	)
	c.DashboardService = service.NewDashboardService(
		c.MemberRepo,
		c.ConsumeRepo,
		c.RechargeRepo,
		c.ProductRepo,
		c.AppointmentRepo,
	)
}

// buildQRCollector 构造扫码收款网关，未启用或初始化失败时返回 nil
func (c *Container) buildQRCollector() service.QRCollector {
	if !c.Config.WechatPay.Enabled {
		return nil
	}
	client, err := wechatpay.NewClient(c.Config.WechatPay)
	if err != nil {
		logger.Warnw("provider_init_wechatpay_failed", "error", err)
		return nil
	}
	return client
}

func (c *Container) buildAppointmentReminder() service.AppointmentReminder {
	if c.QueueClient == nil || !c.QueueClient.Enabled() {
		return nil
	}
	return &queueAppointmentReminder{
		client:      c.QueueClient,
		leadMinutes: c.Config.Appointment.ReminderLeadMinutes,
	}
}

func (c *Container) buildLowStockNotifier() service.LowStockNotifier {
	if c.QueueClient == nil || !c.QueueClient.Enabled() {
		return nil
	}
	return &queueLowStockNotifier{client: c.QueueClient}
}

// queueAppointmentReminder 把预约提醒投递到队列，提前量由配置决定
type queueAppointmentReminder struct {
	client      *queue.Client
	leadMinutes int
}

func (r *queueAppointmentReminder) ScheduleReminder(appointmentID uint, startAt time.Time) error {
	lead := time.Duration(r.leadMinutes) * time.Minute
	if lead <= 0 {
		lead = 30 * time.Minute
	}
	delay := time.Until(startAt.Add(-lead))
	return r.client.EnqueueAppointmentReminder(queue.AppointmentReminderPayload{AppointmentID: appointmentID}, delay)
}

// queueLowStockNotifier 把低库存预警投递到队列
type queueLowStockNotifier struct {
	client *queue.Client
}

func (n *queueLowStockNotifier) NotifyLowStock(productID uint) error {
	return n.client.EnqueueLowStockAlert(queue.LowStockAlertPayload{ProductID: productID})
}
