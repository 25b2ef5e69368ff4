package provider

import (
	"fmt"

	"github.com/tokogitar/tokogitar/internal/authz"
	"github.com/tokogitar/tokogitar/internal/cache"
	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"
	"github.com/tokogitar/tokogitar/internal/service"
)

// Container holds every shared dependency of the application. Handlers
// embed it instead of wiring each other up.
type Container struct {
	Config *config.Config

	QueueClient *queue.Client

	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	PaymentRepo       repository.PaymentRepository
	ShipmentRepo      repository.ShipmentRepository
	PasswordResetRepo repository.PasswordResetRepository
	ReportRepo        repository.ReportRepository

	AuthzService *authz.Service

	AuthService      *service.AuthService
	ResetService     *service.ResetService
	EmailService     *service.EmailService
	UploadService    *service.UploadService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	CartService      *service.CartService
	ShippingService  *service.ShippingService
	OrderService     *service.OrderService
	PaymentService   *service.PaymentService
	ShipmentService  *service.ShipmentService
	UserAdminService *service.UserAdminService
	ReportService    *service.ReportService
}

// NewContainer builds the dependency graph. The database must already
// be initialized.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if cfg.Redis.Enabled {
		if err := cache.InitRedis(&cfg.Redis); err != nil {
			// Rate limiting degrades to open, everything else works.
			logger.Warnw("redis_init_failed", "error", err)
		}
	}

	if cfg.Queue.Enabled {
		client, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			return nil, fmt.Errorf("init queue client: %w", err)
		}
		c.QueueClient = client
	}

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.ShipmentRepo = repository.NewShipmentRepository(db)
	c.PasswordResetRepo = repository.NewPasswordResetRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() error {
	cfg := c.Config

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles: %w", err)
	}
	c.AuthzService = authzService

	c.EmailService = service.NewEmailService(&cfg.Email)
	c.UploadService = service.NewUploadService(cfg)

	c.AuthService = service.NewAuthService(cfg, c.UserRepo)
	c.ResetService = service.NewResetService(cfg, c.UserRepo, c.PasswordResetRepo, c.QueueClient, c.EmailService)

	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.ShippingService = service.NewShippingService(cfg, c.CartService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.ShipmentRepo, c.CartService, c.QueueClient)
	c.PaymentService = service.NewPaymentService(cfg, c.OrderRepo, c.PaymentRepo, c.UserRepo, c.QueueClient)
	c.ShipmentService = service.NewShipmentService(cfg, c.OrderRepo, c.ShipmentRepo, c.QueueClient)
	c.UserAdminService = service.NewUserAdminService(cfg, c.UserRepo)
	c.ReportService = service.NewReportService(c.ReportRepo)

	return nil
}

// Close releases container-held connections.
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("queue_client_close_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("redis_close_failed", "error", err)
	}
}
