package cmd

import (
	"context"

	deliveryhttp "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/mailer"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/accountrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	redisadapter "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/go-faster/errors"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and jobs.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      kernel.Clock
	uowFactory RetryingUoWFactory
	outbox     *outboxrepo.GormOutboxRepository
	limiter    ports.AttemptLimiter
}

// NewCompositionRoot creates the root. The redis client backs the delivery code attempt limiter.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) (*CompositionRoot, error) {
	clock := kernel.SystemClock{}
	gormFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	limiter, err := redisadapter.NewAttemptLimiter(redisClient, cfg.OTPAttemptLimit, cfg.OTPAttemptWindow)
	if err != nil {
		return nil, errors.Wrap(err, "create attempt limiter")
	}

	return &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		logger: logger,
		clock:  clock,
		uowFactory: RetryingUoWFactory{
			FuncUoWFactory: func() commands.UoW {
				return gormFactory.Create()
			},
			TransientErrorClassifier: gormFactory,
		},
		outbox:  outboxrepo.NewGormOutboxRepository(gormDB, clock),
		limiter: limiter,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.outbox, c.clock, kernel.NewRandomOTP, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uowFactory, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	policy := services.NewCancellationPolicy(c.cfg.CancellationWindow)
	return commands.NewCancelOrderCommandHandler(c.uowFactory, policy, c.outbox, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.uowFactory, c.outbox, c.clock, c.logger)
}

func (c *CompositionRoot) CreateVerifyDeliveryCommandHandler() commands.VerifyDeliveryCommandHandler {
	return commands.NewVerifyDeliveryCommandHandler(c.uowFactory, c.limiter, c.outbox, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableAgentsQueryHandler() queries.ListAvailableAgentsQueryHandler {
	return queries.NewListAvailableAgentsQueryHandler(c.gormDB)
}

// CreateEcho builds the HTTP server with all routes.
func (c *CompositionRoot) CreateEcho() (*echo.Echo, error) {
	auth, err := deliveryhttp.NewAuthenticator(c.cfg.JWTSecret, accountrepo.NewGormAccountRepository(c.gormDB))
	if err != nil {
		return nil, err
	}

	server := deliveryhttp.NewServer(deliveryhttp.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrder:         c.CreateUpdateOrderCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		AssignAgent:         c.CreateAssignAgentCommandHandler(),
		VerifyDelivery:      c.CreateVerifyDeliveryCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListCustomerOrders:  c.CreateListCustomerOrdersQueryHandler(),
		ListAvailableAgents: c.CreateListAvailableAgentsQueryHandler(),
	})
	return deliveryhttp.NewEcho(server, auth, c.logger), nil
}

// CreateJobManager builds the background jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sender, err := mailer.NewRelayClient(mailer.Config{
		BaseURL: c.cfg.MailRelayURL,
		Sender:  c.cfg.MailSender,
		Timeout: c.cfg.MailRelayTimeout,
	}, c.logger)
	if err != nil {
		return nil, errors.Wrap(err, "create mail relay client")
	}

	cmd, err := commands.NewDispatchNotificationsCommand(c.cfg.DispatchBatchSize, c.cfg.DispatchMaxAttempts)
	if err != nil {
		return nil, err
	}
	handler := commands.NewDispatchNotificationsCommandHandler(c.outbox, sender, c.clock, c.logger)

	job, err := jobs.NewNotificationDispatchJob(handler, cmd, c.cfg.DispatchSchedule, c.logger)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(job), nil
}

// Migrate creates or updates the schema.
func (c *CompositionRoot) Migrate(ctx context.Context) error {
	return postgres.Migrate(c.gormDB.WithContext(ctx))
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// RetryingUoWFactory is a FuncUoWFactory whose transient store failures are retried
// at the transaction boundary by the command handlers.
type RetryingUoWFactory struct {
	FuncUoWFactory
	ports.TransientErrorClassifier
}
