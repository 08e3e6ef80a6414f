package appcontext

import (
	"context"
	"os"
	"strings"

	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/event"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type ApplicationContext struct {
	Cf          *config.Config
	Logger      *zerolog.Logger
	DbDao       *db.DbDao
	RedisClient *redis.Client

	CartRepo    redis_repo.ICartRepo
	ProductRepo db.IProductRepo
	TicketRepo  db.ITicketRepo
	UserRepo    db.IUserRepo

	TicketProducer event.TicketProducer

	CartService     service.ICartService
	PurchaseService service.IPurchaseService
	ProductService  service.IProductService
	UserService     service.IUserService
	MailService     service.IMailService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("moduler", app.Cf.ModulerName).
		Logger()
	app.Logger = &logger

	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbDao = db.NewDbDao(conn)
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}

	app.RedisClient, err = redis_repo.GetRedisClient(app.Cf.RedisAddr, redis_repo.WithPassword(app.Cf.RedisPas))
	if err != nil {
		return err
	}

	app.CartRepo = redis_repo.NewCartRepo(app.RedisClient)
	app.ProductRepo = db.NewProductRepo(app.DbDao)
	app.TicketRepo = db.NewTicketRepo(app.DbDao)
	app.UserRepo = db.NewUserRepo(app.DbDao)

	// kafka 為選配, 沒設定 brokers 就不發事件
	if app.Cf.KafkaBrokers != "" {
		app.TicketProducer = event.NewTicketProducer(strings.Split(app.Cf.KafkaBrokers, ","), app.Cf.KafkaTopic)
	}

	app.MailService = service.NewMailService(app.Cf.SmtpSenderName, app.Cf.EmailAccount, app.Cf.SmtpAuthKey)
	app.CartService = service.NewCartService(app.CartRepo, app.ProductRepo)
	app.PurchaseService = service.NewPurchaseService(
		app.CartRepo,
		app.ProductRepo,
		app.TicketRepo,
		app.MailService,
		app.TicketProducer,
		app.Logger,
	)
	app.ProductService = service.NewProductService(app.ProductRepo)
	app.UserService = service.NewUserService(app.UserRepo)

	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.TicketProducer != nil {
		if err := app.TicketProducer.Close(); err != nil {
			return err
		}
	}
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			return err
		}
	}
	if app.DbDao != nil {
		sqlDB, err := app.DbDao.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
