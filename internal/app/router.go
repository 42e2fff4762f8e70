package app

import (
	"net/http"
	"time"

	"soccerspot/internal/config"
	"soccerspot/internal/middleware"
	"soccerspot/internal/modules/booking"
	"soccerspot/internal/modules/catalog"
	"soccerspot/internal/modules/payment"
	"soccerspot/internal/modules/promotion"
	"soccerspot/internal/pkg/cinetpay"
	"soccerspot/internal/pkg/jwt"
	"soccerspot/internal/pkg/metrics"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the router is built from. Gateway may be nil,
// which disables online payment.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *zap.Logger
	Gateway payment.Gateway
	Now     func() time.Time
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	conv, err := pricing.NewConverter(cfg.Pricing)
	if err != nil {
		return nil, err
	}
	calc := pricing.NewImpactCalculator(conv)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	fieldRepo := repository.NewFieldRepository(d.DB)
	promotionRepo := repository.NewPromotionRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	paymentRepo := repository.NewPaymentRepository(d.DB)

	jwtService := jwt.New(cfg.JWTSecret, 24*time.Hour)

	catalogService := catalog.NewService(fieldRepo, conv, log.Named("catalog"))
	catalogHandler := catalog.NewHandler(catalogService)

	promotionService := promotion.NewService(promotionRepo, fieldRepo, calc, log.Named("promotion"))
	promotionHandler := promotion.NewHandler(promotionService)

	bookingOpts := []booking.Option{booking.WithLocation(loc)}
	if d.Now != nil {
		bookingOpts = append(bookingOpts, booking.WithClock(d.Now))
	}
	bookingService := booking.NewService(bookingRepo, catalogService, promotionService, conv, log.Named("booking"), bookingOpts...)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, d.Gateway, cfg.CinetPay.Currency, log.Named("payment"))
	paymentHandler := payment.NewHandler(paymentService, log.Named("payment"))

	ownership := middleware.NewOwnershipChecker(fieldRepo)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log.Named("http")),
		middleware.ErrorLogger(log.Named("http")),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(limiter.Middleware())
		{
			catalogHandler.RegisterPublicRoutes(public)
			promotionHandler.RegisterPublicRoutes(public)
			bookingHandler.RegisterPublicRoutes(public)
			paymentHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
		}

		owner := v1.Group("/owner")
		owner.Use(middleware.JWTAuth(jwtService), middleware.OwnerOnly())
		{
			promotionHandler.RegisterOwnerRoutes(owner)

			fields := owner.Group("")
			fields.Use(ownership.CheckFieldOwnership())
			catalogHandler.RegisterOwnerRoutes(fields)
		}
	}

	return r, nil
}

// NewGateway returns the CinetPay client, or nil when no credentials are set.
func NewGateway(cfg config.CinetPayConfig) payment.Gateway {
	client := cinetpay.New(cinetpay.Config{
		APIKey:    cfg.APIKey,
		SiteID:    cfg.SiteID,
		BaseURL:   cfg.BaseURL,
		NotifyURL: cfg.NotifyURL,
		ReturnURL: cfg.ReturnURL,
		Timeout:   cfg.Timeout,
	})
	if !client.Configured() {
		return nil
	}
	return client
}
