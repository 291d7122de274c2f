package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"home-ledger/internal/ledger"
	"home-ledger/internal/service"
)

// TokenIssuer signs session tokens at login.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// Options carries the collaborators of the HTTP layer.
type Options struct {
	Guard          *ledger.Guard
	Tokens         TokenIssuer
	Users          service.UserService
	Milk           service.MilkService
	Expenses       service.ExpenseService
	Stocks         service.StockService
	Logger         *logrus.Logger
	AllowOrigins   []string
	AvatarURLTTL   time.Duration
	MaxAvatarBytes int64
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	guard          *ledger.Guard
	tokens         TokenIssuer
	users          service.UserService
	milk           service.MilkService
	expenses       service.ExpenseService
	stocks         service.StockService
	logger         *logrus.Logger
	allowOrigins   []string
	avatarURLTTL   time.Duration
	maxAvatarBytes int64
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.AvatarURLTTL <= 0 {
		opts.AvatarURLTTL = 15 * time.Minute
	}
	if opts.MaxAvatarBytes <= 0 {
		opts.MaxAvatarBytes = 5 << 20
	}
	return &Handler{
		guard:          opts.Guard,
		tokens:         opts.Tokens,
		users:          opts.Users,
		milk:           opts.Milk,
		expenses:       opts.Expenses,
		stocks:         opts.Stocks,
		logger:         logger,
		allowOrigins:   opts.AllowOrigins,
		avatarURLTTL:   opts.AvatarURLTTL,
		maxAvatarBytes: opts.MaxAvatarBytes,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), securityHeaders(), corsMiddleware(h.allowOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/users", h.createUser)
		api.POST("/users/login", h.login)

		authed := api.Group("", h.authenticate())

		users := authed.Group("/users")
		users.GET("/:userId", h.getUser)
		users.PUT("/:userId", h.updateUser)
		users.DELETE("/:userId", h.deleteUser)
		users.PUT("/:userId/avatar", h.uploadAvatar)

		milk := authed.Group("/milk")
		milk.POST("", h.createMilk)
		milk.GET("", h.listMilk)
		milk.GET("/export", h.exportMilk)
		milk.GET("/:id", h.getMilk)
		milk.PUT("/:id", h.updateMilk)
		milk.DELETE("/:id", h.deleteMilk)

		expenses := authed.Group("/expenses")
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/export", h.exportExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)

		stocks := authed.Group("/stocks")
		stocks.POST("", h.createStock)
		stocks.GET("", h.listStocks)
		stocks.GET("/export", h.exportStocks)
		stocks.GET("/:id", h.getStock)
		stocks.PATCH("/:id", h.sellStock)
		stocks.DELETE("/:id", h.deleteStock)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}
