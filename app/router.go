package app

import (
	"bitwise74/account-api/app/admin"
	"bitwise74/account-api/app/root"
	"bitwise74/account-api/app/user"
	"bitwise74/account-api/aws"
	"bitwise74/account-api/db"
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/internal/service"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/respond"
	"bitwise74/account-api/pkg/security"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{
		Argon:            security.NewArgon(),
		ActivationSecret: []byte(viper.GetString("jwt.activation_secret")),
		MaxAvatarSize:    viper.GetInt64("upload.max_avatar_size"),
	}

	router := gin.New()

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}
	d.Users = store.NewGormUserStore(conn)

	sessions, err := service.NewSessions(service.SessionConfig{
		AccessSecret:  []byte(viper.GetString("jwt.access_secret")),
		RefreshSecret: []byte(viper.GetString("jwt.refresh_secret")),
		AccessTTL:     viper.GetDuration("jwt.access_ttl"),
		RefreshTTL:    viper.GetDuration("jwt.refresh_ttl"),
		Domain:        viper.GetString("host.domain"),
		Secure:        viper.GetString("app.env") == "prod",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session issuer, %w", err)
	}
	d.Sessions = sessions

	d.Mailer = service.NewSMTPMailer(service.MailConfig{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Sender:   viper.GetString("mail.sender"),
		Password: viper.GetString("mail.password"),
	})

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	d.Avatars = aws.NewAvatarStore(s3, viper.GetString("aws.public_url"))

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.Ginzap(zap.L(), time.RFC3339, true),
	)

	router.NoRoute(func(c *gin.Context) {
		respond.Fail(c, http.StatusNotFound, "Route "+c.Request.URL.Path+" not found")
	})

	rateLimit := viper.GetInt("security.rate_limit")

	auth := middleware.NewAuthMiddleware(d.Users, []byte(viper.GetString("jwt.access_secret")))
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api/v1", rateLimiter)
	{
		// HEAD /api/v1/heartbeat			-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	u := m.Group("/user")
	{
		// POST /api/v1/user/registration		-> Starts a registration, mails the activation code
		u.POST("/registration", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/v1/user/active-user		-> Confirms the code and creates the account
		u.POST("/active-user", func(c *gin.Context) { user.UserActivate(c, d) })

		// POST /api/v1/user/login			-> Verifies credentials and sets the session cookies
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/v1/user/sign-out			-> Clears the session cookies
		u.POST("/sign-out", func(c *gin.Context) { user.UserLogout(c, d) })

		// GET /api/v1/user/get-infomation		-> Returns the caller's own record
		u.GET("/get-infomation", auth, func(c *gin.Context) { user.UserFetch(c, d) })

		// PUT /api/v1/user/update-avatar		-> Replaces the caller's avatar
		u.PUT("/update-avatar", auth,
			middleware.BodySizeLimiter(d.MaxAvatarSize*2),
			func(c *gin.Context) { user.UserUpdateAvatar(c, d) })

		// POST /api/v1/user/send-password-update-code	-> Mails a password update code
		u.POST("/send-password-update-code", auth, func(c *gin.Context) { user.UserSendResetCode(c, d) })

		// POST /api/v1/user/update-password		-> Commits the password change
		u.POST("/update-password", auth, func(c *gin.Context) { user.UserUpdatePassword(c, d) })
	}

	a := m.Group("/admin", auth, middleware.RequireRoles(model.RoleAdmin))
	{
		// GET /api/v1/admin/users/:id			-> Looks up any account by ID
		a.GET("/users/:id", func(c *gin.Context) { admin.UserFetch(c, d) })
	}

	// Expired reset codes linger on user records otherwise
	service.ResetCodeCleanup(time.Hour, conn)

	return router, nil
}
