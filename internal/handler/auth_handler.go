package handler

import (
	"net/http"
	"time"
	"tourism-service/internal/model"
	"tourism-service/pkg/database"
	"tourism-service/pkg/logger"
	"tourism-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates an admin by username/password and issues a fresh
// bearer token. Every successful login inserts a new token row; existing
// tokens stay valid.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Username == "" || req.Password == "" {
		log.Warn("Incomplete login request",
			zap.Bool("username_provided", req.Username != ""),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_credentials")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	// Find admin in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var admin model.Admin
	if err := database.GetDB().Where("username = ?", req.Username).First(&admin).Error; err != nil {
		log.Warn("Admin not found", zap.String("username", req.Username))
		prometheus.RecordAuthError("admin_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Issue a fresh token linked to the admin
	token := model.Token{AdminID: admin.ID}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&token).Error; err != nil {
		log.Error("Failed to persist token", zap.Error(err))
		prometheus.RecordAuthError("token_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	prometheus.TokensIssuedCounter.Inc()
	log.Info("Admin logged in",
		zap.String("username", admin.Username),
		zap.String("token_id", token.ID))

	return c.JSON(http.StatusOK, echo.Map{"token": token.Token})
}
