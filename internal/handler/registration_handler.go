package handler

import (
	"errors"
	"net/http"
	"time"
	"tourism-service/internal/model"
	"tourism-service/pkg/database"
	"tourism-service/pkg/logger"
	"tourism-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegistrationRequest defines the structure for tour registration requests.
// Email is required: it is the identity key for users, and accepting an
// absent email would collapse every anonymous registration onto one row.
type RegistrationRequest struct {
	TourID string `json:"tourId" validate:"required"`
	User   struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required"`
	} `json:"user"`
}

// registrationRow is one line of the per-tour registration listing.
type registrationRow struct {
	ID               string    `json:"id"`
	RegistrationDate time.Time `json:"registration_date"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
}

// CreateRegistration records a registration for a tour (public). The user is
// looked up by email and created on first sight; lookup, create and the
// registration insert run in one transaction so concurrent registrations
// under a new email cannot produce duplicate user rows.
func CreateRegistration(c echo.Context) error {
	log := logger.FromContext(c)

	var req RegistrationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Validation failed for registration", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tourId, user.name and user.email required"})
	}

	db := database.GetDB()

	// The tour must exist before anything is written
	defer prometheus.TrackDBOperation("query")(time.Now())
	var tour model.Tour
	if err := db.First(&tour, "id = ?", req.TourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Registration for unknown tour", zap.String("tour_id", req.TourID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		log.Error("Failed to look up tour", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	var registration model.Registration
	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Where("email = ?", req.User.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = model.User{Name: req.User.Name, Email: req.User.Email}
			if cerr := tx.Create(&user).Error; cerr != nil {
				// A concurrent registration won the insert; reuse its row.
				if rerr := tx.Where("email = ?", req.User.Email).First(&user).Error; rerr != nil {
					return cerr
				}
			}
		} else if err != nil {
			return err
		}

		registration = model.Registration{UserID: user.ID, TourID: tour.ID}
		return tx.Create(&registration).Error
	})
	if err != nil {
		log.Error("Failed to record registration",
			zap.String("tour_id", req.TourID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	prometheus.RegistrationCounter.Inc()
	log.Info("Registration recorded",
		zap.String("registration_id", registration.ID),
		zap.String("tour_id", tour.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"registration_id": registration.ID,
		"tour_price":      tour.Price,
	})
}

// ListTourRegistrations returns the registrations for a tour joined with the
// registered users (admin only). An unknown tour yields an empty list, not
// an error.
func ListTourRegistrations(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	rows := []registrationRow{}
	defer prometheus.TrackDBOperation("query")(time.Now())
	err := database.GetDB().
		Table("registrations").
		Select("registrations.id, registrations.registration_date, users.name, users.email").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.tour_id = ?", id).
		Scan(&rows).Error
	if err != nil {
		log.Error("Failed to list registrations",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve registrations"})
	}

	log.Info("Registrations retrieved",
		zap.String("tour_id", id),
		zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, rows)
}
