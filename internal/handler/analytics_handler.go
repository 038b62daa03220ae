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

// tourHistoryEntry is one tour with its derived booking metrics.
type tourHistoryEntry struct {
	model.Tour
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// TourBookings returns the registration count for a tour (admin only). An
// unknown tour counts as zero, never an error.
func TourBookings(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	bookings, err := countBookings(database.GetDB(), id)
	if err != nil {
		log.Error("Failed to count bookings",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute bookings"})
	}

	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// TourRevenue returns bookings x price for a tour (admin only). Revenue for
// an unknown tour is zero.
func TourRevenue(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	db := database.GetDB()
	defer prometheus.TrackDBOperation("query")(time.Now())
	bookings, err := countBookings(db, id)
	if err != nil {
		log.Error("Failed to count bookings",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute revenue"})
	}

	var tour model.Tour
	if err := db.First(&tour, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"revenue": 0})
		}
		log.Error("Failed to look up tour",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute revenue"})
	}

	return c.JSON(http.StatusOK, echo.Map{"revenue": float64(bookings) * tour.Price})
}

// TourHistory returns every tour together with its bookings and revenue
// (admin only). Counts are computed per tour; fine at this data scale.
func TourHistory(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var tours []model.Tour
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := db.Find(&tours).Error; err != nil {
		log.Error("Failed to list tours", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute history"})
	}

	history := []tourHistoryEntry{}
	for _, tour := range tours {
		bookings, err := countBookings(db, tour.ID)
		if err != nil {
			log.Error("Failed to count bookings",
				zap.String("tour_id", tour.ID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute history"})
		}
		history = append(history, tourHistoryEntry{
			Tour:     tour,
			Bookings: bookings,
			Revenue:  float64(bookings) * tour.Price,
		})
	}

	log.Info("Tour history computed", zap.Int("tours", len(history)))
	return c.JSON(http.StatusOK, history)
}

func countBookings(db *gorm.DB, tourID string) (int64, error) {
	var count int64
	err := db.Model(&model.Registration{}).Where("tour_id = ?", tourID).Count(&count).Error
	return count, err
}
