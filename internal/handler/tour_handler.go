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
)

// TourRequest defines the structure for tour creation requests. Price is a
// pointer so a zero price passes the required check while an absent field
// does not.
type TourRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
	Duration    *int     `json:"duration"`
}

// TourUpdateRequest carries a partial update. Only fields present in the
// body are written, through a fixed column whitelist.
type TourUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
}

// ListTours handles retrieving all tours (public)
func ListTours(c echo.Context) error {
	log := logger.FromContext(c)

	tours := []model.Tour{}
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := database.GetDB().Find(&tours).Error; err != nil {
		log.Error("Failed to list tours", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve tours"})
	}

	log.Info("Tours retrieved", zap.Int("count", len(tours)))
	return c.JSON(http.StatusOK, tours)
}

// GetTour handles retrieving a single tour by ID (public)
func GetTour(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var tour model.Tour
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := database.GetDB().First(&tour, "id = ?", id).Error; err != nil {
		log.Warn("Tour not found", zap.String("tour_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	return c.JSON(http.StatusOK, tour)
}

// CreateTour handles creating a new tour (admin only)
func CreateTour(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTourOperation("create")

	var req TourRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tour creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Validation failed for tour creation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and price required"})
	}

	duration := 1
	if req.Duration != nil {
		duration = *req.Duration
	}

	tour := model.Tour{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Duration:    duration,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&tour).Error; err != nil {
		log.Error("Failed to create tour",
			zap.String("title", req.Title),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create tour"})
	}

	log.Info("Tour created",
		zap.String("tour_id", tour.ID),
		zap.String("title", tour.Title),
		zap.Float64("price", tour.Price))
	return c.JSON(http.StatusCreated, echo.Map{"id": tour.ID})
}

// UpdateTour handles partially updating an existing tour (admin only)
func UpdateTour(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordTourOperation("update")

	var req TourUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tour update request",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Build the update set from a fixed column whitelist; field names never
	// come from the request.
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}

	if len(updates) == 0 {
		log.Warn("Tour update with no fields", zap.String("tour_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields provided"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&model.Tour{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		log.Error("Failed to update tour",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update tour"})
	}

	log.Info("Tour updated",
		zap.String("tour_id", id),
		zap.Int("fields", len(updates)))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// DeleteTour handles removing a tour (admin only). Registrations referencing
// the tour are left in place.
func DeleteTour(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordTourOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := database.GetDB().Delete(&model.Tour{}, "id = ?", id).Error; err != nil {
		log.Error("Failed to delete tour",
			zap.String("tour_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete tour"})
	}

	log.Info("Tour deleted", zap.String("tour_id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
