package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/middleware"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/internal/utils"
	"github.com/profleet/fleettrack/services/tracking"
)

// TrackingHandler handles HTTP requests for trip tracking
type TrackingHandler struct {
	trackingUC tracking.TrackingUC
}

// NewTrackingHandler creates a new tracking HTTP handler
func NewTrackingHandler(trackingUC tracking.TrackingUC) *TrackingHandler {
	return &TrackingHandler{
		trackingUC: trackingUC,
	}
}

// IngestSample handles POST /tracking from a driver device
func (h *TrackingHandler) IngestSample(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	var req models.IngestRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	middleware.SetTripID(c, req.TripID)

	result, err := h.trackingUC.IngestSample(middleware.Context(c), caller, &req)
	if err != nil {
		return h.fail(c, err, "Failed to ingest location sample")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Location sample stored", result)
}

// GetRoute handles GET /tracking?tripId= and GET /trips/:id/route
func (h *TrackingHandler) GetRoute(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		tripID = c.QueryParam("tripId")
	}
	middleware.SetTripID(c, tripID)

	route, err := h.trackingUC.AssembleRoute(middleware.Context(c), middleware.CallerFromContext(c), tripID)
	if err != nil {
		return h.fail(c, err, "Failed to assemble trip route")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip route retrieved", route)
}

// GetLatestForTrip handles GET /tracking/latest?tripId=
func (h *TrackingHandler) GetLatestForTrip(c echo.Context) error {
	tripID := c.QueryParam("tripId")
	middleware.SetTripID(c, tripID)

	position, err := h.trackingUC.LatestForTrip(middleware.Context(c), middleware.CallerFromContext(c), tripID)
	if err != nil {
		return h.fail(c, err, "Failed to get latest trip position")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Latest position retrieved", position)
}

// GetLatestForDriver handles GET /tracking/drivers/:id/location
func (h *TrackingHandler) GetLatestForDriver(c echo.Context) error {
	driverID := c.Param("id")
	middleware.SetDriverID(c, driverID)

	position, err := h.trackingUC.LatestForDriver(middleware.Context(c), middleware.CallerFromContext(c), driverID)
	if err != nil {
		return h.fail(c, err, "Failed to get latest driver position")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Latest position retrieved", position)
}

// fail logs the detailed error and writes the caller-safe response
func (h *TrackingHandler) fail(c echo.Context, err error, msg string) error {
	ctx := middleware.Context(c)
	switch apperror.KindOf(err) {
	case apperror.KindInternal, apperror.KindTransientStorage:
		middleware.NoticeError(c, err)
		logger.ErrorCtx(ctx, msg, logger.Err(err))
	default:
		logger.InfoCtx(ctx, msg,
			logger.String("kind", apperror.KindOf(err).String()),
			logger.Err(err))
	}
	return utils.AppErrorResponse(c, err)
}
