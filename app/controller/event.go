package controller

import (
	"errors"
	"net/http"
	"strconv"

	dto "github.com/vibast-solutions/ms-go-calendar/app/dto/http"
	"github.com/vibast-solutions/ms-go-calendar/app/entity"
	"github.com/vibast-solutions/ms-go-calendar/app/middleware"
	"github.com/vibast-solutions/ms-go-calendar/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type EventController struct {
	eventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{eventService: eventService}
}

func (c *EventController) List(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	events, err := c.eventService.List(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list events")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewEventListResponse(events))
}

func (c *EventController) Get(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
	}

	event, err := c.eventService.Get(ctx.Request().Context(), userID, eventID)
	if err != nil {
		return c.eventError(ctx, err, userID, eventID, "Failed to fetch event")
	}

	return ctx.JSON(http.StatusOK, dto.NewEventResponse(event))
}

func (c *EventController) Create(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	var req dto.EventRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind event request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	event, err := c.eventService.Create(ctx.Request().Context(), userID, eventInput(req))
	if err != nil {
		if errors.Is(err, service.ErrInvalidImportance) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid importance value"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create event")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"event_id": event.ID,
	}).Info("Event created")

	return ctx.JSON(http.StatusCreated, dto.NewEventResponse(event))
}

func (c *EventController) Update(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
	}

	var req dto.EventRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind event request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	event, err := c.eventService.Update(ctx.Request().Context(), userID, eventID, eventInput(req))
	if err != nil {
		if errors.Is(err, service.ErrInvalidImportance) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid importance value"})
		}
		return c.eventError(ctx, err, userID, eventID, "Failed to update event")
	}

	return ctx.JSON(http.StatusOK, dto.NewEventResponse(event))
}

func (c *EventController) Delete(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
	}

	if err := c.eventService.Delete(ctx.Request().Context(), userID, eventID); err != nil {
		return c.eventError(ctx, err, userID, eventID, "Failed to delete event")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *EventController) eventError(ctx echo.Context, err error, userID, eventID uint64, msg string) error {
	if errors.Is(err, service.ErrEventNotFound) {
		return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "event not found"})
	}
	if errors.Is(err, service.ErrEventForbidden) {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"event_id": eventID,
		}).Warn("Event ownership check failed")
		return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "not authorized to access this event"})
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"user_id":  userID,
		"event_id": eventID,
	}).Error(msg)
	return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func parseEventID(ctx echo.Context) (uint64, error) {
	return strconv.ParseUint(ctx.Param("id"), 10, 64)
}

func eventInput(req dto.EventRequest) service.EventInput {
	return service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Importance:  entity.Importance(req.Importance),
	}
}
