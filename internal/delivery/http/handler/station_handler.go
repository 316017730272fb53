package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/subway-admin/internal/pkg/errors"
	"github.com/subway-admin/internal/pkg/utils"
	"github.com/subway-admin/internal/usecase"
	"github.com/subway-admin/internal/usecase/dto"
	"go.uber.org/zap"
)

// StationHandler - обработчик запросов к станциям
type StationHandler struct {
	lineUC    *usecase.LineUseCase
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

func NewStationHandler(lineUC *usecase.LineUseCase, stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		lineUC:    lineUC,
		stationUC: stationUC,
		logger:    logger,
	}
}

// CreateStation godoc
// @Summary Create a station
// @Tags Stations
// @Accept json
// @Produce json
// @Param request body dto.StationCreateRequest true "Station"
// @Success 201 {object} utils.SuccessResponse{data=dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/stations [post]
func (h *StationHandler) CreateStation(c *fiber.Ctx) error {
	var req dto.StationCreateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stationUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, fmt.Sprintf("/api/v1/stations/%d", station.ID), dto.ConvertStation(station))
}

// ListStations godoc
// @Summary List stations
// @Tags Stations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.StationResponse}
// @Router /api/v1/stations [get]
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	stations, err := h.lineUC.FindAllStations(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStations(stations), &utils.Meta{Total: len(stations)})
}

// FindStationByName godoc
// @Summary Find a station by exact name
// @Tags Stations
// @Produce json
// @Param name query string true "Station name"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/search [get]
func (h *StationHandler) FindStationByName(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"name": "required",
		}))
	}

	station, err := h.lineUC.FindStationWithName(c.Context(), name)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStation(station), nil)
}

// DeleteStation godoc
// @Summary Delete a station
// @Tags Stations
// @Param id path int true "Station ID"
// @Success 204
// @Router /api/v1/stations/{id} [delete]
func (h *StationHandler) DeleteStation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.stationUC.DeleteByID(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}
