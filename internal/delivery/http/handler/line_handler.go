package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/subway-admin/internal/pkg/errors"
	"github.com/subway-admin/internal/pkg/utils"
	"github.com/subway-admin/internal/pkg/validator"
	"github.com/subway-admin/internal/usecase"
	"github.com/subway-admin/internal/usecase/dto"
	"go.uber.org/zap"
)

// LineHandler - обработчик запросов к линиям
type LineHandler struct {
	lineUC *usecase.LineUseCase
	logger *zap.Logger
}

// NewLineHandler - создание нового LineHandler
func NewLineHandler(lineUC *usecase.LineUseCase, logger *zap.Logger) *LineHandler {
	return &LineHandler{
		lineUC: lineUC,
		logger: logger,
	}
}

// CreateLine godoc
// @Summary Create a line
// @Tags Lines
// @Accept json
// @Produce json
// @Param request body dto.LineRequest true "Line"
// @Success 201 {object} utils.SuccessResponse{data=dto.LineResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/lines [post]
func (h *LineHandler) CreateLine(c *fiber.Ctx) error {
	var req dto.LineRequest
	if err := parseAndValidate(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	line := req.ToLine()
	saved, err := h.lineUC.Save(c.Context(), &line)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, fmt.Sprintf("/api/v1/lines/%d", saved.ID), dto.ConvertLine(saved))
}

// ShowLines godoc
// @Summary List lines
// @Tags Lines
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.LineResponse}
// @Router /api/v1/lines [get]
func (h *LineHandler) ShowLines(c *fiber.Ctx) error {
	lines, err := h.lineUC.ShowLines(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertLines(lines), &utils.Meta{Total: len(lines)})
}

// GetLine godoc
// @Summary Line with its stations in path order
// @Tags Lines
// @Produce json
// @Param id path int true "Line ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.LineDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lines/{id} [get]
func (h *LineHandler) GetLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	detail, err := h.lineUC.FindLineWithStationsByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, nil)
}

// UpdateLine godoc
// @Summary Update a line
// @Tags Lines
// @Accept json
// @Param id path int true "Line ID"
// @Param request body dto.LineRequest true "Line"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lines/{id} [put]
func (h *LineHandler) UpdateLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LineRequest
	if err := parseAndValidate(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.lineUC.UpdateLine(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}

// DeleteLine godoc
// @Summary Delete a line
// @Tags Lines
// @Param id path int true "Line ID"
// @Success 204
// @Router /api/v1/lines/{id} [delete]
func (h *LineHandler) DeleteLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.lineUC.DeleteLineByID(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}

// AddLineStation godoc
// @Summary Add a station to a line
// @Description Inserts the station after pre_station_id, or at the head when pre_station_id is null
// @Tags Lines
// @Accept json
// @Param id path int true "Line ID"
// @Param request body dto.LineStationCreateRequest true "Line station"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lines/{id}/stations [post]
func (h *LineHandler) AddLineStation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LineStationCreateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.lineUC.AddLineStation(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}

// RemoveLineStation godoc
// @Summary Remove a station from a line
// @Tags Lines
// @Param id path int true "Line ID"
// @Param stationId path int true "Station ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lines/{id}/stations/{stationId} [delete]
func (h *LineHandler) RemoveLineStation(c *fiber.Ctx) error {
	lineID, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	stationID, err := paramID(c, "stationId")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.lineUC.RemoveLineStation(c.Context(), lineID, stationID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}

// WholeLines godoc
// @Summary Every line with its stations
// @Tags Lines
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.WholeSubwayResponse}
// @Router /api/v1/lines/detail [get]
func (h *LineHandler) WholeLines(c *fiber.Ctx) error {
	resp, err := h.lineUC.WholeLines(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(resp.LineDetailResponses)})
}

// parseAndValidate decodes the JSON body into req and checks its validate tags.
func parseAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid request body",
		})
	}
	if err := validator.Validate(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(validator.Details(err))
	}
	return nil
}
