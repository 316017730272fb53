package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/subway-admin/internal/pkg/errors"
)

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID.WithDetails(map[string]interface{}{
			name: c.Params(name),
		})
	}
	return int64(id), nil
}
