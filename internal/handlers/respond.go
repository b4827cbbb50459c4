package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"mawasim/internal/errs"
)

// writeError maps domain errors onto HTTP responses: validation failures and
// rejected coupons become 400, missing entities 404, conflicts 409, anything
// else 500. Services return typed errors, so no message-string matching
// happens here.
func writeError(c *fiber.Ctx, err error) error {
	var (
		validation *errs.ValidationError
		notFound   *errs.NotFoundError
		rejected   *errs.CouponRejectedError
		conflict   *errs.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validation.Message,
			"field":   validation.Field,
		})
	case errors.As(err, &rejected):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": rejected.Reason,
			"code":    rejected.Code,
		})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": conflict.Message,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
			"error":   err.Error(),
		})
	}
}

// paramID parses an integer path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, errs.Validation(name, "must be an integer")
	}
	return id, nil
}

// userID resolves the acting cart owner from the query string, defaulting to
// the guest identity.
func userID(c *fiber.Ctx) string {
	if id := c.Query("userId"); id != "" {
		return id
	}
	return "guest"
}
