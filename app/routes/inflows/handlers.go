package inflows

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/config"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

func respondError(c *fiber.Ctx, err error) error {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrInflowReferenced):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrTxConflict):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "retryable": true})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
}

func GetInflowsAPI(c *fiber.Ctx) error {
	inflows, err := config.GetEngine().Inflows()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inflows)
}

func GetInflowAPI(c *fiber.Ctx) error {
	in, err := config.GetEngine().Inflow(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(in)
}

func CreateInflowAPI(c *fiber.Ctx) error {
	var in models.Inflow
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := config.GetEngine().AddInflow(&in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(in)
}

func UpdateInflowAPI(c *fiber.Ctx) error {
	var in models.Inflow
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	in.ID = c.Params("id")
	if err := config.GetEngine().UpdateInflow(&in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(in)
}

func DeleteInflowAPI(c *fiber.Ctx) error {
	if err := config.GetEngine().DeleteInflow(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func RecalculateInflowAPI(c *fiber.Ctx) error {
	newBalance, err := config.GetEngine().RecalculateBalance(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "remainingBalance": newBalance})
}
