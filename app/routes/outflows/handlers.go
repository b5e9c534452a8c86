package outflows

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
	case errors.Is(err, ledger.ErrTxConflict):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "retryable": true})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
}

func GetOutflowsAPI(c *fiber.Ctx) error {
	outflows, err := config.GetEngine().Outflows()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(outflows)
}

func GetOutflowAPI(c *fiber.Ctx) error {
	out, err := config.GetEngine().Outflow(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateOutflowAPI records an expenditure. When the source pot cannot cover
// the full amount the response carries the auto-created overdraft alongside
// the outflow, and an ops alert goes out.
func CreateOutflowAPI(c *fiber.Ctx) error {
	var out models.Outflow
	if err := c.BodyParser(&out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	overdraft, err := config.GetEngine().RecordOutflow(&out)
	if err != nil {
		return respondError(c, err)
	}
	if overdraft != nil {
		notifier.OverdraftCreated(overdraft)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"outflow":   out,
		"overdraft": overdraft,
	})
}

func UpdateOutflowAPI(c *fiber.Ctx) error {
	var out models.Outflow
	if err := c.BodyParser(&out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	out.ID = c.Params("id")
	if err := config.GetEngine().ReviseOutflow(&out); err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func DeleteOutflowAPI(c *fiber.Ctx) error {
	if err := config.GetEngine().ReverseOutflow(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
