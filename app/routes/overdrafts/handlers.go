package overdrafts

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
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrAlreadySettled):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrTxConflict):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "retryable": true})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
}

func GetOverdraftsAPI(c *fiber.Ctx) error {
	overdrafts, err := config.GetEngine().Overdrafts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overdrafts)
}

func GetOverdraftAPI(c *fiber.Ctx) error {
	od, err := config.GetEngine().Overdraft(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(od)
}

// CreateOverdraftAPI logs an ad-hoc external liability. No pot is debited.
func CreateOverdraftAPI(c *fiber.Ctx) error {
	var od models.Overdraft
	if err := c.BodyParser(&od); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := config.GetEngine().AddOverdraft(&od); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(od)
}

func UpdateOverdraftAPI(c *fiber.Ctx) error {
	var od models.Overdraft
	if err := c.BodyParser(&od); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	od.ID = c.Params("id")
	if err := config.GetEngine().UpdateOverdraft(&od); err != nil {
		return respondError(c, err)
	}
	return c.JSON(od)
}

// SettleOverdraftAPI pays a liability down from a chosen pot. Partial
// settlements leave the overdraft open with the reduced outstanding amount.
func SettleOverdraftAPI(c *fiber.Ctx) error {
	type SettleRequest struct {
		InflowID string `json:"inflowId"`
	}

	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	settlement, err := config.GetEngine().SettleOverdraft(c.Params("id"), req.InflowID)
	if err != nil {
		return respondError(c, err)
	}
	notifier.OverdraftSettled(settlement.Overdraft, settlement.PaymentAmount)

	return c.JSON(settlement)
}

func DeleteOverdraftAPI(c *fiber.Ctx) error {
	if err := config.GetEngine().DeleteOverdraft(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
