package validation

import (
	"errors"

	"data-reconciler/core/profile"
	"data-reconciler/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// ErrStorageDisabled is returned by report listings when no storage is configured.
var ErrStorageDisabled = errors.New("report storage is not configured")

// StatusFor maps a run error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, reconcile.ErrConfiguration):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrConnectivity), errors.Is(err, reconcile.ErrProtocol):
		return fiber.StatusBadGateway
	case errors.Is(err, reconcile.ErrDataIntegrity):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
