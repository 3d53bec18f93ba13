package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/processor"
	"github.com/snosratiershad/avasho-go/redis"
)

// writeError maps client and processor errors onto HTTP statuses.
func writeError(c fiber.Ctx, err error) error {
	var (
		invalid   avasho.InvalidArgumentError
		gateway   avasho.GatewayError
		protocol  avasho.ProtocolError
		transport avasho.TransportError
	)

	switch {
	case errors.As(err, &invalid):
		return badRequest(c, invalid.Error())

	case errors.As(err, &gateway):
		log.Error().Err(err).Int("gateway_status", gateway.StatusCode).Msg("Gateway rejected request")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: ErrorDetail{
				Code:          "GATEWAY_ERROR",
				Message:       gateway.Error(),
				GatewayStatus: gateway.StatusCode,
			},
		})

	case errors.As(err, &protocol):
		log.Error().Err(err).Str("body", protocol.Body).Msg("Gateway returned an unexpected response")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: ErrorDetail{Code: "PROTOCOL_ERROR", Message: protocol.Error()},
		})

	case errors.As(err, &transport):
		log.Error().Err(err).Msg("Gateway unreachable")
		return c.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse{
			Error: ErrorDetail{Code: "TRANSPORT_ERROR", Message: transport.Error()},
		})

	case errors.Is(err, redis.ErrJobNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: ErrorDetail{Code: "NOT_FOUND", Message: err.Error()},
		})

	case errors.Is(err, processor.ErrNoJobStore):
		return c.Status(fiber.StatusNotImplemented).JSON(ErrorResponse{
			Error: ErrorDetail{Code: "NOT_CONFIGURED", Message: err.Error()},
		})
	}

	log.Error().Err(err).Msg("Unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
	})
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: ErrorDetail{Code: "INVALID_PARAMETER", Message: message},
	})
}
