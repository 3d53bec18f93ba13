package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/invopop/jsonschema"
)

func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var requestSchemas = map[string]*jsonschema.Schema{
	"short": GenerateSchema[ShortSpeechBody](),
	"long":  GenerateSchema[LongSpeechBody](),
}

func (s *Server) schemaHandler(c fiber.Ctx) error {
	schema, ok := requestSchemas[c.Params("name")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: ErrorDetail{Code: "NOT_FOUND", Message: "unknown schema " + c.Params("name")},
		})
	}

	return c.JSON(schema)
}
