package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/processor"
)

type Server struct {
	app             *fiber.App
	speechProcessor *processor.SpeechProcessor
	defaultSpeaker  avasho.Speaker
}

// New builds the HTTP API. Requests that omit a speaker use defaultSpeaker.
func New(speechProcessor *processor.SpeechProcessor, defaultSpeaker avasho.Speaker) *Server {
	app := fiber.New()

	server := &Server{
		app:             app,
		speechProcessor: speechProcessor,
		defaultSpeaker:  defaultSpeaker,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) Start(port string) error {
	log.Info().Str("port", port).Msg("Starting speech server")

	return s.app.Listen(":"+port, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
