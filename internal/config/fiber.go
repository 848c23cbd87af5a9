package config

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "DevBlog Frontend",
			BodyLimit:         10 * 1024 * 1024,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			CaseSensitive:     true,
			EnablePrintRoutes: logger.IsLevelEnabled(logrus.DebugLevel),
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      jsonErrorHandler(logger),
		})

	return app
}

// jsonErrorHandler answers errors that escape the handlers, unknown routes
// included, in the same JSON shape the handlers use.
func jsonErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An unexpected error occurred"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			logger.WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Error("Unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
