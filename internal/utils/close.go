package utils

import (
	"io"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

// CloseLogged closes c and reports a failure at warn level under name.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close",
			logger.String("resource", name),
			logger.Error(err))
	}
}
