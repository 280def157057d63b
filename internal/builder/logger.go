package builder

import (
	"github.com/futig/interview-cases/internal/config"
	"github.com/futig/interview-cases/internal/pkg/logger"
	"go.uber.org/zap"
)

func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.Environment)
}
