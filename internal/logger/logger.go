package logger

import "go.uber.org/zap"

// New builds the process logger: production config when env is "production",
// development otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
