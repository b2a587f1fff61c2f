package main

import (
	"go.uber.org/zap"

	"go-url-admin/cmd"
)

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
}

func main() {
	defer logger.Sync()

	cmd.Execute(logger)
}
