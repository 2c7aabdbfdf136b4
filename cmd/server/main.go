package main

import (
	"github.com/lorebase/lorebase/internal/server"
	"github.com/lorebase/lorebase/internal/util"
	"github.com/lorebase/lorebase/pkg/logger"
	"github.com/lorebase/lorebase/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
