package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/routes"
	"github.com/zsmartex/rebate/server"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	repo, err := server.OpenRepository()
	if err != nil {
		config.Logger.Fatalf("Failed to open repository: %v", err)
	}

	r := routes.SetupRouter(server.NewDependencies(repo))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		config.Logger.Info("Shutting down rebate-api")
		if err := r.Shutdown(); err != nil {
			config.Logger.Errorf("Failed to shut down: %v", err)
		}
	}()

	config.Logger.Infof("Start rebate-api on %s", config.Env.ListenAddr())
	if err := r.Listen(config.Env.ListenAddr()); err != nil {
		config.Logger.Fatalf("Failed to listen: %v", err)
	}
}
