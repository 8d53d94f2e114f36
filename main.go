package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yukkurinet/hyakki-portal/config"
	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogging() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogging()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received: closing HTTP server")
	if err := server.Stop(); err != nil {
		logger.Warning("stop server err:", err)
	}
	if err := database.CloseDB(); err != nil {
		logger.Warning("close db err:", err)
	}
}

func seedDatabase() {
	initLogging()
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("database seeded")
}

func main() {
	config.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "Community portal API for the Hyakki Isekai game server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Start the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Initialize the database with seed content",
		Run: func(cmd *cobra.Command, args []string) {
			seedDatabase()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
