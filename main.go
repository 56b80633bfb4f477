package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/nqhuy/signup-gate/config"
	"github.com/nqhuy/signup-gate/internal/auth"
	"github.com/nqhuy/signup-gate/internal/gate"
	"github.com/nqhuy/signup-gate/internal/handlers"
	"github.com/nqhuy/signup-gate/internal/hooks"
	"github.com/nqhuy/signup-gate/internal/mail"
	"github.com/nqhuy/signup-gate/internal/middlewares"
	"github.com/nqhuy/signup-gate/internal/repository"
	"github.com/nqhuy/signup-gate/model"
	"github.com/nqhuy/signup-gate/params"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.Name = "signup-gate"
	app.Usage = "Administrator approval gate for new user sign-ups"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func initLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func initDatabase(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if err := db.AutoMigrate(model.Models...); err != nil {
		return nil, err
	}
	return db, nil
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	initLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	db, err := initDatabase(cfg.MySQL)
	if err != nil {
		slog.Error("Could not connect database.", "error", err)
		return err
	}

	userRepo := repository.NewUserRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)

	mailSender := mail.NewSMTPMailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	dispatcher := mail.NewDispatcher(mailSender, cfg.SMTP.From)

	gateService := gate.NewService(approvalRepo, userRepo, dispatcher, gate.Config{
		BaseURL:    cfg.BaseURL,
		AdminEmail: cfg.AdminEmail,
	})
	authService := auth.NewService(userRepo)

	registry := hooks.NewRegistry()
	handlers.RegisterGateHooks(registry, gateService)

	authHandler := handlers.NewAuthHandler(authService, registry)
	approveHandler := handlers.NewApproveHandler(gateService)
	pendingHandler := handlers.NewPendingHandler(gateService)

	router := fiber.New(fiber.Config{
		BodyLimit:    params.ServerBodyLimit,
		IdleTimeout:  params.ServerIdleTimeout,
		ReadTimeout:  params.ServerReadTimeout,
		WriteTimeout: params.ServerWriteTimeout,
		ErrorHandler: middlewares.ErrorHandler,
	})
	router.Post("/sign-up/email", authHandler.PostSignUp)
	router.Post("/sign-in/email", authHandler.PostSignIn)
	router.Get("/admin/approve", approveHandler.GetApprove)
	router.Post("/admin/approve", approveHandler.PostApprove)
	router.Get("/admin/approval-success", approveHandler.GetApprovalSuccess)
	router.Get("/admin/pending", pendingHandler.GetPending)

	slog.Info("Starting signup-gate server", "address", cfg.ListenAddr)
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
