package bootstrap

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	mealsinadapter "mealsync/internal/modules/meals/adapter/in"
	mealsoutadapter "mealsync/internal/modules/meals/adapter/out"
	mealsservice "mealsync/internal/modules/meals/service"
	mealsusecase "mealsync/internal/modules/meals/usecase"
	"mealsync/internal/platform/clock"
	"mealsync/internal/platform/config"
	"mealsync/internal/platform/server"
)

type Options struct {
	Config  config.Config
	Environ map[string]string
	Stdout  io.Writer
	Logger  *zap.Logger
	Clock   clock.Clock
	HTTP    *http.Client
}

type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Console   *mealsoutadapter.ConsoleReporter
	MealsCLI  mealsinadapter.CLIHandler
	MealsHTTP *mealsinadapter.HTTPHandler
}

func New(opts Options) (*App, error) {
	if opts.Stdout == nil {
		return nil, fmt.Errorf("stdout writer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = mealsoutadapter.NewHTTPClient(opts.Config.Timeout)
	}
	cfg := opts.Config

	creds := mealsoutadapter.NewEnvCredentialSource(opts.Environ, cfg.EnvFile, logger.Named("credentials"))
	api := mealsoutadapter.NewEasistentClient(cfg.BaseURL, cfg.Client, httpClient, logger.Named("easistent"))
	jsonSink := mealsoutadapter.NewJSONFileSink(cfg.JSONPath)
	htmlSink := mealsoutadapter.NewHTMLSpliceSink(cfg.HTMLPath)

	console := mealsoutadapter.NewConsoleReporter(opts.Stdout)
	cliUC := mealsusecase.NewInteractor(mealsservice.NewMealsService(clk, creds, api, jsonSink, htmlSink, console, logger))
	httpUC := mealsusecase.NewInteractor(mealsservice.NewMealsService(clk, creds, api, jsonSink, htmlSink, mealsoutadapter.NewLogReporter(logger.Named("sync")), logger))

	return &App{
		Config:    cfg,
		Logger:    logger,
		Console:   console,
		MealsCLI:  mealsinadapter.NewCLIHandler(cliUC),
		MealsHTTP: mealsinadapter.NewHTTPHandler(httpUC, cfg.SiteDir(), cfg.PrivateFiles(), logger.Named("http")),
	}, nil
}

// NewServer wraps the site routes in a server bound to the configured
// address.
func (a *App) NewServer() *server.Server {
	return server.New(a.MealsHTTP.Routes(), a.Config.ListenAddr, a.Config.ShutdownTimeout, a.Logger.Named("server"))
}
