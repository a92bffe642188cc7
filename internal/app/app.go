package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/linkstats/internal/config"
	"github.com/fsdevblog/linkstats/internal/controllers"
	"github.com/fsdevblog/linkstats/internal/db"
	"github.com/fsdevblog/linkstats/internal/rate"
	"github.com/fsdevblog/linkstats/internal/services"
	"github.com/fsdevblog/linkstats/internal/sslcert"
	"github.com/fsdevblog/linkstats/internal/visitors"
)

type App struct {
	config     config.Config
	dbServices *services.Services
	Logger     *logrus.Logger
}

func New(conf config.Config) (*App, error) {
	dbServices, servicesErr := initServices(conf)
	if servicesErr != nil {
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	return &App{
		config:     conf,
		dbServices: dbServices,
		Logger:     conf.Logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и блокируется до SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := controllers.SetupRouter(
		a.dbServices.LinkService,
		a.dbServices.PingService,
		a.Logger,
	)

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)
	go func() {
		if err := a.listenAndServe(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	a.Logger.Infof("Server started on %s", a.config.ServerAddress)

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		a.Logger.WithError(shutdownErr).Error("server shutdown error")
	}

	return serverErr
}

// listenAndServe запускает сервер по HTTP или HTTPS в зависимости от настроек.
// Для HTTPS недостающая пара сертификат/ключ генерируется на месте.
func (a *App) listenAndServe(server *http.Server) error {
	if !a.config.EnableHTTPS {
		return server.ListenAndServe() //nolint:wrapcheck
	}

	gen, genErr := sslcert.New()
	if genErr != nil {
		return fmt.Errorf("init certificate generator: %w", genErr)
	}
	if ensureErr := gen.EnsurePair(a.config.CertFile, a.config.KeyFile); ensureErr != nil {
		return fmt.Errorf("ensure certificate pair: %w", ensureErr)
	}
	return server.ListenAndServeTLS(a.config.CertFile, a.config.KeyFile) //nolint:wrapcheck
}

// initServices создает подключение к базе данных и возвращает сервисный слой приложения.
func initServices(appConf config.Config) (*services.Services, error) {
	dbConn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		StorageType:  whatIsDBStorageType(&appConf),
		SQLiteDBPath: appConf.SQLitePath,
	})
	if connErr != nil {
		return nil, connErr //nolint:wrapcheck
	}

	deps := services.Deps{
		Limiter:    rate.NewLimiter(appConf.RateLimitWindow, appConf.RateLimitMax),
		Classifier: visitors.NewClassifier(),
		Locator:    visitors.NewLocator(appConf.GeoAPIURL, appConf.GeoTimeout, appConf.Logger),
		BaseURL:    appConf.BaseURL,
		GeoTimeout: appConf.GeoTimeout,
		Logger:     appConf.Logger,
	}

	dbServices, dbServErr := services.Factory(dbConn, whatIsServiceType(&appConf), deps)
	if dbServErr != nil {
		return nil, dbServErr //nolint:wrapcheck
	}
	return dbServices, nil
}

func whatIsDBStorageType(appConf *config.Config) db.StorageType {
	if appConf.DBType == config.DBTypeSQLite {
		return db.StorageTypeSQLite
	}
	return db.StorageTypeInMemory
}

func whatIsServiceType(appConf *config.Config) services.ServiceType {
	if appConf.DBType == config.DBTypeSQLite {
		return services.ServiceTypeSQLite
	}
	return services.ServiceTypeInMemory
}
