package app

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"tender-service/internal/config"
	"tender-service/internal/controller"
	"tender-service/internal/repo"
	"tender-service/internal/service"
	"tender-service/pkg/httpserver"
	"tender-service/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/sirupsen/logrus"
)

func runMigrations(pg *postgres.Postgres, sourceUrl string, log *logrus.Logger) error {
	driver, err := pgmigrate.WithInstance(pg.Database, &pgmigrate.Config{})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, "postgres", driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("migrations: no change")

			return nil
		}

		return err
	}

	log.Info("migrations: applied")

	return nil
}

func Run() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.New()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Info("connecting database")
	pg, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.WithError(err).Fatal("database connection error")
	}
	defer pg.Close()

	log.Info("running migrations")
	if err := runMigrations(pg, cfg.MigrationsPath, log); err != nil {
		log.WithError(err).Fatal("migration error")
	}

	repositories := repo.NewRepositories(pg)
	services := service.NewServices(repositories, log)
	handler := echo.New()
	controller.SetupRoutesHandlers(handler, services)

	log.WithField("address", cfg.ServerAddress).Info("starting server")
	server := httpserver.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.WithField("signal", s.String()).Info("got signal")
	case err := <-server.Notify():
		log.WithError(err).Error("server stopped")
	}

	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.WithError(err).Error("shutdown error")

		return
	}

	log.Info("shutdown complete")
}
