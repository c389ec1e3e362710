package di

import (
	"dmhub/internal/config"
	"dmhub/internal/dbmysql"
	"dmhub/internal/dm/handler"
	"dmhub/internal/dm/service"

	"gorm.io/gorm"
)

// Application bundles everything the DM service binary needs.
type Application struct {
	Config  *config.Config
	DB      *gorm.DB
	Handler *handler.DMHandler
	Service service.DMService
}

// provideDatabase opens the MySQL connection and hands wire a cleanup that
// closes the pool on shutdown.
func provideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}
