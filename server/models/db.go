package models

import (
	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/logger"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/pkg/errors"
)

var db *gorm.DB

func InitDB() error {
	cfg := conf.GetConfig()
	if err := connectDB(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		logger.AppLog.Errorf("DB Error: %+v", err)
		return errors.Wrap(err, "connect database")
	}

	logger.AppLog.Infof("DB Connected (%v)", cfg.Database.Driver)
	db.LogMode(cfg.Server.Debug)

	createTables()
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func connectDB(driver, spec string) error {
	var err error
	db, err = gorm.Open(driver, spec)
	if err != nil {
		return err
	}
	if isSQLite() {
		// one writer at a time, and in-memory databases are per connection
		db.DB().SetMaxOpenConns(1)
	}
	return nil
}

func isSQLite() bool {
	return db.Dialect().GetName() == "sqlite3"
}

func isMySQL() bool {
	return db.Dialect().GetName() == "mysql"
}

func utf8mb4() *gorm.DB {
	if isMySQL() {
		return db.Set("gorm:table_options", "CHARACTER SET utf8mb4")
	}
	return db
}

func createTables() {
	utf8mb4().AutoMigrate(&User{})
	utf8mb4().AutoMigrate(&UserSession{})
	utf8mb4().AutoMigrate(&TestCase{})
	utf8mb4().AutoMigrate(&TestStep{})
	utf8mb4().AutoMigrate(&Comment{})

	db.Model(&TestCase{}).AddIndex("idx_test_cases_created_by_created_at", "created_by_id", "created_at")
	db.Model(&TestCase{}).AddIndex("idx_test_cases_project_status", "project", "status")

	// sqlite cannot add constraints to an existing table
	if !isMySQL() {
		return
	}
	db.Model(&UserSession{}).AddForeignKey("user_id", "users(id)", "CASCADE", "CASCADE")
	db.Model(&TestCase{}).AddForeignKey("created_by_id", "users(id)", "RESTRICT", "RESTRICT")
	db.Model(&TestCase{}).AddForeignKey("assigned_to_id", "users(id)", "SET NULL", "RESTRICT")
	db.Model(&TestStep{}).AddForeignKey("test_case_id", "test_cases(id)", "CASCADE", "CASCADE")
	db.Model(&Comment{}).AddForeignKey("test_case_id", "test_cases(id)", "CASCADE", "CASCADE")
	db.Model(&Comment{}).AddForeignKey("user_id", "users(id)", "RESTRICT", "RESTRICT")
}
