package database

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// DB global database variable
var DB *gorm.DB

// InitDB open the sqlite database and run migrations
func InitDB(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.AutoMigrate(&RequestRecord{}, &ResponseRecord{}, &FindingRecord{})
	DB = db
	return db, nil
}
