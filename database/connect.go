// file: database/connect.go
package database

import (
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"log"
	"os"
	"time"
)

var DB *gorm.DB

func Connect() {
	var err error
	dsn := os.Getenv("UNIHUB_MYSQL_DSN")
	if dsn == "" {
		dsn = "root:123456@tcp(localhost:3306)/university_hub?charset=utf8mb4&parseTime=True&loc=Local"
	}
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		// 让重复键冲突返回 gorm.ErrDuplicatedKey，报名/入队的唯一索引依赖这个判断
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 解决 MySQL 'wait_timeout' 断连问题，过期连接会在下次使用前安全重建。
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

// MigrateTables 自动建表（生产环境建议用 SQL 迁移脚本手工管理）
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.RoleAssignment{},
		&models.Event{},
		&models.Registration{},
		&models.Team{},
		&models.TeamMember{},
		&models.Announcement{},
		&models.Upload{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
