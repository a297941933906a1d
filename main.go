// file: main.go
package main

import (
	"log"
	"os"

	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/routes"
)

func main() {
	database.Connect()
	database.InitRedis()

	// 首次部署时打开自动迁移，之后建议交给 SQL 脚本管理
	if os.Getenv("UNIHUB_AUTO_MIGRATE") == "1" {
		database.MigrateTables()
	}

	r := routes.SetupRouter()

	addr := os.Getenv("UNIHUB_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Println("Starting server on " + addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
