package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"qrqaema/cmd/config"
	migration "qrqaema/cmd/database/migrate"
	"qrqaema/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	// Hourly retention job; completed orders older than the window are
	// purged.
	purger := config.NewOrderPurger(db)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		purged, err := purger.PurgeOldOrders(context.Background())
		if err != nil {
			log.Printf("order purge failed: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("purged %d old orders", purged)
		}
	}); err != nil {
		log.Fatalf("failed to schedule order purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
