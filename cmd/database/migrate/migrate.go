package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"qrqaema/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Restaurant{}); err != nil {
		log.Fatalf("Error migrating restaurant database: %v", err)
		return err
	}
	if err := db.AutoMigrate(
		&entities.Menu{},
		&entities.Category{},
		&entities.MenuItem{},
		&entities.MenuItemOption{},
		&entities.MenuItemOptionChoice{},
		&entities.MenuAccess{},
	); err != nil {
		log.Fatalf("Error migrating menu database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Table{}); err != nil {
		log.Fatalf("Error migrating table database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}, &entities.OrderItem{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.HelpRequest{}); err != nil {
		log.Fatalf("Error migrating help request database: %v", err)
		return err
	}

	// One live order per table, enforced in the database. The partial
	// index works on both postgres and sqlite.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_active_table
		 ON orders (restaurant_id, table_id)
		 WHERE status IN ('Pending', 'In Progress')`,
	).Error; err != nil {
		log.Fatalf("Error creating active order index: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
