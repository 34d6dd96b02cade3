package app

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/Amman-Akbar/GlobalApply/api"
	"github.com/Amman-Akbar/GlobalApply/config"
	"github.com/Amman-Akbar/GlobalApply/database"
	"github.com/Amman-Akbar/GlobalApply/router"
	"github.com/Amman-Akbar/GlobalApply/services/cron"
)

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Enum types and check constraints have to exist before GORM migrates
	// the columns that use them.
	rawStore, err := database.Start()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}
	if err := rawStore.Initialize(); err != nil {
		rawStore.Close()
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		rawStore.Close()
		return err
	}

	if err := store.Init(); err != nil {
		rawStore.Close()
		print("Failed to initialize database tables\n")
		return err
	}

	// Re-apply the counter constraint now that AutoMigrate has created the
	// subscription_plans table.
	if err := rawStore.InitConstraints(); err != nil {
		rawStore.Close()
		return err
	}
	rawStore.Close()

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	if err := database.Seed(db); err != nil {
		print("Warning: failed to seed database\n")
		print("Error: ", err.Error(), "\n")
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(db)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store)

	// Get the PORT & Start the Server
	return server.Run()
}
