package main

import (
	"fmt"
	"os"

	"tailor-booking/database"
	"tailor-booking/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate - Run schema migrations")
		fmt.Println("  go run tools/migrate.go seed    - Seed the service catalog")
		return
	}

	db, err := database.InitDB()
	if err != nil {
		fmt.Printf("❌ Failed to connect to the database: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		fmt.Println("🌱 Seeding the service catalog...")
		seeded, err := seeders.SeedServices(db)
		if err != nil {
			fmt.Printf("❌ Seeding failed: %v\n", err)
			os.Exit(1)
		}
		if seeded == 0 {
			fmt.Println("Service catalog already populated, nothing to do")
		} else {
			fmt.Printf("✅ Seeded %d service catalog entries\n", seeded)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Available commands: migrate, seed")
	}
}
