package seeders

import (
	"log"

	"gorm.io/gorm"

	"tailor-booking/models/service"
)

// DefaultServices is the catalog installed on first seed.
func DefaultServices() []service.Service {
	return []service.Service{
		{
			Name:      "Team Jersey Printing",
			Category:  service.CategoryJersey,
			BasePrice: 650,
			Unit:      "per piece",
			Options: service.PriceOptionList{
				{Name: "Full Set (Shirt + Shorts)", Price: 650},
				{Name: "Shirt Only", Price: 450},
			},
			AddOns: service.PriceOptionList{
				{Name: "Pocket Short", Price: 100},
				{Name: "Name Print", Price: 50},
			},
			Active: true,
		},
		{
			Name:      "Organizational Uniform",
			Category:  service.CategoryOrganizational,
			BasePrice: 650,
			Unit:      "per piece",
			Options: service.PriceOptionList{
				{Name: "Polo Shirt", Price: 650},
				{Name: "Round Neck", Price: 550},
			},
			AddOns: service.PriceOptionList{
				{Name: "Pocket Short", Price: 100},
				{Name: "Embroidered Logo", Price: 150},
			},
			Active: true,
		},
		{
			Name:      "Garment Repair",
			Category:  service.CategoryRepair,
			BasePrice: 100,
			Unit:      "per item",
			Options: service.PriceOptionList{
				{Name: "Zipper Replacement", Price: 150},
				{Name: "Hem Adjustment", Price: 100},
				{Name: "Patch Work", Price: 120},
				{Name: "Button Replacement", Price: 50},
			},
			Active: true,
		},
		{
			Name:      "Alteration",
			Category:  service.CategoryGeneral,
			BasePrice: 200,
			Unit:      "per item",
			Options: service.PriceOptionList{
				{Name: "Waist Adjustment", Price: 200},
				{Name: "Length Adjustment", Price: 180},
			},
			Active: true,
		},
	}
}

// SeedServices installs the default catalog. It is a no-op when any service
// already exists, so calling it repeatedly never duplicates entries.
func SeedServices(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&service.Service{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if count > 0 {
		log.Printf("✅ Service catalog already present (%d entries), skipping seed", count)
		return 0, nil
	}

	var seeded int64
	for _, svc := range DefaultServices() {
		if err := db.Create(&svc).Error; err != nil {
			return seeded, err
		}
		seeded++
	}

	log.Printf("🌱 Seeded %d catalog services", seeded)
	return seeded, nil
}
