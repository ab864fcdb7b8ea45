package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/princesss/catalog-backend/config"
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds the catalog either from an xlsx workbook (one product per row)
// or from the built-in fixtures when no file is given.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	colorRepo := repository.NewColorRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())

	fmt.Printf("Seeding %d colors\n", len(colorFixtures))
	for i := range colorFixtures {
		color := colorFixtures[i]
		if err := colorRepo.Create(&color); err != nil {
			// Duplicates from a previous run are fine
			fmt.Printf("Skipping color %s: %v\n", color.Name, err)
		}
	}

	var products []productSeed
	if len(os.Args) > 1 {
		filePath := os.Args[1]
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		products, err = readProductsFromXLSX(filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	} else {
		fmt.Println("No file given, using built-in fixtures")
		products = productFixtures
	}

	fmt.Printf("Total products to import: %d\n", len(products))
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for _, seed := range products {
		product := seed.product
		if err := productRepo.Create(&product); err != nil {
			fmt.Printf("Skipping product %s: %v\n", product.Name, err)
			continue
		}
		for _, v := range seed.variants {
			variant := v
			variant.ProductID = product.ID
			if err := variantRepo.Create(&variant); err != nil {
				fmt.Printf("Skipping variant %s: %v\n", variant.SKU, err)
			}
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

type productSeed struct {
	product  model.Product
	variants []model.Variant
}

// Workbook layout: name, display name, description, type (1/2),
// length, base price, base promo price, category (1/2/3), sku, color,
// variant price, variant promo price, stock.
func readProductsFromXLSX(filePath string) ([]productSeed, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	byName := make(map[string]*productSeed)
	var order []string
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 13 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			skippedCount++
			continue
		}

		seed, exists := byName[name]
		if !exists {
			productType, err := strconv.Atoi(strings.TrimSpace(row[3]))
			if err != nil {
				skippedCount++
				continue
			}
			length, _ := strconv.Atoi(strings.TrimSpace(row[4]))
			basePrice, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
			if err != nil {
				skippedCount++
				continue
			}
			category, err := strconv.Atoi(strings.TrimSpace(row[7]))
			if err != nil {
				skippedCount++
				continue
			}

			seed = &productSeed{
				product: model.Product{
					Name:           name,
					DisplayName:    strings.TrimSpace(row[1]),
					Description:    strings.TrimSpace(row[2]),
					Type:           model.ProductType(productType),
					Length:         length,
					BasePrice:      basePrice,
					BasePromoPrice: parseOptionalPrice(row[6]),
					CategoryID:     model.ProductCategory(category),
				},
			}
			byName[name] = seed
			order = append(order, name)
		}

		sku := strings.TrimSpace(row[8])
		if sku == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[10]), 64)
		if err != nil {
			skippedCount++
			continue
		}
		stock, _ := strconv.Atoi(strings.TrimSpace(row[12]))

		seed.variants = append(seed.variants, model.Variant{
			SKU:           sku,
			Color:         strings.TrimSpace(row[9]),
			Price:         price,
			PromoPrice:    parseOptionalPrice(row[11]),
			StockQuantity: stock,
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d malformed rows\n", skippedCount)
	}

	seeds := make([]productSeed, 0, len(order))
	for _, name := range order {
		seeds = append(seeds, *byName[name])
	}
	return seeds, nil
}

func parseOptionalPrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func floatPtr(v float64) *float64 { return &v }

var colorFixtures = []model.Color{
	{Name: "natural-black", DisplayName: "Natural Black", ColorCategory: intPtr(1)},
	{Name: "dark-brown", DisplayName: "Dark Brown", ColorCategory: intPtr(2)},
	{Name: "chestnut", DisplayName: "Chestnut", ColorCategory: intPtr(2)},
	{Name: "platinum-blonde", DisplayName: "Platinum Blonde", ColorCategory: intPtr(3)},
	{Name: "honey-blonde", DisplayName: "Honey Blonde", ColorCategory: intPtr(3)},
	{Name: "auburn", DisplayName: "Auburn", ColorCategory: intPtr(4)},
}

func intPtr(v int) *int { return &v }

var productFixtures = []productSeed{
	{
		product: model.Product{
			Name:        "classic-bob",
			DisplayName: "Classic Bob",
			Description: "A timeless chin-length bob with natural movement.",
			Type:        model.TypeNatural,
			Length:      12,
			BasePrice:   249,
			CategoryID:  model.CategoryWigs,
		},
		variants: []model.Variant{
			{SKU: "BOB-NB", Color: "natural-black", Price: 249, StockQuantity: 8},
			{SKU: "BOB-DB", Color: "dark-brown", Price: 249, PromoPrice: floatPtr(219), StockQuantity: 5},
		},
	},
	{
		product: model.Product{
			Name:        "silk-waves",
			DisplayName: "Silk Waves",
			Description: "Loose shoulder-length waves in a breathable cap.",
			Type:        model.TypeSynthetic,
			Length:      22,
			BasePrice:   129,
			CategoryID:  model.CategoryWigs,
		},
		variants: []model.Variant{
			{SKU: "SLW-HB", Color: "honey-blonde", Price: 129, StockQuantity: 12},
			{SKU: "SLW-AU", Color: "auburn", Price: 129, StockQuantity: 0},
		},
	},
	{
		product: model.Product{
			Name:        "ponytail-classic",
			DisplayName: "Classic Ponytail",
			Description: "Wrap-around ponytail with a secure comb mount.",
			Type:        model.TypeSynthetic,
			Length:      40,
			BasePrice:   59,
			CategoryID:  model.CategoryTails,
		},
		variants: []model.Variant{
			{SKU: "PNT-CH", Color: "chestnut", Price: 59, StockQuantity: 20},
		},
	},
	{
		product: model.Product{
			Name:        "crown-topper",
			DisplayName: "Crown Topper",
			Description: "Clip-in topper adding volume at the crown.",
			Type:        model.TypeNatural,
			Length:      14,
			BasePrice:   179,
			CategoryID:  model.CategoryToppers,
		},
		variants: []model.Variant{
			{SKU: "TOP-PB", Color: "platinum-blonde", Price: 179, PromoPrice: floatPtr(159), StockQuantity: 3},
		},
	},
}
