package main

import (
	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("gagal terhubung ke database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("gagal migrasi database: %v", err)
	}

	categories := []models.Category{
		{Slug: "gitar-akustik", Name: "Gitar Akustik", SortOrder: 1},
		{Slug: "gitar-elektrik", Name: "Gitar Elektrik", SortOrder: 2},
		{Slug: "gitar-bass", Name: "Gitar Bass", SortOrder: 3},
		{Slug: "aksesoris", Name: "Aksesoris", SortOrder: 4},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("gagal membuat kategori %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("kategori dibuat: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("kategori sudah ada: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"gitar-akustik", "gitar-elektrik", "gitar-bass", "aksesoris"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("gagal memuat kategori: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:  categoryIDs["gitar-akustik"],
			Slug:        "yamaha-f310",
			Name:        "Yamaha F310 Akustik",
			Description: "Gitar akustik dreadnought untuk pemula, top spruce dengan back dan side meranti. Neck nato yang nyaman untuk latihan harian.",
			PriceAmount: 1_450_000,
			Stock:       12,
			WeightGrams: 2800,
			Images:      models.StringArray{"/uploads/product/seed/yamaha-f310.jpg"},
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["gitar-akustik"],
			Slug:        "taylor-110e",
			Name:        "Taylor 110e Akustik Elektrik",
			Description: "Dreadnought dengan top sitka spruce solid dan preamp ES2. Suara seimbang untuk panggung maupun rekaman.",
			PriceAmount: 12_500_000,
			Stock:       3,
			WeightGrams: 3200,
			Images:      models.StringArray{"/uploads/product/seed/taylor-110e.jpg"},
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["gitar-elektrik"],
			Slug:        "squier-stratocaster-affinity",
			Name:        "Squier Affinity Stratocaster",
			Description: "Stratocaster klasik dengan tiga pickup single coil dan tremolo sinkron. Pilihan solid untuk gitaris elektrik pertama.",
			PriceAmount: 3_750_000,
			Stock:       7,
			WeightGrams: 3500,
			Images:      models.StringArray{"/uploads/product/seed/squier-strat.jpg"},
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["gitar-elektrik"],
			Slug:        "epiphone-les-paul-standard",
			Name:        "Epiphone Les Paul Standard",
			Description: "Body mahogany dengan maple top, dua humbucker ProBucker. Sustain tebal khas Les Paul.",
			PriceAmount: 8_900_000,
			Stock:       4,
			WeightGrams: 4100,
			Images:      models.StringArray{"/uploads/product/seed/epiphone-lp.jpg"},
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["gitar-bass"],
			Slug:        "ibanez-gsr200",
			Name:        "Ibanez GSR200 Bass",
			Description: "Bass empat senar dengan neck maple tipis dan boost bass aktif PHAT II. Ringan dan nyaman dimainkan lama.",
			PriceAmount: 4_200_000,
			Stock:       5,
			WeightGrams: 3800,
			Images:      models.StringArray{"/uploads/product/seed/ibanez-gsr200.jpg"},
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["aksesoris"],
			Slug:        "senar-daddario-exl110",
			Name:        "Senar D'Addario EXL110",
			Description: "Senar gitar elektrik nickel wound regular light 10-46.",
			PriceAmount: 115_000,
			Stock:       60,
			WeightGrams: 50,
			Images:      models.StringArray{"/uploads/product/seed/exl110.jpg"},
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["aksesoris"],
			Slug:        "capo-dunlop-trigger",
			Name:        "Capo Dunlop Trigger",
			Description: "Capo pegas untuk gitar akustik dan elektrik, bisa dipasang satu tangan.",
			PriceAmount: 250_000,
			Stock:       25,
			WeightGrams: 80,
			Images:      models.StringArray{"/uploads/product/seed/capo-dunlop.jpg"},
			IsActive:    true,
			SortOrder:   2,
		},
	}

	for _, product := range products {
		if product.CategoryID == 0 {
			stdLog.Printf("lewati produk %s: kategori tidak ditemukan", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("gagal membuat produk %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("produk dibuat: %s", product.Slug)
			}
		} else {
			stdLog.Printf("produk sudah ada: %s", product.Slug)
		}
	}

	stdLog.Printf("seed selesai")
}
