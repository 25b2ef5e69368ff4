package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewProductService(productRepo, categoryRepo), db
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Yamaha F310", "yamaha-f310"},
		{"  Senar D'Addario EXL110  ", "senar-d-addario-exl110"},
		{"Gitar--Bass!!", "gitar-bass"},
		{"ALL CAPS", "all-caps"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCreateProductGeneratesSlug(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := &models.Category{Slug: "akustik", Name: "Gitar Akustik"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        "Yamaha F310",
		PriceAmount: 1_450_000,
		Stock:       10,
		WeightGrams: 2800,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Slug != "yamaha-f310" {
		t.Fatalf("slug want yamaha-f310, got %s", product.Slug)
	}
	if !product.IsActive {
		t.Fatalf("new product should default to active")
	}

	if _, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        "Yamaha F310",
		PriceAmount: 1_450_000,
		Stock:       5,
		WeightGrams: 2800,
	}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := &models.Category{Slug: "elektrik", Name: "Gitar Elektrik"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := svc.CreateProduct(ProductInput{
		CategoryID: category.ID, Name: "Gratis", PriceAmount: 0, Stock: 1, WeightGrams: 100,
	}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid for zero price, got %v", err)
	}

	if _, err := svc.CreateProduct(ProductInput{
		CategoryID: 9999, Name: "Tanpa Kategori", PriceAmount: 100_000, Stock: 1, WeightGrams: 100,
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestGetBySlugHidesInactive(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := &models.Category{Slug: "aksesoris", Name: "Aksesoris"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	inactive := false
	product, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        "Capo Dunlop",
		PriceAmount: 250_000,
		Stock:       5,
		WeightGrams: 80,
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := svc.GetBySlug(product.Slug); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product must be hidden, got %v", err)
	}

	listed, total, err := svc.ListPublic(repository.ProductListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 0 || len(listed) != 0 {
		t.Fatalf("inactive product must not be listed, got total=%d", total)
	}

	_, adminTotal, err := svc.ListAdmin(repository.ProductListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if adminTotal != 1 {
		t.Fatalf("back office must see inactive products, got total=%d", adminTotal)
	}
}

func TestUpdateProductKeepsOwnSlug(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := &models.Category{Slug: "bass", Name: "Gitar Bass"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        "Ibanez GSR200",
		PriceAmount: 4_200_000,
		Stock:       5,
		WeightGrams: 3800,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// Re-submitting the same slug on update is not a conflict.
	updated, err := svc.UpdateProduct(product.ID, ProductInput{
		CategoryID:  category.ID,
		Slug:        product.Slug,
		Name:        "Ibanez GSR200",
		PriceAmount: 4_500_000,
		Stock:       4,
		WeightGrams: 3800,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.PriceAmount != 4_500_000 {
		t.Fatalf("price want 4500000, got %d", updated.PriceAmount)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := &models.Category{Slug: "hapus", Name: "Hapus"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        "Akan Dihapus",
		PriceAmount: 100_000,
		Stock:       1,
		WeightGrams: 100,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.DeleteProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on double delete, got %v", err)
	}
}
