package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
	"mawasim/internal/services"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	service := services.NewCartService(
		repositories.NewMockCartRepository(),
		productRepo,
		repositories.NewMockSequenceRepository(),
	)
	return service, productRepo
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, id int64, name string, price float64) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Product{
		ID:         id,
		Name:       name,
		Price:      price,
		Stock:      10,
		CategoryID: 1,
		MainImage:  "/images/" + name + ".jpg",
		IsActive:   true,
	})
	assert.NoError(t, err)
}

func TestCartService_AddItem_SnapshotsProduct(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	item, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:    "user-1",
		ProductID: 1,
		Quantity:  2,
	})

	assert.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "teapot", item.ProductName)
	assert.Equal(t, 97.0, item.Price)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartService_AddItem_MergesSameProductAndOptions(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	opts := map[string]string{"color": "blue"}
	first, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:          "user-1",
		ProductID:       1,
		Quantity:        1,
		SelectedOptions: opts,
	})
	assert.NoError(t, err)

	second, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:          "user-1",
		ProductID:       1,
		Quantity:        2,
		SelectedOptions: map[string]string{"color": "blue"},
	})
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	lines, err := service.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCartService_AddItem_DifferentOptionsMakeSeparateLines(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	_, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:          "user-1",
		ProductID:       1,
		Quantity:        1,
		SelectedOptions: map[string]string{"color": "blue"},
	})
	assert.NoError(t, err)

	_, err = service.AddItem(context.Background(), services.AddItemInput{
		UserID:          "user-1",
		ProductID:       1,
		Quantity:        1,
		SelectedOptions: map[string]string{"color": "red"},
	})
	assert.NoError(t, err)

	lines, err := service.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCartService_AddItem_AttachmentsOverwriteOnlyWhenNonEmpty(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "mug", 15)

	first, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:      "user-1",
		ProductID:   1,
		Quantity:    1,
		Attachments: models.Attachments{Text: "engrave this"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "engrave this", first.Attachments.Text)

	// Empty attachments on merge keep the existing ones.
	merged, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:    "user-1",
		ProductID: 1,
		Quantity:  1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "engrave this", merged.Attachments.Text)
}

func TestCartService_AddItem_RejectsZeroQuantity(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	_, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:    "user-1",
		ProductID: 1,
		Quantity:  0,
	})

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	service, _ := newCartFixture(t)

	_, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:    "user-1",
		ProductID: 99,
		Quantity:  1,
	})

	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCartService_AddItem_DefaultsToGuest(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	item, err := service.AddItem(context.Background(), services.AddItemInput{
		ProductID: 1,
		Quantity:  1,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.GuestUserID, item.UserID)
}

func TestCartService_UpdateItem(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	item, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:    "user-1",
		ProductID: 1,
		Quantity:  1,
	})
	assert.NoError(t, err)

	qty := 5
	updated, err := service.UpdateItem(context.Background(), "user-1", item.ID, services.UpdateItemInput{
		Quantity:        &qty,
		SelectedOptions: map[string]string{"size": "large"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "large", updated.SelectedOptions["size"])
	// Untouched fields survive the partial update.
	assert.Equal(t, "teapot", updated.ProductName)
}

func TestCartService_UpdateItem_NotFound(t *testing.T) {
	service, _ := newCartFixture(t)

	qty := 2
	_, err := service.UpdateItem(context.Background(), "user-1", 42, services.UpdateItemInput{Quantity: &qty})

	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCartService_RemoveItem_AbsentIsNotFound(t *testing.T) {
	service, _ := newCartFixture(t)

	err := service.RemoveItem(context.Background(), "user-1", 42)

	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCartService_Clear_EmptyCartSucceeds(t *testing.T) {
	service, _ := newCartFixture(t)

	assert.NoError(t, service.Clear(context.Background(), "user-1"))
	assert.NoError(t, service.Clear(context.Background(), "user-1"))
}

func TestCartService_List_NilProductForRemovedCatalogEntry(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "teapot", 97)

	_, err := service.AddItem(context.Background(), services.AddItemInput{
		UserID:    "user-1",
		ProductID: 1,
		Quantity:  1,
	})
	assert.NoError(t, err)

	assert.NoError(t, productRepo.Delete(context.Background(), 1))

	lines, err := service.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Nil(t, lines[0].Product)
}

func TestCartService_AddItem_ConcurrentAddsGetUniqueIDs(t *testing.T) {
	service, productRepo := newCartFixture(t)
	for i := int64(1); i <= 50; i++ {
		seedProduct(t, productRepo, i, "product", 10)
	}

	var wg sync.WaitGroup
	ids := make(chan int64, 50)
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(productID int64) {
			defer wg.Done()
			item, err := service.AddItem(context.Background(), services.AddItemInput{
				UserID:    "user-1",
				ProductID: productID,
				Quantity:  1,
			})
			assert.NoError(t, err)
			ids <- item.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate cart item id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 50)
}
