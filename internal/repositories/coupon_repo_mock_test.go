package repositories_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
)

func TestMockCouponRepository_IncrementUsage_NeverPassesLimit(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	assert.NoError(t, repo.Create(context.Background(), &models.Coupon{
		ID:           1,
		Name:         "Limited",
		Code:         "LIMITED",
		DiscountType: models.DiscountFixed,
		UsageLimit:   5,
		IsActive:     true,
	}))

	var wg sync.WaitGroup
	conflicts := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.IncrementUsage(context.Background(), 1); err != nil {
				conflicts <- err
			}
		}()
	}
	wg.Wait()
	close(conflicts)

	coupon, err := repo.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), coupon.UsedCount)

	failed := 0
	for err := range conflicts {
		var conflict *errs.ConflictError
		assert.ErrorAs(t, err, &conflict)
		failed++
	}
	assert.Equal(t, 15, failed)
}

func TestMockCouponRepository_GetActiveByCode_SkipsInactive(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	assert.NoError(t, repo.Create(context.Background(), &models.Coupon{
		ID: 1, Name: "Off", Code: "OFF", DiscountType: models.DiscountFixed, IsActive: false,
	}))

	_, err := repo.GetActiveByCode(context.Background(), "off")

	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMockSequenceRepository_UniqueMonotonicValues(t *testing.T) {
	repo := repositories.NewMockSequenceRepository()

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Next(context.Background(), repositories.SeqOrders)
			assert.NoError(t, err)
			mu.Lock()
			assert.False(t, seen[id], "duplicate sequence value %d", id)
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 100)

	// Independent sequences do not share counters.
	id, err := repo.Next(context.Background(), repositories.SeqCoupons)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
}
