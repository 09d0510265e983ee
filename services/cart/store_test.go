package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"beautyboosters/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(template string, price, hours float64) models.CartItemInput {
	return models.CartItemInput{
		TemplateID:    template,
		Name:          "Makeup " + template,
		Category:      "makeup",
		BasePrice:     price,
		Duration:      hours,
		People:        1,
		Boosters:      1,
		FinalPrice:    price,
		TotalDuration: hours,
	}
}

func frozenClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestStore_TotalsTrackSurvivingItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryStorage(), nil)

	a, err := s.AddToCart(ctx, item("a", 500, 1))
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, item("b", 750, 1.5))
	require.NoError(t, err)
	c, err := s.AddToCart(ctx, item("c", 1200, 2))
	require.NoError(t, err)

	assert.True(t, s.RemoveFromCart(ctx, a.ID))
	assert.Equal(t, 2, s.GetItemCount())
	assert.Equal(t, 1950.0, s.GetTotalPrice())
	assert.Equal(t, 3.5, s.GetTotalDuration())

	assert.True(t, s.RemoveFromCart(ctx, c.ID))
	assert.Equal(t, 1, s.GetItemCount())
	assert.Equal(t, 750.0, s.GetTotalPrice())
	assert.Equal(t, 1.5, s.GetTotalDuration())
}

func TestStore_DuplicateTemplatesAreSeparateItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryStorage(), nil, WithClock(frozenClock()))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		it, err := s.AddToCart(ctx, item("same", 100, 1))
		require.NoError(t, err)
		assert.False(t, seen[it.ID], "id %s minted twice", it.ID)
		seen[it.ID] = true
	}
	assert.Equal(t, 50, s.GetItemCount())
	assert.Equal(t, 5000.0, s.GetTotalPrice())
}

func TestStore_MintedIDFormat(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryStorage(), nil, WithClock(frozenClock()))

	it, err := s.AddToCart(ctx, item("bryllup", 100, 1))
	require.NoError(t, err)
	assert.Equal(t, "bryllup-1714564800000-1", it.ID)
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryStorage(), nil)
	_, err := s.AddToCart(ctx, item("a", 100, 1))
	require.NoError(t, err)
	before := s.Items()

	assert.False(t, s.RemoveFromCart(ctx, "does-not-exist"))
	assert.Equal(t, before, s.Items())
}

func TestStore_RoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	s := NewStore(ctx, storage, nil)

	in := item("a", 2999, 3)
	in.Description = "Brud og to brudepiger"
	in.People = 3
	in.Boosters = 2
	in.GroupPricing = map[int]float64{1: 1499, 2: 2499, 3: 2999}
	_, err := s.AddToCart(ctx, in)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, item("b", 400, 0.5))
	require.NoError(t, err)

	restored := NewStore(ctx, storage, nil)
	assert.Equal(t, s.Items(), restored.Items())
}

func TestStore_ClearErasesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	s := NewStore(ctx, storage, nil)
	_, err := s.AddToCart(ctx, item("a", 100, 1))
	require.NoError(t, err)

	s.ClearCart(ctx)
	assert.Zero(t, s.GetItemCount())
	_, err = storage.Load(ctx)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestStore_MalformedRecordStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, []byte("not-json")))

	s := NewStore(ctx, storage, nil)
	assert.Zero(t, s.GetItemCount())
}

func TestStore_PersistsJSONArray(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	s := NewStore(ctx, storage, nil)
	added, err := s.AddToCart(ctx, item("a", 100, 1))
	require.NoError(t, err)

	raw, err := storage.Load(ctx)
	require.NoError(t, err)
	var persisted []models.CartItem
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, []models.CartItem{added}, persisted)
}

type failingStorage struct{}

var errStorageDown = errors.New("boom")

func (failingStorage) Load(context.Context) ([]byte, error) {
	return nil, errStorageDown
}

func (failingStorage) Save(context.Context, []byte) error {
	return errStorageDown
}

func (failingStorage) Delete(context.Context) error {
	return errStorageDown
}

func TestStore_StorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, failingStorage{}, nil)

	it, err := s.AddToCart(ctx, item("a", 100, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, s.GetItemCount())
	assert.True(t, s.RemoveFromCart(ctx, it.ID))
	s.ClearCart(ctx)
	assert.Zero(t, s.GetItemCount())
}

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CartItemInput)
		ok     bool
	}{
		{"valid", func(*models.CartItemInput) {}, true},
		{"missing template", func(in *models.CartItemInput) { in.TemplateID = "" }, false},
		{"missing name", func(in *models.CartItemInput) { in.Name = "" }, false},
		{"zero people", func(in *models.CartItemInput) { in.People = 0 }, false},
		{"zero boosters", func(in *models.CartItemInput) { in.Boosters = 0 }, false},
		{"negative price", func(in *models.CartItemInput) { in.FinalPrice = -1 }, false},
		{"negative duration", func(in *models.CartItemInput) { in.TotalDuration = -0.5 }, false},
		{"party size 5", func(in *models.CartItemInput) { in.GroupPricing = map[int]float64{5: 100} }, false},
		{"party sizes 1..4", func(in *models.CartItemInput) { in.GroupPricing = map[int]float64{1: 1, 4: 4} }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := item("x", 100, 1)
			tc.mutate(&in)
			err := ValidateInput(in)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidItem)
			}
		})
	}
}
