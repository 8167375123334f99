package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
	"github.com/m7real/ex-mobile-server/internal/testutils"
)

const (
	sellerEmail = "seller@x.com"
	otherEmail  = "other@x.com"
	adminEmail  = "admin@x.com"
)

func newProductService(t *testing.T) (*services.ProductService, *testutils.MemStore) {
	t.Helper()
	store := testutils.NewMemStore()
	store.AddUser(models.User{Email: sellerEmail, Name: "Sam", Role: models.RoleSeller, Verified: true})
	store.AddUser(models.User{Email: otherEmail, Role: models.RoleSeller})
	store.AddUser(models.User{Email: adminEmail, Role: models.RoleAdmin})
	svc := services.NewProductService(store, store, services.NewAccessService(store))
	svc.SetClock(func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) })
	return svc, store
}

func TestListByCategoryComputesUsedYears(t *testing.T) {
	svc, store := newProductService(t)
	store.AddProduct(models.Product{CategoryID: "c1", Status: models.StatusAvailable, PurchasedYear: 2021})
	store.AddProduct(models.Product{CategoryID: "c1", Status: models.StatusSold, PurchasedYear: 2020})
	store.AddProduct(models.Product{CategoryID: "c2", Status: models.StatusAvailable, PurchasedYear: 2019})

	products, err := svc.List(context.Background(), services.NewIdentity(otherEmail), services.ProductQuery{Category: "c1"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "c1", products[0].CategoryID)
	assert.Equal(t, models.StatusAvailable, products[0].Status)
	assert.Equal(t, 3, products[0].UsedYears)
}

func TestListByEmailMustBeCaller(t *testing.T) {
	svc, store := newProductService(t)

	_, err := svc.List(context.Background(), services.NewIdentity(otherEmail), services.ProductQuery{Email: sellerEmail})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Zero(t, store.ProductQueries)
}

func TestListFilterPrecedence(t *testing.T) {
	svc, store := newProductService(t)
	reported := true
	store.AddProduct(models.Product{SellerEmail: sellerEmail, Reported: true, PurchasedYear: 2020})
	store.AddProduct(models.Product{SellerEmail: otherEmail, Reported: true, PurchasedYear: 2020})
	store.AddProduct(models.Product{SellerEmail: sellerEmail, PurchasedYear: 2020})

	products, err := svc.List(context.Background(), services.NewIdentity(otherEmail),
		services.ProductQuery{Reported: &reported, Email: sellerEmail})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = svc.List(context.Background(), services.NewIdentity(sellerEmail), services.ProductQuery{Email: sellerEmail})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = svc.List(context.Background(), services.NewIdentity(sellerEmail), services.ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestListAdvertised(t *testing.T) {
	svc, store := newProductService(t)
	store.AddProduct(models.Product{Advertised: true, Status: models.StatusAvailable, PurchasedYear: 2022})
	store.AddProduct(models.Product{Advertised: true, Status: models.StatusSold, PurchasedYear: 2022})
	store.AddProduct(models.Product{Status: models.StatusAvailable, PurchasedYear: 2022})

	products, err := svc.ListAdvertised(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].UsedYears)
}

func TestCreateProductStampsSeller(t *testing.T) {
	svc, store := newProductService(t)

	res, err := svc.Create(context.Background(), services.NewIdentity(sellerEmail), models.Product{
		Name:          "Pixel 6",
		CategoryID:    "c1",
		SellerEmail:   "spoof@x.com",
		PurchasedYear: 2022,
		ResalePrice:   300,
		Advertised:    true,
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	id, err := primitive.ObjectIDFromHex(res.InsertedID)
	require.NoError(t, err)
	stored, ok := store.Product(id)
	require.True(t, ok)
	assert.Equal(t, sellerEmail, stored.SellerEmail)
	assert.Equal(t, "Sam", stored.SellerName)
	assert.True(t, stored.SellerVerified)
	assert.Equal(t, models.StatusAvailable, stored.Status)
	assert.False(t, stored.Advertised)
	assert.False(t, stored.Posted.IsZero())
}

func TestCreateProductValidates(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.Create(context.Background(), services.NewIdentity(sellerEmail), models.Product{CategoryID: "c1"})
	require.ErrorIs(t, err, services.ErrBadRequest)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "purchasedYear")
}

func TestAdvertise(t *testing.T) {
	svc, store := newProductService(t)
	id := store.AddProduct(models.Product{SellerEmail: sellerEmail})
	ctx := context.Background()

	mismatches := []struct {
		name   string
		caller string
		ref    services.ProductRef
	}{
		{"body id differs", sellerEmail, services.ProductRef{ID: primitive.NewObjectID().Hex(), SellerEmail: sellerEmail}},
		{"body email differs", sellerEmail, services.ProductRef{ID: id.Hex(), SellerEmail: otherEmail}},
		{"not the owner", otherEmail, services.ProductRef{ID: id.Hex(), SellerEmail: otherEmail}},
	}
	for _, tt := range mismatches {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, services.NewIdentity(tt.caller), id,
				services.ProductUpdate{Info: services.InfoAdvertise, Product: tt.ref})
			assert.ErrorIs(t, err, services.ErrForbidden)
			stored, _ := store.Product(id)
			assert.False(t, stored.Advertised)
		})
	}

	res, err := svc.Update(ctx, services.NewIdentity(sellerEmail), id, services.ProductUpdate{
		Info:    services.InfoAdvertise,
		Product: services.ProductRef{ID: id.Hex(), SellerEmail: sellerEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
	stored, _ := store.Product(id)
	assert.True(t, stored.Advertised)
}

func TestAdvertiseMissingProduct(t *testing.T) {
	svc, _ := newProductService(t)
	id := primitive.NewObjectID()

	_, err := svc.Update(context.Background(), services.NewIdentity(sellerEmail), id, services.ProductUpdate{
		Info:    services.InfoAdvertise,
		Product: services.ProductRef{ID: id.Hex(), SellerEmail: sellerEmail},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestReportByAnyCaller(t *testing.T) {
	svc, store := newProductService(t)
	id := store.AddProduct(models.Product{SellerEmail: sellerEmail})

	res, err := svc.Update(context.Background(), services.NewIdentity("stranger@x.com"), id,
		services.ProductUpdate{Info: services.InfoReported})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	stored, _ := store.Product(id)
	assert.True(t, stored.Reported)

	_, err = svc.Update(context.Background(), services.NewIdentity(otherEmail), primitive.NewObjectID(),
		services.ProductUpdate{Info: services.InfoReported})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateUnknownInfo(t *testing.T) {
	svc, store := newProductService(t)
	id := store.AddProduct(models.Product{SellerEmail: sellerEmail})

	_, err := svc.Update(context.Background(), services.NewIdentity(sellerEmail), id, services.ProductUpdate{Info: "sold"})
	assert.ErrorIs(t, err, services.ErrBadRequest)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		svc, store := newProductService(t)
		id := store.AddProduct(models.Product{SellerEmail: sellerEmail})
		res, err := svc.Delete(ctx, services.NewIdentity(sellerEmail), id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
		_, ok := store.Product(id)
		assert.False(t, ok)
	})

	t.Run("admin", func(t *testing.T) {
		svc, store := newProductService(t)
		id := store.AddProduct(models.Product{SellerEmail: sellerEmail})
		res, err := svc.Delete(ctx, services.NewIdentity(adminEmail), id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
	})

	t.Run("stranger", func(t *testing.T) {
		svc, store := newProductService(t)
		id := store.AddProduct(models.Product{SellerEmail: sellerEmail})
		_, err := svc.Delete(ctx, services.NewIdentity(otherEmail), id)
		assert.ErrorIs(t, err, services.ErrForbidden)
		_, ok := store.Product(id)
		assert.True(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		svc, _ := newProductService(t)
		_, err := svc.Delete(ctx, services.NewIdentity(sellerEmail), primitive.NewObjectID())
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
