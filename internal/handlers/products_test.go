package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m7real/ex-mobile-server/internal/models"
)

func TestListProductsByCategory(t *testing.T) {
	env := newTestEnv(t)
	_, auth := env.user(t, "b@x.com", models.RoleBuyer)
	env.store.AddProduct(models.Product{CategoryID: "C1", Status: models.StatusAvailable, PurchasedYear: 2020})
	env.store.AddProduct(models.Product{CategoryID: "C1", Status: models.StatusAvailable, PurchasedYear: 2018})
	env.store.AddProduct(models.Product{CategoryID: "C1", Status: models.StatusSold, PurchasedYear: 2020})
	env.store.AddProduct(models.Product{CategoryID: "C2", Status: models.StatusAvailable, PurchasedYear: 2020})

	resp, body := env.do(t, http.MethodGet, "/products?category=C1", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.Product
	decode(t, body, &products)
	require.Len(t, products, 2)
	year := time.Now().Year()
	for _, p := range products {
		assert.Equal(t, "C1", p.CategoryID)
		assert.Equal(t, models.StatusAvailable, p.Status)
		assert.Equal(t, year-p.PurchasedYear, p.UsedYears)
	}
}

func TestListProductsForAnotherSeller(t *testing.T) {
	env := newTestEnv(t)
	_, auth := env.user(t, "s@x.com", models.RoleSeller)
	env.store.AddProduct(models.Product{SellerEmail: "o@x.com"})

	resp, body := env.do(t, http.MethodGet, "/products?email=o@x.com", nil, auth)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"message":"forbidden access"}`, string(body))
	assert.Zero(t, env.store.ProductQueries)

	resp, body = env.do(t, http.MethodGet, "/products?email=s@x.com", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestListProductsRejectsBadReportedFlag(t *testing.T) {
	env := newTestEnv(t)
	_, auth := env.user(t, "a@x.com", models.RoleAdmin)

	resp, _ := env.do(t, http.MethodGet, "/products?reported=maybe", nil, auth)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAdvertisedIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddProduct(models.Product{Advertised: true, Status: models.StatusAvailable, PurchasedYear: 2022})
	env.store.AddProduct(models.Product{Status: models.StatusAvailable, PurchasedYear: 2022})

	resp, body := env.do(t, http.MethodGet, "/products/advertised", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decode(t, body, &products)
	assert.Len(t, products, 1)
}

func TestAdvertiseProduct(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.user(t, "s@x.com", models.RoleSeller)
	_, other := env.user(t, "o@x.com", models.RoleSeller)
	id := env.store.AddProduct(models.Product{SellerEmail: "s@x.com"})
	path := "/products/" + id.Hex()

	mismatched := []struct {
		name string
		auth string
		body map[string]interface{}
	}{
		{"other caller", other, advertiseBody(id.Hex(), "o@x.com")},
		{"body id", owner, advertiseBody(primitive.NewObjectID().Hex(), "s@x.com")},
		{"body email", owner, advertiseBody(id.Hex(), "o@x.com")},
	}
	for _, tt := range mismatched {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := env.do(t, http.MethodPut, path, tt.body, tt.auth)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			p, _ := env.store.Product(id)
			assert.False(t, p.Advertised)
		})
	}

	resp, body := env.do(t, http.MethodPut, path, advertiseBody(id.Hex(), "s@x.com"), owner)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"acknowledged":true,"matchedCount":1,"modifiedCount":1}`, string(body))
	p, _ := env.store.Product(id)
	assert.True(t, p.Advertised)
}

func advertiseBody(id, email string) map[string]interface{} {
	return map[string]interface{}{
		"info":    "advertise",
		"product": map[string]string{"_id": id, "sellerEmail": email},
	}
}

func TestReportAndUnknownInfo(t *testing.T) {
	env := newTestEnv(t)
	_, buyer := env.user(t, "b@x.com", models.RoleBuyer)
	id := env.store.AddProduct(models.Product{SellerEmail: "s@x.com"})

	resp, _ := env.do(t, http.MethodPut, "/products/"+id.Hex(), map[string]string{"info": "reported"}, buyer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p, _ := env.store.Product(id)
	assert.True(t, p.Reported)

	resp, _ = env.do(t, http.MethodPut, "/products/"+id.Hex(), map[string]string{"info": "sold"}, buyer)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/products/not-an-id", map[string]string{"info": "reported"}, buyer)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteProductRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.user(t, "s@x.com", models.RoleSeller)
	_, other := env.user(t, "o@x.com", models.RoleSeller)
	_, admin := env.user(t, "a@x.com", models.RoleAdmin)
	first := env.store.AddProduct(models.Product{SellerEmail: "s@x.com"})
	second := env.store.AddProduct(models.Product{SellerEmail: "s@x.com"})

	resp, _ := env.do(t, http.MethodDelete, "/products/"+first.Hex(), nil, other)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.do(t, http.MethodDelete, "/products/"+first.Hex(), nil, owner)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, string(body))

	resp, _ = env.do(t, http.MethodDelete, "/products/"+first.Hex(), nil, owner)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/products/"+second.Hex(), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	_, seller := env.user(t, "s@x.com", models.RoleSeller)

	resp, body := env.do(t, http.MethodPost, "/products", map[string]interface{}{"categoryId": "c1"}, seller)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "name")
}

func TestUploadProductImage(t *testing.T) {
	env := newTestEnv(t)
	_, seller := env.user(t, "s@x.com", models.RoleSeller)
	id := env.store.AddProduct(models.Product{SellerEmail: "s@x.com"})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="phone.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/"+id.Hex()+"/image", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, seller)

	resp, body := env.send(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	p, _ := env.store.Product(id)
	assert.NotEmpty(t, p.Image)
	assert.Equal(t, 1, env.objects.Len())
}
