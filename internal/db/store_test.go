package db

import (
	"testing"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ services.Store = (*Store)(nil)

func TestProductFilter(t *testing.T) {
	reported := true
	advertised := false

	tests := []struct {
		name string
		in   models.ProductFilter
		want bson.M
	}{
		{"empty", models.ProductFilter{}, bson.M{}},
		{
			"category",
			models.ProductFilter{CategoryID: "c1", Status: models.StatusAvailable},
			bson.M{"categoryId": "c1", "status": models.StatusAvailable},
		},
		{"reported", models.ProductFilter{Reported: &reported}, bson.M{"reported": true}},
		{"seller", models.ProductFilter{SellerEmail: "s@x.com"}, bson.M{"sellerEmail": "s@x.com"}},
		{"advertised false", models.ProductFilter{Advertised: &advertised}, bson.M{"advertised": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productFilter(tt.in))
		})
	}
}

func TestOwnedBy(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": id}, ownedBy(id, ""))
	assert.Equal(t, bson.M{"_id": id, "sellerEmail": "s@x.com"}, ownedBy(id, "s@x.com"))
}

func TestRoleFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, roleFilter(""))
	assert.Equal(t, bson.M{"role": models.RoleSeller}, roleFilter(models.RoleSeller))

	buyers := roleFilter(models.RoleBuyer)["$or"]
	assert.Len(t, buyers, 3)
	assert.Contains(t, buyers, bson.M{"role": bson.M{"$exists": false}})
}
