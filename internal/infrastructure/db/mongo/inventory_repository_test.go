package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/frcparts/components-api/internal/core/domain"
)

func TestInventoryPatchSet_Empty(t *testing.T) {
	assert.Empty(t, inventoryPatchSet(domain.TeamComponentPatch{}))
}

func TestInventoryPatchSet_OnlyGivenFields(t *testing.T) {
	qty := 3
	img := "https://example.com/neo.png"
	cad := "https://example.com/neo.step"

	set := inventoryPatchSet(domain.TeamComponentPatch{Quantity: &qty, ImageURL: &img, CADFileURL: &cad})

	assert.Equal(t, bson.M{
		"quantity":     3,
		"image_url":    img,
		"cad_file_url": cad,
	}, set)
}
