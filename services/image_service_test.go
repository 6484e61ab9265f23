package services

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

func testDataURL(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestDBImageStore_Store(t *testing.T) {
	store := &DBImageStore{}

	dataURL := testDataURL("artwork-bytes")
	stored, err := store.Store(dataURL)

	assert.NoError(t, err)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, dataURL, stored.Data, "inline storage keeps the payload as-is")
	assert.True(t, strings.HasSuffix(stored.Filename, ".png"))
}

func TestDBImageStore_RejectsInvalidPayload(t *testing.T) {
	store := &DBImageStore{}

	_, err := store.Store("not-a-data-url")
	assert.Error(t, err)

	_, err = store.Store("data:text/plain;base64,aGVsbG8=")
	assert.Error(t, err)
}

func TestDBImageStore_DeleteIsNoop(t *testing.T) {
	store := &DBImageStore{}
	assert.NoError(t, store.Delete(&models.OrderImage{Data: testDataURL("x")}))
}

func TestS3ImageStore_Store(t *testing.T) {
	mock := NewMockS3Service()
	store := NewS3ImageStore(mock)

	stored, err := store.Store(testDataURL("artwork-bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.True(t, strings.HasPrefix(stored.Data, "uploads/"), "row keeps the object key")
	assert.True(t, mock.FileExists(stored.Data))
}

func TestS3ImageStore_Delete(t *testing.T) {
	mock := NewMockS3Service()
	store := NewS3ImageStore(mock)

	stored, err := store.Store(testDataURL("artwork-bytes"))
	assert.NoError(t, err)

	img := models.OrderImage{Data: stored.Data}
	assert.NoError(t, store.Delete(&img))
	assert.False(t, mock.FileExists(stored.Data))
}

func TestImageStoreSingleton(t *testing.T) {
	original := GetImageStore()
	defer SetImageStore(original)

	store := InitDBImageStore()
	assert.Same(t, store, GetImageStore())

	mockStore := NewS3ImageStore(NewMockS3Service())
	SetImageStore(mockStore)
	assert.Same(t, ImageStore(mockStore), GetImageStore())
}
