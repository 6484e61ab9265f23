package services

import (
	"fmt"
	"time"

	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
	"github.com/elydayvsontjs-creator/crmallesongrafica/utils"
)

// StoredImage is the result of persisting one image payload: the values to
// keep on the order_images row.
type StoredImage struct {
	Filename    string
	ContentType string
	Data        string
}

// ImageStore abstracts where image payloads live. The default store keeps
// the payload inline on the row; the S3 store offloads it to a bucket and
// keeps only the object key.
type ImageStore interface {
	// Store validates an inline data-URL payload and returns the row values
	Store(dataURL string) (*StoredImage, error)

	// Delete releases any external storage held by the image row
	Delete(img *models.OrderImage) error
}

var imageStoreInstance ImageStore

// InitDBImageStore initializes the inline (database row) image store
func InitDBImageStore() ImageStore {
	imageStoreInstance = &DBImageStore{}
	return imageStoreInstance
}

// GetImageStore returns the initialized image store instance
func GetImageStore() ImageStore {
	return imageStoreInstance
}

// SetImageStore sets the image store instance (primarily for testing)
func SetImageStore(store ImageStore) {
	imageStoreInstance = store
}

// DBImageStore keeps image payloads inline in the order_images table
type DBImageStore struct{}

// Store validates the payload and returns it unchanged for inline storage
func (s *DBImageStore) Store(dataURL string) (*StoredImage, error) {
	if err := utils.ValidateImagePayload(dataURL); err != nil {
		return nil, err
	}

	contentType, _, err := utils.ParseDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	return &StoredImage{
		Filename:    fmt.Sprintf("img_%d.%s", time.Now().UnixNano(), utils.ImageExtension(contentType)),
		ContentType: contentType,
		Data:        dataURL,
	}, nil
}

// Delete is a no-op for inline storage; deleting the row drops the payload
func (s *DBImageStore) Delete(img *models.OrderImage) error {
	return nil
}
