package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/dharmasatrya/skysearch/internal/models"
)

const keyPrefix = "flight:"

// Cache holds the itinerary list fetched for one search action so the
// results view can be re-filtered without calling the API again.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.Itinerary, bool)
	Set(ctx context.Context, key string, its []models.Itinerary) error
	Close() error
}

// Key identifies a search by the parameters that change what the API
// returns. Filters and sort order are deliberately excluded.
func Key(req models.SearchRequest) string {
	keyData := struct {
		OriginSkyID         string
		OriginEntityID      string
		DestinationSkyID    string
		DestinationEntityID string
		Date                string
		ReturnDate          string
		Adults              int
		CabinClass          string
	}{
		OriginSkyID:         strings.ToUpper(req.OriginSkyID),
		OriginEntityID:      req.OriginEntityID,
		DestinationSkyID:    strings.ToUpper(req.DestinationSkyID),
		DestinationEntityID: req.DestinationEntityID,
		Date:                req.Date,
		Adults:              req.Adults,
		CabinClass:          strings.ToLower(req.CabinClass),
	}

	if req.ReturnDate != nil {
		keyData.ReturnDate = *req.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}

// IsKey reports whether s looks like a value produced by Key.
func IsKey(s string) bool {
	hexPart, ok := strings.CutPrefix(s, keyPrefix)
	if !ok || len(hexPart) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hexPart)
	return err == nil
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string) ([]models.Itinerary, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, key string, its []models.Itinerary) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
