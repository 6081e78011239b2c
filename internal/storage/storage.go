// Package storage is the document/file storage collaborator. The engine only
// keeps {name, url} pairs; where the bytes actually live is behind the
// DocumentStorage interface.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"

	"github.com/rs/zerolog"

	"github.com/faturado/billing-engine/internal/logger"
)

// DocumentStorage stores raw document bytes under a client-scoped path and
// returns a retrievable URL.
type DocumentStorage interface {
	Store(ctx context.Context, clientID, name string, data []byte) (string, error)
	Remove(ctx context.Context, url string) error
}

// LocalStorage simulates an object store: bytes are accepted and dropped, the
// returned URL is the deterministic path a real store would serve the file
// from. Swapping in S3 or GCS means implementing DocumentStorage, nothing
// else changes.
type LocalStorage struct {
	log zerolog.Logger
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{log: logger.WithComponent("storage")}
}

func (s *LocalStorage) Store(ctx context.Context, clientID, name string, data []byte) (string, error) {
	u := fmt.Sprintf("/documents/%s/%s", url.PathEscape(clientID), url.PathEscape(path.Base(name)))

	s.log.Debug().
		Str("client_id", clientID).
		Str("name", name).
		Int("bytes", len(data)).
		Str("url", u).
		Msg("stored document")

	return u, nil
}

func (s *LocalStorage) Remove(ctx context.Context, url string) error {
	s.log.Debug().Str("url", url).Msg("removed document")
	return nil
}

// DataURI inlines small images (avatar photos) as a data URI so the caller
// gets an immediately renderable URL without a storage round trip.
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
