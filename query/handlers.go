package query

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-resume/resume"
)

type pathResolver interface {
	Path(key string) (string, error)
}

// DownloadMetadataHandler returns artifact metadata.
type DownloadMetadataHandler struct {
	Store resume.ArtifactStore
}

func NewDownloadMetadataHandler(store resume.ArtifactStore) *DownloadMetadataHandler {
	return &DownloadMetadataHandler{Store: store}
}

func (h *DownloadMetadataHandler) Query(ctx context.Context, msg DownloadMetadata) (DownloadInfo, error) {
	if h == nil || h.Store == nil {
		return DownloadInfo{}, errors.New("artifact store is required", errors.CategoryInternal).
			WithTextCode("STORE_REQUIRED")
	}
	if err := msg.Validate(); err != nil {
		return DownloadInfo{}, err
	}

	reader, meta, err := h.Store.Open(ctx, msg.Key)
	if err != nil {
		return DownloadInfo{}, err
	}
	_ = reader.Close()

	info := DownloadInfo{Key: msg.Key, Meta: meta}
	if resolver, ok := h.Store.(pathResolver); ok {
		if p, err := resolver.Path(msg.Key); err == nil {
			info.Path = p
		}
	}
	return info, nil
}
