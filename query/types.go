package query

import (
	"strings"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-resume/resume"
)

// DownloadMetadata requests metadata for a stored export.
type DownloadMetadata struct {
	Key string
}

func (DownloadMetadata) Type() string { return "resume:download" }

func (msg DownloadMetadata) Validate() error {
	if strings.TrimSpace(msg.Key) == "" {
		return errors.New("artifact key is required", errors.CategoryValidation).
			WithTextCode("KEY_REQUIRED")
	}
	return nil
}

// DownloadInfo describes a stored export.
type DownloadInfo struct {
	Key  string              `json:"key"`
	Meta resume.ArtifactMeta `json:"meta"`
	// Path is set when the store keeps artifacts on a local filesystem.
	Path string `json:"path,omitempty"`
}
