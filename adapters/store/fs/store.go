package storefs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/goliatone/go-resume/resume"
)

// DefaultLockRetry is the poll interval while waiting for an artifact lock.
const DefaultLockRetry = 25 * time.Millisecond

// Store keeps exported documents on disk. Writes go through a temp file and
// rename, under an exclusive lock file per artifact so concurrent processes
// sharing a root never interleave.
type Store struct {
	Root      string
	Now       func() time.Time
	LockRetry time.Duration
}

var _ resume.ArtifactStore = (*Store)(nil)

// NewStore creates a filesystem-backed artifact store.
func NewStore(root string) *Store {
	return &Store{Root: root, Now: time.Now}
}

// Put stores an artifact on disk.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, meta resume.ArtifactMeta) (resume.ArtifactRef, error) {
	pathOnDisk, err := s.checkKey(key)
	if err != nil {
		return resume.ArtifactRef{}, err
	}
	if r == nil {
		return resume.ArtifactRef{}, resume.NewError(resume.KindValidation, "artifact reader is required", nil)
	}

	dir := filepath.Dir(pathOnDisk)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return resume.ArtifactRef{}, resume.NewError(resume.KindInternal, "create artifact dir", err)
	}

	unlock, err := s.lock(ctx, pathOnDisk)
	if err != nil {
		return resume.ArtifactRef{}, err
	}
	defer unlock()

	tmp, err := os.CreateTemp(dir, ".resume-*")
	if err != nil {
		return resume.ArtifactRef{}, resume.NewError(resume.KindInternal, "create temp artifact", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return resume.ArtifactRef{}, resume.NewError(resume.KindInternal, "write artifact", err)
	}
	if err := tmp.Sync(); err != nil {
		return resume.ArtifactRef{}, err
	}
	if err := tmp.Close(); err != nil {
		return resume.ArtifactRef{}, err
	}
	if err := os.Rename(tmp.Name(), pathOnDisk); err != nil {
		return resume.ArtifactRef{}, resume.NewError(resume.KindInternal, "commit artifact", err)
	}

	meta.Size = size
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = s.now()
	}
	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(pathOnDisk))
	}
	if meta.Filename == "" {
		meta.Filename = filepath.Base(pathOnDisk)
	}
	if err := s.writeMeta(pathOnDisk, meta); err != nil {
		return resume.ArtifactRef{}, err
	}

	return resume.ArtifactRef{Key: key, Meta: meta}, nil
}

// Open reads an artifact from disk.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, resume.ArtifactMeta, error) {
	_ = ctx
	pathOnDisk, err := s.checkKey(key)
	if err != nil {
		return nil, resume.ArtifactMeta{}, err
	}

	file, err := os.Open(pathOnDisk)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, resume.ArtifactMeta{}, resume.NewError(resume.KindNotFound, fmt.Sprintf("artifact %q not found", key), err)
		}
		return nil, resume.ArtifactMeta{}, err
	}

	meta := s.readMeta(pathOnDisk)
	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(pathOnDisk))
	}
	if meta.Size == 0 {
		if info, err := file.Stat(); err == nil {
			meta.Size = info.Size()
			if meta.CreatedAt.IsZero() {
				meta.CreatedAt = info.ModTime()
			}
		}
	}

	return file, meta, nil
}

// Delete removes an artifact and its metadata.
func (s *Store) Delete(ctx context.Context, key string) error {
	pathOnDisk, err := s.checkKey(key)
	if err != nil {
		return err
	}
	unlock, err := s.lock(ctx, pathOnDisk)
	if err != nil {
		return err
	}
	defer unlock()

	_ = os.Remove(pathOnDisk)
	_ = os.Remove(metaPath(pathOnDisk))
	return nil
}

// Path returns the location of key on disk without touching the filesystem.
func (s *Store) Path(key string) (string, error) {
	return s.checkKey(key)
}

func (s *Store) checkKey(key string) (string, error) {
	if s == nil {
		return "", resume.NewError(resume.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return "", resume.NewError(resume.KindValidation, "store root is required", nil)
	}
	if strings.TrimSpace(key) == "" {
		return "", resume.NewError(resume.KindValidation, "artifact key is required", nil)
	}
	return s.resolvePath(key)
}

func (s *Store) resolvePath(key string) (string, error) {
	for _, segment := range strings.Split(filepath.ToSlash(key), "/") {
		if segment == ".." {
			return "", resume.NewError(resume.KindValidation, "artifact key escapes root", nil)
		}
	}
	clean := path.Clean("/" + filepath.ToSlash(key))
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || rel == "." {
		return "", resume.NewError(resume.KindValidation, "invalid artifact key", nil)
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", resume.NewError(resume.KindValidation, "artifact key escapes root", nil)
	}
	return target, nil
}

func (s *Store) lock(ctx context.Context, pathOnDisk string) (func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	retry := s.LockRetry
	if retry <= 0 {
		retry = DefaultLockRetry
	}
	fl := flock.New(lockPath(pathOnDisk))
	locked, err := fl.TryLockContext(ctx, retry)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, resume.NewError(resume.KindInternal, "lock artifact", err)
	}
	if !locked {
		return nil, resume.NewError(resume.KindBusy, "artifact is locked", nil)
	}
	return func() {
		_ = fl.Unlock()
	}, nil
}

func (s *Store) writeMeta(pathOnDisk string, meta resume.ArtifactMeta) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	dir := filepath.Dir(pathOnDisk)
	tmp, err := os.CreateTemp(dir, ".meta-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(payload); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), metaPath(pathOnDisk))
}

func (s *Store) readMeta(pathOnDisk string) resume.ArtifactMeta {
	data, err := os.ReadFile(metaPath(pathOnDisk))
	if err != nil {
		return resume.ArtifactMeta{}
	}
	var meta resume.ArtifactMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return resume.ArtifactMeta{}
	}
	return meta
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func metaPath(pathOnDisk string) string {
	return pathOnDisk + ".meta.json"
}

func lockPath(pathOnDisk string) string {
	return pathOnDisk + ".lock"
}
