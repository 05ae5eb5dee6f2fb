package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"meterportal/internal/configxml"
	"meterportal/internal/logging"
	"meterportal/internal/model"
	"meterportal/internal/storage"
)

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadService writes participant files into storage and serves them back.
type UploadService interface {
	// Upload stores a batch under "<path>-<i>-<batch time>". Empty files are skipped.
	// When one file fails, the files already written by the batch are removed.
	Upload(ctx context.Context, user model.User, env string, number int, path string, files []UploadFile) ([]storage.ObjectInfo, error)

	// Download streams an object of the participant bucket.
	Download(ctx context.Context, user model.User, env string, number int, key string) (io.ReadCloser, storage.ObjectInfo, error)

	// PresignDownload returns a time-limited URL for an object of the participant bucket.
	PresignDownload(ctx context.Context, user model.User, env string, number int, key string) (string, error)
}

type uploadService struct {
	store    storage.Storage
	access   AccessService
	projects []string
	expiry   time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewUploadService constructs a new UploadService.
func NewUploadService(store storage.Storage, access AccessService, projects []string, presignExpiry time.Duration, now func() time.Time, log *zap.Logger) UploadService {
	if now == nil {
		now = time.Now
	}
	return &uploadService{
		store:    store,
		access:   access,
		projects: projects,
		expiry:   presignExpiry,
		now:      now,
		log:      logging.Component(log, "upload"),
	}
}

func (s *uploadService) Upload(ctx context.Context, user model.User, env string, number int, target string, files []UploadFile) ([]storage.ObjectInfo, error) {
	grant, err := authorize(ctx, s.access, s.projects, user, env, number)
	if err != nil {
		return nil, err
	}

	target = strings.TrimSpace(target)
	bucket, err := s.targetBucket(ctx, grant, model.BucketName(env, number), target)
	if err != nil {
		return nil, err
	}

	batchTime := s.now().UTC().Format(DataFileLayout)
	out := make([]storage.ObjectInfo, 0, len(files))
	for i, f := range files {
		if f.Reader == nil || f.Size == 0 {
			s.log.Warn("upload_skip_empty", zap.String("filename", f.Filename))
			continue
		}

		key := fmt.Sprintf("%s-%d-%s", target, i, batchTime)
		info, err := s.store.Put(ctx, bucket, key, f.Reader, storage.PutObjectOptions{
			Size:        f.Size,
			ContentType: f.ContentType,
			Metadata: map[string]string{
				"original-filename": f.Filename,
				"uploaded-by":       user.Email,
			},
		})
		if err != nil {
			if rbErr := s.rollback(ctx, bucket, out); rbErr != nil {
				return nil, fmt.Errorf("upload to storage: %v; rollback delete failed: %v", err, rbErr)
			}
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		out = append(out, info)
	}

	if len(out) == 0 {
		return nil, ErrEmptyBatch
	}
	s.log.Info("upload_batch_stored",
		zap.String("bucket", bucket),
		zap.String("path", target),
		zap.String("batch_time", batchTime),
		zap.Int("files", len(out)),
		zap.String("email", user.Email),
	)
	return out, nil
}

// targetBucket checks the upload path and returns the bucket it is written to.
// Files under config/ need an admin grant and stay in the participant bucket;
// raw data goes to the push connector's raw data location.
func (s *uploadService) targetBucket(ctx context.Context, grant model.Grant, bucket, target string) (string, error) {
	if target == "" || strings.Contains(target, "..") || strings.HasPrefix(target, "/") {
		return "", ErrPathNotAllowed
	}
	if strings.HasPrefix(target, configPrefix) {
		if !grant.IsAdmin() {
			return "", ErrForbidden
		}
		return bucket, nil
	}

	raw, err := storage.ReadText(ctx, s.store, bucket, model.ParticipantConfigFile)
	if err != nil {
		return "", fmt.Errorf("read participant config: %w", err)
	}
	doc, err := configxml.ParseString(raw)
	if err != nil {
		return "", fmt.Errorf("read participant config: %w", err)
	}
	for _, pc := range configxml.Participant(doc).Pushes {
		if pc.RawDataLocation.Path+"/raw-data" != target {
			continue
		}
		if pc.RawDataLocation.Bucket != "" {
			return pc.RawDataLocation.Bucket, nil
		}
		return bucket, nil
	}
	return "", ErrPathNotAllowed
}

func (s *uploadService) rollback(ctx context.Context, bucket string, written []storage.ObjectInfo) error {
	var errs []error
	for _, obj := range written {
		if err := s.store.Delete(ctx, bucket, obj.Key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *uploadService) Download(ctx context.Context, user model.User, env string, number int, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	bucket, key, err := s.object(ctx, user, env, number, key)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("get object: %w", err)
	}
	if path.Ext(key) == ".xml" {
		info.ContentType = "application/xml"
	}
	return rc, info, nil
}

func (s *uploadService) PresignDownload(ctx context.Context, user model.User, env string, number int, key string) (string, error) {
	bucket, key, err := s.object(ctx, user, env, number, key)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, bucket, key, s.expiry)
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return u, nil
}

func (s *uploadService) object(ctx context.Context, user model.User, env string, number int, key string) (string, string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", "", ErrKeyRequired
	}
	if _, err := authorize(ctx, s.access, s.projects, user, env, number); err != nil {
		return "", "", err
	}
	return model.BucketName(env, number), key, nil
}
