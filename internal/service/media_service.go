package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	// Decoders for the formats the dialog accepts. SVG has no decoder on
	// purpose: vector images have no natural pixel size.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"editor-media-backend/internal/background"
	"editor-media-backend/internal/models"
	"editor-media-backend/internal/repository"
	"editor-media-backend/pkg/cache"
	"editor-media-backend/pkg/logger"
	"editor-media-backend/pkg/validator"
	"editor-media-backend/pkg/weburl"
)

const (
	mediaCachePrefix = "media:url:"
	mediaCacheTTL    = time.Hour

	// remote probes only need the image header, not the full payload
	probeReadLimit = 1 << 20
	probeTimeout   = 10 * time.Second
)

type MediaService struct {
	repo      repository.MediaRepository
	scheduler *background.Scheduler
	cache     *cache.Cache

	uploadDir  string
	rootURL    string
	maxSize    int64
	maxRetries int

	client *http.Client
}

func NewMediaService(repo repository.MediaRepository, scheduler *background.Scheduler, cacheService *cache.Cache, uploadDir, rootURL string, maxSize int64, maxRetries int) *MediaService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	return &MediaService{
		repo:       repo,
		scheduler:  scheduler,
		cache:      cacheService,
		uploadDir:  uploadDir,
		rootURL:    rootURL,
		maxSize:    maxSize,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: probeTimeout},
	}
}

// UploadImage stores the file, sniffs its real content type and captures
// the natural dimensions once, at load time.
func (s *MediaService) UploadImage(file *multipart.FileHeader, preferredName string) (*models.MediaImage, error) {
	if file == nil {
		return nil, ErrInvalidName
	}
	if !validator.ValidateFileSize(file.Size, s.maxSize) {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !validator.ValidateImageExtension(ext) {
		return nil, ErrUnsupportedType
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return nil, err
	}
	head = head[:n]

	detected := validator.DetectFileType(head)
	if detected != "" && !validator.ValidateImageContentType(detected) {
		return nil, ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := s.generateFilename(file.Filename, preferredName, ext)
	filePath := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	width, height := probeLocalFile(filePath)

	media := &models.MediaImage{
		Filename:      filename,
		URL:           "/uploads/" + filename,
		MimeType:      detected,
		Size:          file.Size,
		NaturalWidth:  width,
		NaturalHeight: height,
	}
	if err := s.repo.Create(media); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	return media, nil
}

// Resolve returns the media record for the given editor URL, creating one
// for previously unseen external images. When a remote image cannot be
// probed right away the record is stored with pending dimensions and a
// background probe is scheduled; callers treat the unknown size as a
// deferred signal, not a failure.
func (s *MediaService) Resolve(ctx context.Context, rawURL string) (*models.MediaImage, error) {
	normalized, err := weburl.Normalize(rawURL, s.rootURL)
	if err != nil {
		return nil, err
	}

	lookupURL := normalized
	local := weburl.IsLocal(normalized, s.rootURL)
	if local {
		lookupURL = weburl.RelativeToRoot(normalized, s.rootURL)
	}

	var cached models.MediaImage
	if err := s.cache.Get(mediaCachePrefix+lookupURL, &cached); err == nil {
		return &cached, nil
	}

	media, err := s.repo.GetByURL(lookupURL)
	if err == nil {
		s.cacheMedia(media)
		return media, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if local {
		return s.resolveLocal(lookupURL)
	}
	return s.resolveExternal(ctx, lookupURL)
}

func (s *MediaService) resolveLocal(url string) (*models.MediaImage, error) {
	filename := path.Base(url)
	if filename == "." || filename == "/" {
		return nil, ErrMediaNotFound
	}

	filePath := filepath.Join(s.uploadDir, filename)
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, ErrMediaNotFound
	}

	width, height := probeLocalFile(filePath)
	media := &models.MediaImage{
		Filename:      filename,
		URL:           url,
		Size:          info.Size(),
		NaturalWidth:  width,
		NaturalHeight: height,
	}
	if err := s.repo.Upsert(media); err != nil {
		return nil, err
	}

	s.cacheMedia(media)
	return media, nil
}

func (s *MediaService) resolveExternal(ctx context.Context, url string) (*models.MediaImage, error) {
	width, height, mimeType, probeErr := s.probeRemote(ctx, url)

	media := &models.MediaImage{
		URL:           url,
		MimeType:      mimeType,
		NaturalWidth:  width,
		NaturalHeight: height,
		External:      true,
		ProbePending:  probeErr != nil,
	}
	if err := s.repo.Upsert(media); err != nil {
		return nil, err
	}

	if probeErr != nil {
		logger.Warn("Remote image probe deferred", map[string]interface{}{"url": url, "reason": probeErr.Error()})
		s.scheduleProbe(media)
		return media, nil
	}

	s.cacheMedia(media)
	return media, nil
}

func (s *MediaService) probeRemote(ctx context.Context, url string) (int, int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, probeReadLimit))
	if err != nil {
		return 0, 0, contentType, fmt.Errorf("%w: %v", ErrProbeFailed, err)
	}

	return cfg.Width, cfg.Height, contentType, nil
}

// scheduleProbe queues a retrying background probe for a record whose
// dimensions are still pending.
func (s *MediaService) scheduleProbe(media *models.MediaImage) {
	if s.scheduler == nil || media == nil {
		return
	}

	id := media.ID
	url := media.URL
	err := s.scheduler.ScheduleUnique(background.Job{
		Name:    fmt.Sprintf("media-probe-%d", id),
		Delay:   30 * time.Second,
		Timeout: probeTimeout,
		RetryPolicy: background.RetryPolicy{
			MaxRetries: s.maxRetries,
			Backoff:    time.Minute,
		},
		Run: func(ctx context.Context) error {
			width, height, _, err := s.probeRemote(ctx, url)
			if err != nil {
				return err
			}
			if err := s.repo.UpdateDimensions(id, width, height, false); err != nil {
				return err
			}
			return s.cache.Delete(mediaCachePrefix + url)
		},
	})
	if err != nil && !errors.Is(err, background.ErrJobAlreadyScheduled) {
		logger.Error(err, "Failed to schedule media probe", map[string]interface{}{"media_id": id})
	}
}

// RequeuePendingProbes reschedules probes left pending by a previous run.
func (s *MediaService) RequeuePendingProbes(limit int) {
	pending, err := s.repo.ListProbePending(limit)
	if err != nil {
		logger.Error(err, "Failed to list pending probes", nil)
		return
	}
	for i := range pending {
		s.scheduleProbe(&pending[i])
	}
}

func (s *MediaService) GetByID(id uint) (*models.MediaImage, error) {
	media, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return media, nil
}

func (s *MediaService) List(page, pageSize int) ([]models.MediaImage, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.List((page-1)*pageSize, pageSize)
}

// Delete removes the record, the stored file for local images, the cached
// resolution and every cached render variant of the URL.
func (s *MediaService) Delete(id uint) error {
	media, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if !media.External && media.Filename != "" {
		filePath := filepath.Join(s.uploadDir, filepath.Base(media.Filename))
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove stored file", map[string]interface{}{"file": filePath, "reason": err.Error()})
		}
	}

	if err := s.cache.DeletePattern(renderCacheScope(media.URL)); err != nil {
		logger.Warn("Failed to invalidate render cache", map[string]interface{}{"url": media.URL, "reason": err.Error()})
	}

	return s.cache.Delete(mediaCachePrefix + media.URL)
}

// LocalPath maps a local media URL to its path under the upload dir.
func (s *MediaService) LocalPath(media *models.MediaImage) (string, bool) {
	if media == nil || media.External || media.Filename == "" {
		return "", false
	}
	return filepath.Join(s.uploadDir, filepath.Base(media.Filename)), true
}

func (s *MediaService) cacheMedia(media *models.MediaImage) {
	if media == nil {
		return
	}
	if err := s.cache.Set(mediaCachePrefix+media.URL, media, mediaCacheTTL); err != nil {
		logger.Warn("Failed to cache media record", map[string]interface{}{"url": media.URL, "reason": err.Error()})
	}
}

func (s *MediaService) generateFilename(originalName, preferredName, ext string) string {
	base := strings.TrimSuffix(validator.SanitizeFilename(strings.ToLower(preferredName)), ext)
	if base == "" || base == "_" {
		base = strings.TrimSuffix(validator.SanitizeFilename(strings.ToLower(filepath.Base(originalName))), ext)
	}
	if base == "" || base == "_" {
		base = "image"
	}

	candidate := base + ext
	if _, err := os.Stat(filepath.Join(s.uploadDir, candidate)); err == nil {
		candidate = fmt.Sprintf("%s-%s%s", base, uuid.New().String()[:8], ext)
	}
	return candidate
}

func probeLocalFile(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		// SVG and other undecodable formats report an unknown size.
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
