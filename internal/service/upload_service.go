package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	"product":  {},
	"category": {},
	"common":   {},
}

// UploadService stores product and category images on local disk.
type UploadService struct {
	cfg *config.Config
}

// NewUploadService creates the upload service.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveFile validates and stores one uploaded file, returning the public
// relative path.
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("ukuran berkas melebihi batas (maksimal %d MB)", s.cfg.Upload.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("ekstensi berkas tidak diizinkan: %s", ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Sniff the real MIME type from the first bytes.
	buffer := make([]byte, 512)
	_, err = src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("tipe berkas tidak diizinkan: %s", contentType)
		}
	}

	normalizedScene := normalizeUploadScene(scene)

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	now := time.Now()
	year := now.Format("2006")
	month := now.Format("01")
	savePath := filepath.Join(s.uploadRoot(), normalizedScene, year, month, filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	// Relative path, the frontend prepends the host.
	return fmt.Sprintf("/uploads/%s/%s/%s/%s", normalizedScene, year, month, filename), nil
}

func (s *UploadService) uploadRoot() string {
	dir := strings.TrimSpace(s.cfg.Upload.Dir)
	if dir == "" {
		return "uploads"
	}
	return dir
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "common"
	}
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return "common"
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
