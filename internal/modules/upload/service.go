package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

const (
	MaxFileSize    = 10 * 1024 * 1024 // 10 MB
	UploadsBaseDir = "./uploads"
	StaticURLBase  = "/static/uploads"
)

// Listing documents: geological reports, permits, photos of the site.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

type Service struct {
	repo       UploadRepository
	baseDir    string
	staticBase string
}

func NewService(repo UploadRepository, baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	return &Service{repo: repo, baseDir: baseDir, staticBase: staticBase}
}

// Upload writes the file under a dated directory and records its metadata.
// The disk write is rolled back if the record cannot be stored.
func (s *Service) Upload(ctx context.Context, actor authz.Actor, fileHeader *multipart.FileHeader) (*repository.Upload, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// sniff the real type instead of trusting the client header
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(fileHeader.Filename), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	fileURL := s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/")

	rec := &repository.Upload{
		ID:           id,
		UserID:       actor.ID,
		OriginalName: fileHeader.Filename,
		FilePath:     relPath,
		FileURL:      fileURL,
		MimeType:     mimeType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to save upload record: %w", err)
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*repository.Upload, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListMine(ctx context.Context, actor authz.Actor) ([]repository.Upload, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}

// Delete removes the file and its record; only the uploader or an admin may.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id string) error {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: rec.UserID}) {
		return ErrNotOwner
	}

	absPath := filepath.Join(s.baseDir, rec.FilePath)
	_ = os.Remove(absPath) // file may already be gone

	return s.repo.Delete(ctx, id)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
