package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
)

// Допустимые типы доказательств
var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"application/pdf",
}

// FileInfo - результат проверки загруженного файла
type FileInfo struct {
	MIME     string
	Category string
	Format   string
}

// Inspect проверяет размер и фактический тип содержимого файла
func Inspect(data []byte, name string, maxBytes int64) (FileInfo, error) {
	if len(data) == 0 {
		return FileInfo{}, apperrors.NewValidationError("files", fmt.Sprintf("file '%s' is empty", name))
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return FileInfo{}, apperrors.NewValidationError("files",
			fmt.Sprintf("file '%s' exceeds the maximum size of %d MB", name, maxBytes/(1024*1024)))
	}

	mtype := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mtype.Is(allowed) {
			return FileInfo{
				MIME:     allowed,
				Category: strings.SplitN(allowed, "/", 2)[0],
				Format:   strings.TrimPrefix(mtype.Extension(), "."),
			}, nil
		}
	}

	return FileInfo{}, apperrors.NewValidationError("files",
		fmt.Sprintf("file type '%s' of '%s' is not allowed", mtype.String(), name))
}

// FormatFromURL возвращает расширение файла из ссылки (не длиннее 10 символов)
// ValidateEvidenceURL допускает только абсолютные http(s) ссылки
func ValidateEvidenceURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewValidationError("evidence_urls", fmt.Sprintf("'%s' is not an http(s) URL", rawURL))
	}
	return nil
}

func FormatFromURL(rawURL string) string {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if len(ext) > 10 {
		ext = ext[:10]
	}
	return ext
}
