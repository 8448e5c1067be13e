package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const evidenceDir = "evidencias"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LocalStorage хранит файлы доказательств в MEDIA_ROOT
type LocalStorage struct {
	root    string
	baseURL string
	now     func() time.Time
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{root: root, baseURL: baseURL, now: time.Now}
}

// Store сохраняет файл и возвращает его публичный URL
func (s *LocalStorage) Store(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, evidenceDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s",
		s.now().Format("20060102_150405"),
		uuid.NewString()[:8],
		sanitizeName(suggestedName),
	)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	return s.baseURL + path.Join(evidenceDir, name), nil
}

// Locate переводит URL сохраненного файла в путь на диске; false для чужих ссылок
func (s *LocalStorage) Locate(url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, s.baseURL)
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return "", false
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), true
}

// Remove удаляет ранее сохраненный файл; отсутствие файла не ошибка
func (s *LocalStorage) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filePath, ok := s.Locate(url)
	if !ok {
		return fmt.Errorf("storage: url %q is not managed by this storage", url)
	}

	err := os.Remove(filePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "archivo"
	}
	return base
}
