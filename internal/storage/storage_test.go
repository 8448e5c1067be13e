package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfBytes  = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	textBytes = []byte("just some plain text")
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		maxBytes     int64
		wantCategory string
		wantFormat   string
		wantErr      bool
	}{
		{name: "png", data: pngBytes, maxBytes: 1024, wantCategory: "image", wantFormat: "png"},
		{name: "gif", data: gifBytes, maxBytes: 1024, wantCategory: "image", wantFormat: "gif"},
		{name: "pdf", data: pdfBytes, maxBytes: 1024, wantCategory: "application", wantFormat: "pdf"},
		{name: "plain text rejected", data: textBytes, maxBytes: 1024, wantErr: true},
		{name: "empty rejected", data: nil, maxBytes: 1024, wantErr: true},
		{name: "too large", data: pngBytes, maxBytes: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(tt.data, "foto", tt.maxBytes)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, info.Category)
			assert.Equal(t, tt.wantFormat, info.Format)
		})
	}
}

func TestFormatFromURL(t *testing.T) {
	assert.Equal(t, "jpg", FormatFromURL("https://cdn.example.com/a/b/foto.JPG"))
	assert.Equal(t, "png", FormatFromURL("https://cdn.example.com/foto.png?size=large#top"))
	assert.Equal(t, "", FormatFromURL("https://cdn.example.com/foto"))
	assert.Equal(t, "abcdefghij", FormatFromURL("https://x/y.abcdefghijklmn"))
}

func TestValidateEvidenceURL(t *testing.T) {
	for _, ok := range []string{"https://cdn.example.com/a.jpg", "HTTP://cdn.example.com/b.png?x=1"} {
		assert.NoError(t, ValidateEvidenceURL(ok), ok)
	}
	for _, bad := range []string{"javascript:alert(1)", "data:image/png;base64,AAAA", "/media/a.png", "ftp://host/a.png", "https://"} {
		err := ValidateEvidenceURL(bad)
		assert.True(t, apperrors.IsValidation(err), bad)
	}
}

func TestLocalStorage_StoreAndRemove(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media")
	s.now = func() time.Time { return time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC) }

	url, err := s.Store(context.Background(), pngBytes, "../../foto de bache.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/evidencias/20260307_090501_"), url)
	assert.True(t, strings.HasSuffix(url, "_foto_de_bache.png"), url)

	rel := strings.TrimPrefix(url, "/media/")
	stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	require.NoError(t, s.Remove(context.Background(), url))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не ошибка
	assert.NoError(t, s.Remove(context.Background(), url))
}

func TestLocalStorage_RemoveRejectsForeignURL(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/media/")

	assert.Error(t, s.Remove(context.Background(), "https://elsewhere/file.png"))
	assert.Error(t, s.Remove(context.Background(), "/media/../secret"))
}

func TestLocalStorage_Locate(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")

	filePath, ok := s.Locate("/media/evidencias/a.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "evidencias", "a.png"), filePath)

	for _, foreign := range []string{"https://cdn.example.com/a.png", "/media/", "/media/../etc/passwd"} {
		_, ok := s.Locate(foreign)
		assert.False(t, ok, foreign)
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "archivo", sanitizeName(""))
	assert.Equal(t, "informe_final.pdf", sanitizeName("C:\\docs\\informe final.pdf"))
	assert.Equal(t, "archivo", sanitizeName("..."))
}
