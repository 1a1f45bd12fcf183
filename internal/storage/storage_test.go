package storage_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	assert.Equal(t, "photo.jpg", storage.SanitizeFileName("photo.jpg", now))
	assert.Equal(t, "my_photo__1_.png", storage.SanitizeFileName("my photo (1).png", now))
	assert.Equal(t, "_.._.._etc_passwd", storage.SanitizeFileName("/../../etc/passwd", now))
}

func TestSanitizeFileName_Truncates(t *testing.T) {
	long := strings.Repeat("a", 150) + ".jpg"

	got := storage.SanitizeFileName(long, time.UnixMilli(0))

	assert.Len(t, got, 100)
	assert.Equal(t, strings.Repeat("a", 100), got)
}

func TestSanitizeFileName_EmptyGetsDefault(t *testing.T) {
	got := storage.SanitizeFileName("", time.UnixMilli(1_700_000_000_000))

	assert.Equal(t, "complaint_1700000000000.jpg", got)
}

func TestImageKeys(t *testing.T) {
	assert.Equal(t, "complaintImages/abc/p.jpg", storage.ComplaintImageKey("abc", "p.jpg"))
	assert.Equal(t, "wasteImages/emp-1/p.jpg", storage.WasteImageKey("emp-1", "p.jpg"))
}
