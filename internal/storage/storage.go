// Package storage handles complaint and waste-entry images: presigned
// direct uploads, existence checks and public URLs.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// ObjectStore abstracts the object storage backend so services can be
// tested without a live bucket.
type ObjectStore interface {
	// PresignPut issues a time-boxed write URL scoped to one key and
	// content type.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	// Head reports whether the object exists and its size in bytes.
	Head(ctx context.Context, key string) (exists bool, size int64, err error)
	// MakePublic marks the object publicly retrievable.
	MakePublic(ctx context.Context, key string) error
	// PublicURL is the canonical public address for a key.
	PublicURL(key string) string
}

var unsafeNameRx = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFileName replaces unsafe characters and truncates to 100
// characters. An empty name gets a timestamp-derived default.
func SanitizeFileName(name string, now time.Time) string {
	if name == "" {
		return fmt.Sprintf("complaint_%d.jpg", now.UnixMilli())
	}
	safe := unsafeNameRx.ReplaceAllString(name, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

// ComplaintImageKey is the deterministic object path for a complaint
// image.
func ComplaintImageKey(complaintID, safeName string) string {
	return fmt.Sprintf("complaintImages/%s/%s", complaintID, safeName)
}

// WasteImageKey is the object path for an employee's entry photo.
func WasteImageKey(employeeID, safeName string) string {
	return fmt.Sprintf("wasteImages/%s/%s", employeeID, safeName)
}
