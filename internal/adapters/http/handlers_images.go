package web

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"greenaudit/internal/adapters/storage/images"
	"greenaudit/internal/adapters/storage/registry"
)

// extensionForContentType maps accepted image content types to file extensions.
var extensionForContentType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// handleAuditImages handles POST (upload) and GET (list) on /api/audits/{id}/images.
// Uploads are multipart form data with a "photo" file part and an optional
// "relatedItem" field naming the section the photo illustrates.
func handleAuditImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathAuditID(r)
	if !ok {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	if r.Method == "GET" {
		imgs, err := stores.ImageStore.ListByAudit(ctx, id)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"images": imgs})
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if _, err := stores.Registry.GetByID(ctx, id); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			http.Error(w, "audit not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	const maxUpload = 6 << 20 // 6 MB to allow for 5 MB image + form overhead
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "request too large or malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	const maxPhoto = 5 << 20 // 5 MB
	if header.Size > maxPhoto {
		http.Error(w, "photo must be under 5 MB", http.StatusBadRequest)
		return
	}
	ct, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	ext, ok := extensionForContentType[ct]
	if !ok {
		http.Error(w, "photo must be an image (png, jpeg, webp, gif)", http.StatusBadRequest)
		return
	}

	relPath := filepath.Join("audits", generateID()+ext)
	fullPath, err := saveUploadedImage(relPath, file)
	if err != nil {
		internalError(w, err)
		return
	}

	img := images.Image{
		AuditID:     id,
		RelatedItem: strings.TrimSpace(r.FormValue("relatedItem")),
		ImagePath:   fullPath,
		UploadedAt:  timeNow(),
	}
	imgID, err := stores.ImageStore.Add(ctx, img)
	if err != nil {
		// The row is the source of truth; remove the orphaned file.
		if rmErr := os.Remove(fullPath); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("image_orphan_cleanup_failed", "path", fullPath, "error", rmErr.Error())
		}
		internalError(w, err)
		return
	}

	slog.Info("audit_event", "event", "image_uploaded", "audit_id", id, "image_id", imgID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        imgID,
		"imagePath": fullPath,
	})
}

// saveUploadedImage writes photo bytes to a local file under the uploads directory.
// PRE: relPath is a relative path; src is a valid io.Reader
// POST: file created at UploadDir/<relPath>; returns the full path
func saveUploadedImage(relPath string, src io.Reader) (string, error) {
	fullPath := filepath.Join(UploadDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fullPath, nil
}
