package orchestrators

import (
	"context"
	"log/slog"
	"os"

	imagestore "greenaudit/internal/adapters/storage/images"
)

// RegistryForDelete defines the registry interface needed by DeleteAudit.
type RegistryForDelete interface {
	Delete(ctx context.Context, id int64) error
}

// ImageStoreForDelete defines the image store interface needed by DeleteAudit.
type ImageStoreForDelete interface {
	ListByAudit(ctx context.Context, auditID int64) ([]imagestore.Image, error)
}

// DeleteAuditDeps holds dependencies for DeleteAudit.
type DeleteAuditDeps struct {
	Registry   RegistryForDelete
	ImageStore ImageStoreForDelete
}

// ExecuteDeleteAudit removes an audit, its record entries, its image metadata
// (all via foreign-key cascade) and its uploaded files. File removal is
// best-effort: a missing file never fails the delete.
// PRE: none
// POST: No trace of the audit remains; unknown IDs succeed
func ExecuteDeleteAudit(ctx context.Context, auditID int64, deps DeleteAuditDeps) error {
	// Collect file paths before the rows cascade away.
	imgs, err := deps.ImageStore.ListByAudit(ctx, auditID)
	if err != nil {
		slog.Warn("audit_delete_image_list_failed", "audit_id", auditID, "error", err.Error())
	}

	if err := deps.Registry.Delete(ctx, auditID); err != nil {
		return err
	}

	for _, img := range imgs {
		if err := os.Remove(img.ImagePath); err != nil && !os.IsNotExist(err) {
			slog.Warn("audit_delete_file_failed", "audit_id", auditID, "path", img.ImagePath, "error", err.Error())
		}
	}

	slog.Info("audit_event", "event", "audit_deleted", "audit_id", auditID, "images_removed", len(imgs))
	return nil
}
