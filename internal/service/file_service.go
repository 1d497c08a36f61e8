package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// RelocationOutcome classifies what happened to one file during reconciliation.
type RelocationOutcome string

const (
	RelocationMoved          RelocationOutcome = "RELOCATED"
	RelocationAlreadyInPlace RelocationOutcome = "ALREADY_IN_PLACE"
	RelocationSkipped        RelocationOutcome = "SKIPPED"
)

// RelocationResult reports the per-file outcome of a reconciliation batch.
type RelocationResult struct {
	FileID  int64             `json:"fileId"`
	Outcome RelocationOutcome `json:"outcome"`
	Path    string            `json:"path,omitempty"`
	Reason  string            `json:"reason,omitempty"`
}

// FileService stores uploads and reconciles them into per-ticket folders.
type FileService struct {
	files   repository.FileRepository
	storage config.StorageConfig
	logger  *zap.Logger
}

// NewFileService constructs the service.
func NewFileService(files repository.FileRepository, storage config.StorageConfig, logger *zap.Logger) *FileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileService{files: files, storage: storage, logger: logger}
}

// SaveUpload writes an uploaded file into the generic images folder under a
// random stored name and records it. Any MIME type is accepted; the size cap
// is enforced by the HTTP layer.
func (s *FileService) SaveUpload(ctx context.Context, header *multipart.FileHeader) (*domain.StoredFile, error) {
	if header.Size > s.storage.MaxUploadBytes {
		return nil, apperrors.NewValidationError("file exceeds the maximum upload size", map[string]any{
			"maxBytes": s.storage.MaxUploadBytes,
		})
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	defer src.Close()

	storedName := uuid.NewString() + filepath.Ext(header.Filename)
	destDir := s.storage.ImagesDir()
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, apperrors.MapError(err)
	}
	destPath := filepath.Join(destDir, storedName)

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(destPath)
		return nil, apperrors.MapError(err)
	}

	file := &domain.StoredFile{
		FileName:  header.Filename,
		Path:      destPath,
		SizeBytes: size,
		MimeType:  header.Header.Get("Content-Type"),
	}
	if err := s.files.Create(ctx, file); err != nil {
		_ = os.Remove(destPath)
		return nil, apperrors.MapError(err)
	}
	return file, nil
}

// PublicPath maps a stored path to its public URL.
func (s *FileService) PublicPath(file *domain.StoredFile) string {
	rel, err := filepath.Rel(s.storage.Root, file.Path)
	if err != nil {
		return file.Path
	}
	return s.storage.PublicBaseURL + "/" + filepath.ToSlash(rel)
}

// ReconcileTicketFiles ensures each file sits in the ticket's folder and its
// record points there. Reconciliation is best effort: a file that cannot be
// found or moved is reported as skipped and the rest of the batch continues.
// Re-running with the same ids is a no-op for files already in place.
func (s *FileService) ReconcileTicketFiles(ctx context.Context, ticketID int64, fileIDs []int64) []RelocationResult {
	results := make([]RelocationResult, 0, len(fileIDs))
	for _, fileID := range fileIDs {
		results = append(results, s.reconcileOne(ctx, ticketID, fileID))
	}
	return results
}

func (s *FileService) reconcileOne(ctx context.Context, ticketID, fileID int64) RelocationResult {
	record, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		reason := "file record not found"
		if !errors.Is(err, pgx.ErrNoRows) {
			reason = "file record load failed"
		}
		s.logger.Warn("file reconciliation skipped",
			zap.Int64("file_id", fileID), zap.Int64("ticket_id", ticketID), zap.String("reason", reason))
		return RelocationResult{FileID: fileID, Outcome: RelocationSkipped, Reason: reason}
	}

	storedName := filepath.Base(record.Path)
	destDir := s.storage.TicketDir(ticketID)
	destPath := filepath.Join(destDir, storedName)

	if fileExists(destPath) {
		if record.TicketID == nil || *record.TicketID != ticketID || record.Path != destPath {
			if err := s.files.UpdateLocation(ctx, record.ID, destPath, ticketID); err != nil {
				return s.skip(fileID, ticketID, "association update failed")
			}
		}
		return RelocationResult{FileID: fileID, Outcome: RelocationAlreadyInPlace, Path: destPath}
	}

	// Candidate sources, in the order the original searched them.
	candidates := []string{
		record.Path,
		filepath.Join(s.storage.ContractsDir(), storedName),
		filepath.Join(s.storage.ImagesDir(), storedName),
	}
	source := ""
	for _, candidate := range candidates {
		if fileExists(candidate) {
			source = candidate
			break
		}
	}
	if source == "" {
		return s.skip(fileID, ticketID, "file not found in any candidate location")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return s.skip(fileID, ticketID, "destination directory creation failed")
	}
	if err := moveFile(source, destPath); err != nil {
		return s.skip(fileID, ticketID, "file move failed")
	}
	if err := s.files.UpdateLocation(ctx, record.ID, destPath, ticketID); err != nil {
		return s.skip(fileID, ticketID, "association update failed")
	}
	return RelocationResult{FileID: fileID, Outcome: RelocationMoved, Path: destPath}
}

func (s *FileService) skip(fileID, ticketID int64, reason string) RelocationResult {
	s.logger.Warn("file reconciliation skipped",
		zap.Int64("file_id", fileID), zap.Int64("ticket_id", ticketID), zap.String("reason", reason))
	return RelocationResult{FileID: fileID, Outcome: RelocationSkipped, Reason: reason}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// moveFile renames when possible and falls back to copy+remove across devices.
func moveFile(source, dest string) error {
	if err := os.Rename(source, dest); err == nil {
		return nil
	}
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(source)
}
