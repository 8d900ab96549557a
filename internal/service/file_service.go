package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"setflow/internal/config"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// FileUploadInput is the DTO for call sheet attachment uploads.
type FileUploadInput struct {
	OrgID       uuid.UUID
	CallSheetID uuid.UUID
	UploadedBy  uuid.UUID
	File        multipart.File
	Header      *multipart.FileHeader
}

// FileService defines the attachment management contract.
type FileService interface {
	Upload(ctx context.Context, input FileUploadInput) (*domain.FileMeta, error)
	GetByID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByCallSheet(ctx context.Context, orgID, callSheetID uuid.UUID) ([]domain.FileMeta, error)
	GetDownloadURL(ctx context.Context, orgID, fileID uuid.UUID) (string, error)
	Delete(ctx context.Context, orgID, fileID uuid.UUID) error
}

type fileService struct {
	fileRepo  port.FileMetaRepository
	sheetRepo port.CallSheetRepository
	storage   port.ObjectStorage
	cfg       *config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	fileRepo port.FileMetaRepository,
	sheetRepo port.CallSheetRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) FileService {
	return &fileService{
		fileRepo:  fileRepo,
		sheetRepo: sheetRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *fileService) Upload(ctx context.Context, input FileUploadInput) (*domain.FileMeta, error) {
	if _, err := s.sheetRepo.GetByID(ctx, input.OrgID, input.CallSheetID); err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	_, validContent := domain.AllowedContentTypes[detectedType]
	if !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("orgs/%s/call-sheets/%s/%s/%s",
		input.OrgID, input.CallSheetID, fileID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	meta := &domain.FileMeta{
		ID:           fileID,
		OrgID:        input.OrgID,
		CallSheetID:  &input.CallSheetID,
		UploadedBy:   input.UploadedBy,
		FileName:     fileID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		Status:       domain.FileStatusPending,
	}

	log.Printf("fileService.Upload: uploading %s (%s, %d bytes) for call sheet %s",
		input.Header.Filename, contentType, input.Header.Size, input.CallSheetID)

	// Persist metadata with pending status
	if err := s.fileRepo.Create(ctx, meta); err != nil {
		log.Printf("fileService.Upload: failed to create file metadata: %v", err)
		return nil, fmt.Errorf("creating file metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("fileService.Upload: S3 upload failed for file %s: %v", meta.ID, err)
		_ = s.fileRepo.UpdateStatus(ctx, meta.OrgID, meta.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.fileRepo.UpdateStatus(ctx, meta.OrgID, meta.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating file status: %w", err)
	}
	meta.Status = domain.FileStatusUploaded

	return meta, nil
}

func (s *fileService) GetByID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.FileMeta, error) {
	return s.fileRepo.GetByID(ctx, orgID, fileID)
}

func (s *fileService) ListByCallSheet(ctx context.Context, orgID, callSheetID uuid.UUID) ([]domain.FileMeta, error) {
	return s.fileRepo.ListByCallSheet(ctx, orgID, callSheetID)
}

func (s *fileService) GetDownloadURL(ctx context.Context, orgID, fileID uuid.UUID) (string, error) {
	meta, err := s.fileRepo.GetByID(ctx, orgID, fileID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, meta.S3Bucket, meta.S3Key, s.cfg.PresignExpiry)
}

func (s *fileService) Delete(ctx context.Context, orgID, fileID uuid.UUID) error {
	log.Printf("fileService.Delete: deleting file %s for org %s", fileID, orgID)

	meta, err := s.fileRepo.GetByID(ctx, orgID, fileID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, meta.S3Bucket, meta.S3Key); err != nil {
		log.Printf("fileService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.fileRepo.Delete(ctx, orgID, fileID)
}
