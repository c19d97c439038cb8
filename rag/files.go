// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/iterator"
)

// UploadFile registers a directly uploaded file with a corpus and returns the
// created file. The chunking config, when non-nil, overrides the corpus
// default transformation; splitting and embedding run server-side.
func (s *Service) UploadFile(ctx context.Context, corpusName string, file *File, chunking *ChunkingConfig) (*File, error) {
	if corpusName == "" {
		return nil, errors.New("rag: corpus name is required")
	}
	if file == nil || file.DisplayName == "" {
		return nil, errors.New("rag: file display name is required")
	}

	s.logger.InfoContext(ctx, "uploading file",
		slog.String("corpus", corpusName),
		slog.String("display_name", file.DisplayName),
	)

	req := &aiplatformpb.UploadRagFileRequest{
		Parent:  corpusName,
		RagFile: fileToProto(file),
	}
	if chunking != nil {
		req.UploadRagFileConfig = &aiplatformpb.UploadRagFileConfig{
			RagFileChunkingConfig: chunkingConfigToProto(chunking),
		}
	}

	resp, err := s.dataClient.UploadRagFile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upload file to %s: %w", corpusName, err)
	}

	uploaded := fileFromProto(resp.GetRagFile())
	s.logger.InfoContext(ctx, "file uploaded",
		slog.String("name", uploaded.Name),
	)
	return uploaded, nil
}

// ImportFiles bulk-imports documents into a corpus from Cloud Storage or
// Google Drive and waits for the import operation to complete.
func (s *Service) ImportFiles(ctx context.Context, corpusName string, cfg *ImportConfig) (*ImportResult, error) {
	if corpusName == "" {
		return nil, errors.New("rag: corpus name is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("rag: %w", err)
	}

	s.logger.InfoContext(ctx, "importing files",
		slog.String("corpus", corpusName),
	)

	op, err := s.dataClient.ImportRagFiles(ctx, &aiplatformpb.ImportRagFilesRequest{
		Parent:               corpusName,
		ImportRagFilesConfig: importConfigToProto(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("import files into %s: %w", corpusName, err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait for file import: %w", err)
	}

	result := &ImportResult{
		ImportedCount: resp.GetImportedRagFilesCount(),
		FailedCount:   resp.GetFailedRagFilesCount(),
		SkippedCount:  resp.GetSkippedRagFilesCount(),
	}
	s.logger.InfoContext(ctx, "files imported",
		slog.Int64("imported", result.ImportedCount),
		slog.Int64("failed", result.FailedCount),
	)
	return result, nil
}

// GetFile retrieves a file by its full resource name.
func (s *Service) GetFile(ctx context.Context, name string) (*File, error) {
	pb, err := s.dataClient.GetRagFile(ctx, &aiplatformpb.GetRagFileRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", name, err)
	}
	return fileFromProto(pb), nil
}

// ListFiles returns all files in a corpus, walking every page of results.
func (s *Service) ListFiles(ctx context.Context, corpusName string) ([]*File, error) {
	it := s.dataClient.ListRagFiles(ctx, &aiplatformpb.ListRagFilesRequest{
		Parent: corpusName,
	})

	var files []*File
	for {
		pb, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list files in %s: %w", corpusName, err)
		}
		files = append(files, fileFromProto(pb))
	}

	s.logger.InfoContext(ctx, "listed files",
		slog.String("corpus", corpusName),
		slog.Int("count", len(files)),
	)
	return files, nil
}

// DeleteFile removes a file from its corpus.
func (s *Service) DeleteFile(ctx context.Context, name string) error {
	op, err := s.dataClient.DeleteRagFile(ctx, &aiplatformpb.DeleteRagFileRequest{
		Name: name,
	})
	if err != nil {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for file deletion: %w", err)
	}
	return nil
}

// DeleteFiles removes several files, stopping at the first failure.
func (s *Service) DeleteFiles(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := s.DeleteFile(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func chunkingConfigToProto(cfg *ChunkingConfig) *aiplatformpb.RagFileChunkingConfig {
	if cfg == nil {
		return nil
	}
	return &aiplatformpb.RagFileChunkingConfig{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}
}

func importConfigToProto(cfg *ImportConfig) *aiplatformpb.ImportRagFilesConfig {
	if cfg == nil {
		return nil
	}

	pb := &aiplatformpb.ImportRagFilesConfig{
		RagFileChunkingConfig:      chunkingConfigToProto(cfg.Chunking),
		MaxEmbeddingRequestsPerMin: cfg.MaxEmbeddingRequestsPerMin,
	}

	switch {
	case cfg.GCS != nil:
		pb.ImportSource = &aiplatformpb.ImportRagFilesConfig_GcsSource{
			GcsSource: &aiplatformpb.GcsSource{
				Uris: cfg.GCS.URIs,
			},
		}
	case cfg.Drive != nil:
		pb.ImportSource = &aiplatformpb.ImportRagFilesConfig_GoogleDriveSource{
			GoogleDriveSource: &aiplatformpb.GoogleDriveSource{
				ResourceIds: driveResourceIDsToProto(cfg.Drive.ResourceIDs),
			},
		}
	}

	return pb
}

// driveResourceIDsToProto wraps raw Drive IDs in the proto resource form. The
// service accepts both folders and files; RESOURCE_TYPE_FILE covers single
// documents, folder IDs are resolved server-side.
func driveResourceIDsToProto(ids []string) []*aiplatformpb.GoogleDriveSource_ResourceId {
	out := make([]*aiplatformpb.GoogleDriveSource_ResourceId, 0, len(ids))
	for _, id := range ids {
		out = append(out, &aiplatformpb.GoogleDriveSource_ResourceId{
			ResourceId:   id,
			ResourceType: aiplatformpb.GoogleDriveSource_ResourceId_RESOURCE_TYPE_FILE,
		})
	}
	return out
}

func driveResourceIDsFromProto(ids []*aiplatformpb.GoogleDriveSource_ResourceId) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.GetResourceId())
	}
	return out
}

func fileToProto(file *File) *aiplatformpb.RagFile {
	if file == nil {
		return nil
	}

	pb := &aiplatformpb.RagFile{
		Name:        file.Name,
		DisplayName: file.DisplayName,
		Description: file.Description,
		SizeBytes:   file.SizeBytes,
	}

	switch src := file.Source; {
	case src == nil:
		// Source defaults to direct upload on the server.
	case src.GCS != nil:
		pb.RagFileSource = &aiplatformpb.RagFile_GcsSource{
			GcsSource: &aiplatformpb.GcsSource{Uris: src.GCS.URIs},
		}
	case src.Drive != nil:
		pb.RagFileSource = &aiplatformpb.RagFile_GoogleDriveSource{
			GoogleDriveSource: &aiplatformpb.GoogleDriveSource{
				ResourceIds: driveResourceIDsToProto(src.Drive.ResourceIDs),
			},
		}
	case src.Direct != nil:
		pb.RagFileSource = &aiplatformpb.RagFile_DirectUploadSource{
			DirectUploadSource: &aiplatformpb.DirectUploadSource{},
		}
	}

	return pb
}

func fileFromProto(pb *aiplatformpb.RagFile) *File {
	if pb == nil {
		return nil
	}

	file := &File{
		Name:        pb.GetName(),
		DisplayName: pb.GetDisplayName(),
		Description: pb.GetDescription(),
		SizeBytes:   pb.GetSizeBytes(),
		State:       FileStateUnspecified,
	}

	switch pb.GetFileStatus().GetState() {
	case aiplatformpb.FileStatus_ACTIVE:
		file.State = FileStateActive
	case aiplatformpb.FileStatus_ERROR:
		file.State = FileStateError
	}

	if ts := pb.GetCreateTime(); ts != nil {
		t := ts.AsTime()
		file.CreateTime = &t
	}
	if ts := pb.GetUpdateTime(); ts != nil {
		t := ts.AsTime()
		file.UpdateTime = &t
	}

	switch src := pb.GetRagFileSource().(type) {
	case *aiplatformpb.RagFile_GcsSource:
		file.Source = &FileSource{
			GCS: &GCSSource{URIs: src.GcsSource.GetUris()},
		}
	case *aiplatformpb.RagFile_GoogleDriveSource:
		file.Source = &FileSource{
			Drive: &DriveSource{ResourceIDs: driveResourceIDsFromProto(src.GoogleDriveSource.GetResourceIds())},
		}
	case *aiplatformpb.RagFile_DirectUploadSource:
		file.Source = &FileSource{Direct: &DirectSource{}}
	}

	return file
}
