package models

import "time"

type WorldInfo struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	SizeBytes  uint64  `json:"size_bytes"`
	SizeHuman  string  `json:"size_human"`
	LastPlayed *string `json:"last_played"`
}

type BackupEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	SizeBytes uint64 `json:"size_bytes"`
	SizeHuman string `json:"size_human"`
}

type LogEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type ImportResult struct {
	ArchivePath   string     `json:"archive_path"`
	WorldName     string     `json:"world_name"`
	World         *WorldInfo `json:"world,omitempty"`
	OperationTime string     `json:"operation_time"`
	Duration      string     `json:"duration"`
}

type DeleteResult struct {
	BucketName     string   `json:"bucket_name"`
	Folder         string   `json:"folder"`
	DaysOld        int      `json:"days_old"`
	DeletedFiles   []string `json:"deleted_files"`
	DeletedCount   int      `json:"deleted_count"`
	TotalSizeBytes int64    `json:"total_size_bytes"`
	TotalSizeHuman string   `json:"total_size_human"`
	OperationTime  string   `json:"operation_time"`
	CutoffDate     string   `json:"cutoff_date"`
	DryRun         bool     `json:"dry_run"`
}

type ArchiveInfo struct {
	TransferID       string      `json:"transfer_id"`
	WorldName        string      `json:"world_name"`
	ArchivePath      string      `json:"archive_path"`
	FileCount        int         `json:"file_count"`
	IncludeLogs      bool        `json:"include_logs"`
	IncludeBackups   bool        `json:"include_backups"`
	CompressedSize   int64       `json:"compressed_size"`
	CompressedHuman  string      `json:"compressed_human"`
	OriginalSize     int64       `json:"original_size"`
	CompressionRatio float64     `json:"compression_ratio"`
	CreatedAt        time.Time   `json:"created_at"`
	Upload           *UploadItem `json:"upload,omitempty"`
}

type UploadItem struct {
	BucketName string `json:"bucket_name"`
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	Size       int64  `json:"size"`
	Duration   string `json:"duration"`
}

type DownloadItem struct {
	BucketName   string `json:"bucket_name"`
	RemotePath   string `json:"remote_path"`
	LocalPath    string `json:"local_path"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}
