package s3client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appConfig "hytalebackup/config"
	"hytalebackup/internal/models"
	"hytalebackup/pkg/utils"
)

var ErrNoArchives = errors.New("no backup archives found")

// Client mirrors world backup archives to an S3 compatible bucket.
type Client struct {
	s3Client *s3.Client
	config   *appConfig.Config
}

func New(cfg *appConfig.Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return &Client{
		s3Client: s3Client,
		config:   cfg,
	}, nil
}

// UploadArchive stores the archive at localPath under destinationPath.
func (c *Client) UploadArchive(ctx context.Context, localPath, destinationPath string) (*models.UploadItem, error) {
	startTime := time.Now()

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", localPath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive %s: %w", localPath, err)
	}

	remotePath := buildRemotePath(destinationPath, filepath.Base(localPath))

	uploader := manager.NewUploader(c.s3Client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(remotePath),
		Body:        file,
		ContentType: aws.String(detectContentType(localPath)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &models.UploadItem{
		BucketName: c.config.BucketName,
		LocalPath:  localPath,
		RemotePath: remotePath,
		Size:       info.Size(),
		Duration:   time.Since(startTime).String(),
	}, nil
}

// DownloadLatestArchive fetches the most recently modified .zip below folder
// into destinationDir.
func (c *Client) DownloadLatestArchive(ctx context.Context, folder, destinationDir string) (*models.DownloadItem, error) {
	archives, err := c.listArchives(ctx, folder)
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoArchives, getFolderDisplay(folder))
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].LastModified.After(*archives[j].LastModified)
	})
	latest := archives[0]

	if err := os.MkdirAll(destinationDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination %s: %w", destinationDir, err)
	}
	localPath := filepath.Join(destinationDir, filepath.Base(*latest.Key))

	file, err := os.Create(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer file.Close()

	downloader := manager.NewDownloader(c.s3Client)
	size, err := downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    latest.Key,
	})
	if err != nil {
		utils.CleanupTempFile(localPath)
		return nil, fmt.Errorf("failed to download %s: %w", *latest.Key, err)
	}

	return &models.DownloadItem{
		BucketName:   c.config.BucketName,
		RemotePath:   *latest.Key,
		LocalPath:    localPath,
		Size:         size,
		LastModified: utils.FormatTime(*latest.LastModified),
	}, nil
}

// DeleteOldArchives removes remote backups under folder older than daysOld.
func (c *Client) DeleteOldArchives(ctx context.Context, folder string, daysOld int, dryRun bool) (*models.DeleteResult, error) {
	bucketName := c.config.BucketName
	cutoffDate := time.Now().AddDate(0, 0, -daysOld)

	archives, err := c.listArchives(ctx, folder)
	if err != nil {
		return nil, err
	}

	var toDelete []types.ObjectIdentifier
	deletedFiles := []string{}
	var totalSize int64

	for _, obj := range archives {
		if obj.LastModified.Before(cutoffDate) {
			toDelete = append(toDelete, types.ObjectIdentifier{Key: obj.Key})
			deletedFiles = append(deletedFiles, *obj.Key)
			totalSize += aws.ToInt64(obj.Size)
		}
	}

	deletedCount := 0
	for i := 0; i < len(toDelete) && !dryRun; i += 1000 {
		end := min(i+1000, len(toDelete))
		batch := toDelete[i:end]

		_, err := c.s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucketName),
			Delete: &types.Delete{
				Objects: batch,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to delete objects batch: %w", err)
		}
		deletedCount += len(batch)
	}

	return &models.DeleteResult{
		BucketName:     bucketName,
		Folder:         folder,
		DaysOld:        daysOld,
		DeletedFiles:   deletedFiles,
		DeletedCount:   deletedCount,
		TotalSizeBytes: totalSize,
		TotalSizeHuman: utils.FormatSize(uint64(totalSize)),
		OperationTime:  utils.FormatTime(time.Now()),
		CutoffDate:     utils.FormatTime(cutoffDate),
		DryRun:         dryRun,
	}, nil
}

// listArchives returns the .zip objects directly or indirectly under folder.
func (c *Client) listArchives(ctx context.Context, folder string) ([]types.Object, error) {
	prefix := folder
	if !strings.HasSuffix(prefix, "/") && prefix != "" {
		prefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.config.BucketName),
		Prefix: aws.String(prefix),
	})

	var archives []types.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || obj.LastModified == nil || !utils.IsZipFile(*obj.Key) {
				continue
			}
			archives = append(archives, obj)
		}
	}
	return archives, nil
}

func buildRemotePath(destinationPath, filename string) string {
	if destinationPath == "" {
		return filename
	}

	destinationPath = strings.TrimPrefix(destinationPath, "/")

	if !strings.HasSuffix(destinationPath, "/") {
		destinationPath += "/"
	}

	return destinationPath + filename
}

func detectContentType(filename string) string {
	if utils.IsZipFile(filename) {
		return "application/zip"
	}
	return "application/octet-stream"
}

func getFolderDisplay(folder string) string {
	if folder == "" {
		return "bucket root"
	}
	return folder
}
