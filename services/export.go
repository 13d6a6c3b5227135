package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/shared"
)

// ExportService archives the interaction log to object storage as NDJSON so
// the raw stream outlives any database retention window.
type ExportService struct {
	appContext.DefaultService

	store  EventStore
	client *minio.Client

	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const EXPORT_SVC = "export_svc"

func (svc ExportService) Id() string {
	return EXPORT_SVC
}

func (svc *ExportService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "kiosk-archive"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *ExportService) Start() error {
	if s, ok := svc.Service(POSTGRES_SVC).(EventStore); ok {
		svc.store = s
	} else if s, ok := svc.Service(SQLITE_SVC).(EventStore); ok {
		svc.store = s
	} else {
		return errors.New("no event store service registered")
	}

	if svc.secretKey == "" {
		log.Warn("MINIO_SECRET_KEY not set; interaction export disabled")
		return nil
	}

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}
	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("Export service started with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *ExportService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created MinIO bucket: %s", svc.bucketName)
	}

	return nil
}

// ExportInteractions writes the (optionally bounded) interaction log to the
// archive bucket, one JSON object per line.
func (svc *ExportService) ExportInteractions(start, end *time.Time) (*dto.ExportResponse, error) {
	if svc.client == nil {
		return nil, shared.NewServiceUnavailableError(errors.New("object storage not configured"), "Export not configured")
	}

	entries, err := svc.store.StreamInteractions(start, end)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, shared.NewInternalError(err, "Failed to encode interaction log")
		}
	}

	objectName := fmt.Sprintf("interactions/%s.ndjson", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	_, err = svc.client.PutObject(context.Background(), svc.bucketName, objectName,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
			ContentType: "application/x-ndjson",
		})
	if err != nil {
		return nil, shared.NewServiceUnavailableError(err, "Failed to upload archive")
	}

	log.WithFields(log.Fields{"object": objectName, "entries": len(entries)}).Info("Exported interaction log")

	return &dto.ExportResponse{
		Bucket:  svc.bucketName,
		Object:  objectName,
		Entries: len(entries),
	}, nil
}
