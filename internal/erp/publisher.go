package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/config"
)

type Publisher interface {
	Publish(ctx context.Context, companyID uint, p Payload) error
}

// New escolhe S3 quando há bucket configurado; caso contrário só loga.
func New(cfg config.ERPConfig, log *zap.Logger) Publisher {
	if cfg.Bucket == "" {
		return NewLogPublisher(log)
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return NewS3Publisher(s3.New(opts), cfg.Bucket, log)
}

// ======================================================
// LOG
// ======================================================

type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, companyID uint, payload Payload) error {
	p.log.Info("erp check-in payload",
		zap.Uint("company_id", companyID),
		zap.Uint("appointment_id", payload.AppointmentID),
		zap.String("appointment_number", payload.AppointmentNumber),
		zap.String("supplier_cnpj", payload.SupplierCNPJ),
		zap.String("truck_plate", payload.TruckPlate),
	)
	return nil
}

// ======================================================
// S3
// ======================================================

type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Publisher struct {
	client ObjectPutter
	bucket string
	log    *zap.Logger
}

func NewS3Publisher(client ObjectPutter, bucket string, log *zap.Logger) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, log: log}
}

// ObjectKey agrupa por empresa e data agendada.
func ObjectKey(companyID uint, p Payload) string {
	name := p.AppointmentNumber
	if name == "" {
		name = fmt.Sprintf("appointment-%d", p.AppointmentID)
	}
	return fmt.Sprintf("checkins/%d/%s/%s.json", companyID, p.ScheduledDate, name)
}

func (p *S3Publisher) Publish(ctx context.Context, companyID uint, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal erp payload: %w", err)
	}

	key := ObjectKey(companyID, payload)
	if _, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("put erp payload %s: %w", key, err)
	}

	p.log.Info("erp payload stored",
		zap.String("bucket", p.bucket),
		zap.String("key", key),
	)
	return nil
}
