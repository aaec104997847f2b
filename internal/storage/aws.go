package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/flutterbye/sms-engine/internal/config"
	"github.com/flutterbye/sms-engine/internal/sms"
)

// awsBackend stores the full snapshot in S3 and mirrors per-campaign
// state into DynamoDB for querying outside this service.
type awsBackend struct {
	dynamoDB  *dynamodb.Client
	s3Client  *s3.Client
	tableName string
	bucket    string
}

const snapshotKey = "snapshots/latest.json"

// campaignItem is the per-campaign DynamoDB row.
type campaignItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Data      string `dynamodbav:"Data"`
	Timestamp string `dynamodbav:"Timestamp"`
	TTL       int64  `dynamodbav:"TTL,omitempty"`
}

func newAWSBackend(ctx context.Context, cfg config.StorageConfig) (*awsBackend, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	if cfg.AWSAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &awsBackend{
		dynamoDB:  dynamodb.NewFromConfig(awsCfg),
		s3Client:  s3.NewFromConfig(awsCfg),
		tableName: cfg.DynamoDBTable,
		bucket:    cfg.S3Bucket,
	}, nil
}

func (b *awsBackend) SaveSnapshot(ctx context.Context, snap sms.Snapshot) error {
	jsonData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	_, err = b.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(snapshotKey),
		Body:        bytes.NewReader(jsonData),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("putting snapshot to S3: %w", err)
	}

	if b.tableName != "" {
		for _, c := range snap.Campaigns {
			if err := b.putCampaignItem(ctx, c.ID, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *awsBackend) putCampaignItem(ctx context.Context, id string, campaign interface{}) error {
	data, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("marshaling campaign: %w", err)
	}

	now := time.Now().UTC()
	item := campaignItem{
		PK:        fmt.Sprintf("CAMPAIGN#%s", id),
		SK:        now.Format("2006-01-02T15:04:05Z"),
		Data:      string(data),
		Timestamp: now.Format(time.RFC3339),
		TTL:       now.Add(90 * 24 * time.Hour).Unix(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshaling item: %w", err)
	}

	_, err = b.dynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("putting campaign to DynamoDB: %w", err)
	}
	return nil
}

func (b *awsBackend) LoadSnapshot(ctx context.Context) (*sms.Snapshot, error) {
	result, err := b.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(snapshotKey),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting snapshot from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot body: %w", err)
	}

	var snap sms.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return &snap, nil
}
