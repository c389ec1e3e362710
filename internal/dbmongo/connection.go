// Package dbmongo holds the avatar media store
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"dmhub/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// avatarBucketName is the GridFS bucket holding profile avatar blobs.
const avatarBucketName = "avatar_files"

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
	GridFS   *gridfs.Bucket
}

// NewMongoConnection dials the avatar store and opens the GridFS bucket.
// The connect timeout and pool size come from configuration so deployments
// can tune them without a rebuild.
func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	timeout := time.Duration(c.MongoDB.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(c.GetMongoURI()).
		SetConnectTimeout(timeout)
	if c.MongoDB.MaxPoolSize > 0 {
		opts = opts.SetMaxPoolSize(uint64(c.MongoDB.MaxPoolSize))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(c.MongoDB.Database)
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName(avatarBucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar bucket: %w", err)
	}

	return &MongoClient{
		Client:   client,
		Database: database,
		GridFS:   bucket,
	}, nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
