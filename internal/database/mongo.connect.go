package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doilonvl/salathai-be-demo/config"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// GetInstance kết nối MongoDB theo MONGODB_CONNECTION_URI và ping thử primary.
// Lỗi được trả về cho caller quyết định dừng server.
func GetInstance(ctx context.Context, c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("database connection URL is empty")
	}

	// Lưu lượng nhỏ, pool vừa đủ cho một instance
	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetAppName("salathai-be").
		SetMaxPoolSize(20).
		SetMinPoolSize(2).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GetAppLogger().WithField("database", c.MongoDB_DBName).Info("Đã kết nối MongoDB")
	return client, nil
}

// CloseInstance đóng kết nối MongoDB
func CloseInstance(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.GetAppLogger().WithError(err).Error("Không thể đóng kết nối MongoDB")
		return err
	}
	logger.GetAppLogger().Info("Đã đóng kết nối MongoDB")
	return nil
}
