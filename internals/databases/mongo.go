package database

import (
	"context"
	"log"
	"time"

	"salonku_backend/internals/configs"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
)

// ConnectMongo is optional: without MONGODB_URI it returns nil and the
// attendance audit trail falls back to the log.
func ConnectMongo() *mongo.Database {
	uri := configs.GetEnv("MONGODB_URI")
	if uri == "" {
		log.Println("[MONGO] MONGODB_URI not set, audit trail goes to log only")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Printf("[MONGO] connect failed: %v", err)
		return nil
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Printf("[MONGO] ping failed: %v", err)
		_ = client.Disconnect(context.Background())
		return nil
	}

	MongoClient = client
	MongoDB = client.Database(configs.GetEnv("MONGODB_NAME", "salonku"))
	log.Printf("✅ Mongo connected (db=%s)", MongoDB.Name())
	return MongoDB
}

func DisconnectMongo(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Printf("[MONGO] disconnect: %v", err)
	}
}
