package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"aep-scraper/models"
	"aep-scraper/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// identityFields form the compound key every upsert matches on
var identityFields = []string{"country", "metric", "sector", "sub_sector", "sub_sub_sector"}

// MongoWriter stores normalized records in the target collection
type MongoWriter struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *utils.Logger
}

// NewMongoWriter connects, pings, and ensures the unique identity index
func NewMongoWriter(ctx context.Context, uri, dbName, collName string, logger *utils.Logger) (*MongoWriter, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	coll := client.Database(dbName).Collection(collName)

	keys := bson.D{}
	for _, f := range identityFields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true).SetName("identity_unique"),
	})
	if err != nil {
		logger.Warn("Could not ensure identity index: %v", err)
	}

	logger.Info("Connected to MongoDB: %s.%s", dbName, collName)
	return &MongoWriter{client: client, coll: coll, logger: logger}, nil
}

// UpsertRecords replaces each record wholesale, keyed on its identity tuple;
// per-document failures are logged and counted, not returned
func (w *MongoWriter) UpsertRecords(ctx context.Context, records []*models.EnergyRecord) (models.WriteStats, error) {
	var stats models.WriteStats
	if len(records) == 0 {
		return stats, nil
	}

	ops := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		ops = append(ops, mongo.NewReplaceOneModel().
			SetFilter(identityFilter(rec)).
			SetReplacement(recordDocument(rec)).
			SetUpsert(true))
	}

	res, err := w.coll.BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if !errors.As(err, &bulkErr) {
			return stats, fmt.Errorf("bulk upsert failed: %w", err)
		}
		stats.Failed = len(bulkErr.WriteErrors)
		for _, we := range bulkErr.WriteErrors {
			if we.Index >= 0 && we.Index < len(records) {
				w.logger.Error("Upsert failed for %s: %s", records[we.Index].IdentityKey(), we.Message)
			} else {
				w.logger.Error("Upsert failed: %s", we.Message)
			}
		}
	}
	if res != nil {
		stats.Inserted = int(res.UpsertedCount)
		stats.Updated = int(res.ModifiedCount)
		if unchanged := int(res.MatchedCount) - int(res.ModifiedCount); unchanged > 0 {
			stats.Unchanged = unchanged
		}
	}

	w.logger.Info("Upserted %d records: %d inserted, %d updated, %d unchanged, %d failed",
		len(records), stats.Inserted, stats.Updated, stats.Unchanged, stats.Failed)
	return stats, nil
}

// AllDocuments reads the whole collection in identity order, decoded to plain maps
func (w *MongoWriter) AllDocuments(ctx context.Context) ([]map[string]interface{}, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "country_serial", Value: 1},
		{Key: "metric", Value: 1},
		{Key: "sub_sub_sector", Value: 1},
	})
	cursor, err := w.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("collection scan failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("collection decode failed: %w", err)
	}
	return docs, nil
}

// Close disconnects the client
func (w *MongoWriter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return w.client.Disconnect(ctx)
}

// identityFilter matches exactly one stored record
func identityFilter(rec *models.EnergyRecord) bson.M {
	return bson.M{
		"country":        rec.Country,
		"metric":         rec.Metric,
		"sector":         rec.Sector,
		"sub_sector":     rec.SubSector,
		"sub_sub_sector": rec.SubSubSector,
	}
}

// recordDocument flattens a record into its stored shape: identity and
// provenance fields plus one top-level key per year, null where the
// portal has no value
func recordDocument(rec *models.EnergyRecord) bson.M {
	doc := bson.M{
		"country":        rec.Country,
		"country_serial": rec.CountrySerial,
		"metric":         rec.Metric,
		"unit":           rec.Unit,
		"sector":         rec.Sector,
		"sub_sector":     rec.SubSector,
		"sub_sub_sector": rec.SubSubSector,
		"source_link":    rec.SourceLink,
		"source":         rec.Source,
	}
	for y, v := range rec.Years {
		key := strconv.Itoa(y)
		if v == nil {
			doc[key] = nil
		} else {
			doc[key] = *v
		}
	}
	return doc
}
