// Package store is the document-store adapter: find/update/delete-by-filter
// primitives over named Mongo collections. Everything above it works in
// read-modify-write terms; there is no optimistic concurrency here.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
)

// Collection names. One comment-thread document per post, one graph and
// one feed document per user.
const (
	ColUsers         = "users"
	ColPosts         = "posts"
	ColComments      = "comments"
	ColFollowers     = "followers"
	ColNotifications = "notifications"
	ColProfiles      = "profiles"
)

type Client struct {
	cli *mongo.Client
	db  *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Client{cli: cli, db: cli.Database(dbName)}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.cli.Disconnect(ctx)
}

type FindOpts struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// FindOne decodes the first document matching filter into out.
// Missing documents come back as a not-found taxonomy error.
func (c *Client) FindOne(ctx context.Context, col string, filter bson.M, out any) error {
	err := c.db.Collection(col).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound("document not found")
	}
	if err != nil {
		return apperr.Unavailable("store find", err)
	}
	return nil
}

func (c *Client) FindMany(ctx context.Context, col string, filter bson.M, fo FindOpts, out any) error {
	opts := options.Find()
	if fo.Sort != nil {
		opts.SetSort(fo.Sort)
	}
	if fo.Skip > 0 {
		opts.SetSkip(fo.Skip)
	}
	if fo.Limit > 0 {
		opts.SetLimit(fo.Limit)
	}
	cur, err := c.db.Collection(col).Find(ctx, filter, opts)
	if err != nil {
		return apperr.Unavailable("store find many", err)
	}
	if err := cur.All(ctx, out); err != nil {
		return apperr.Unavailable("store decode", err)
	}
	return nil
}

func (c *Client) Count(ctx context.Context, col string, filter bson.M) (int64, error) {
	n, err := c.db.Collection(col).CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperr.Unavailable("store count", err)
	}
	return n, nil
}

// UpdateOne applies patch (a full Mongo update document, e.g. {"$set": ...})
// to the first match.
func (c *Client) UpdateOne(ctx context.Context, col string, filter, patch bson.M) error {
	res, err := c.db.Collection(col).UpdateOne(ctx, filter, patch)
	if err != nil {
		return apperr.Unavailable("store update", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("document not found")
	}
	return nil
}

// DeleteMatching pulls every element of the array field subfield that
// matches the given tuple, duplicates included.
func (c *Client) DeleteMatching(ctx context.Context, col string, filter bson.M, subfield string, match bson.M) error {
	_, err := c.db.Collection(col).UpdateOne(ctx, filter, bson.M{
		"$pull": bson.M{subfield: match},
	})
	if err != nil {
		return apperr.Unavailable("store pull", err)
	}
	return nil
}

// Save upserts the whole document identified by filter. Used at the end
// of every read-modify-write sequence.
func (c *Client) Save(ctx context.Context, col string, filter bson.M, doc any) error {
	_, err := c.db.Collection(col).ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return apperr.Unavailable("store save", err)
	}
	return nil
}

func (c *Client) DeleteOne(ctx context.Context, col string, filter bson.M) error {
	res, err := c.db.Collection(col).DeleteOne(ctx, filter)
	if err != nil {
		return apperr.Unavailable("store delete", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("document not found")
	}
	return nil
}
