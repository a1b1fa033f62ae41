package triggers

import (
	"context"
	"log"

	"github.com/scream-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watcher tails the collections' change streams and dispatches document
// changes to the fan-out and cascade reactions. All reactions are
// fire-and-forget: failures are logged, never retried, never surfaced to the
// request that caused them.
type Watcher struct {
	db      *mongo.Database
	fanout  *Fanout
	cascade *Cascade
}

// NewWatcher creates a new Watcher
func NewWatcher(db *mongo.Database, fanout *Fanout, cascade *Cascade) *Watcher {
	return &Watcher{db: db, fanout: fanout, cascade: cascade}
}

// Start launches one change-stream goroutine per watched collection
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx, "likes", []string{"insert", "delete"}, nil, w.handleLikeEvent)
	go w.watch(ctx, "comments", []string{"insert"}, nil, w.handleCommentEvent)
	go w.watch(ctx, "screams", []string{"delete"}, nil, w.handleScreamEvent)
	go w.watch(ctx, "users", []string{"update"}, options.ChangeStream().SetFullDocument(options.UpdateLookup), w.handleUserEvent)
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument      bson.Raw `bson:"fullDocument"`
	UpdateDescription struct {
		UpdatedFields bson.M `bson:"updatedFields"`
	} `bson:"updateDescription"`
}

func (w *Watcher) watch(ctx context.Context, collection string, ops []string, opts *options.ChangeStreamOptions, handle func(context.Context, changeEvent)) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": ops}}}},
	}

	var streamOpts []*options.ChangeStreamOptions
	if opts != nil {
		streamOpts = append(streamOpts, opts)
	}

	stream, err := w.db.Collection(collection).Watch(ctx, pipeline, streamOpts...)
	if err != nil {
		log.Printf("trigger: opening %s change stream: %v", collection, err)
		return
	}
	defer stream.Close(ctx)
	log.Printf("trigger: watching %s", collection)

	for stream.Next(ctx) {
		var event changeEvent
		if err := stream.Decode(&event); err != nil {
			log.Printf("trigger: decoding %s event: %v", collection, err)
			continue
		}
		handle(ctx, event)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Printf("trigger: %s change stream closed: %v", collection, err)
	}
}

func (w *Watcher) handleLikeEvent(ctx context.Context, event changeEvent) {
	switch event.OperationType {
	case "insert":
		var like models.Like
		if err := bson.Unmarshal(event.FullDocument, &like); err != nil {
			log.Printf("trigger: decoding like document: %v", err)
			return
		}
		if err := w.fanout.LikeCreated(ctx, like); err != nil {
			log.Printf("trigger: like notification: %v", err)
		}
	case "delete":
		id, ok := event.DocumentKey.ID.(primitive.ObjectID)
		if !ok {
			return
		}
		if err := w.fanout.LikeDeleted(ctx, id.Hex()); err != nil {
			log.Printf("trigger: removing like notification: %v", err)
		}
	}
}

func (w *Watcher) handleCommentEvent(ctx context.Context, event changeEvent) {
	var comment models.Comment
	if err := bson.Unmarshal(event.FullDocument, &comment); err != nil {
		log.Printf("trigger: decoding comment document: %v", err)
		return
	}
	if err := w.fanout.CommentCreated(ctx, comment); err != nil {
		log.Printf("trigger: comment notification: %v", err)
	}
}

func (w *Watcher) handleScreamEvent(ctx context.Context, event changeEvent) {
	id, ok := event.DocumentKey.ID.(primitive.ObjectID)
	if !ok {
		return
	}
	if err := w.cascade.ScreamDeleted(ctx, id.Hex()); err != nil {
		log.Printf("trigger: scream cascade cleanup: %v", err)
	}
}

func (w *Watcher) handleUserEvent(ctx context.Context, event changeEvent) {
	// updatedFields only lists fields that actually changed, so the
	// presence of imageUrl is the before != after check
	imageURL, ok := event.UpdateDescription.UpdatedFields["imageUrl"].(string)
	if !ok {
		return
	}
	handle, ok := event.DocumentKey.ID.(string)
	if !ok {
		return
	}
	if err := w.cascade.UserImageChanged(ctx, handle, imageURL); err != nil {
		log.Printf("trigger: refreshing scream images: %v", err)
	}
}
