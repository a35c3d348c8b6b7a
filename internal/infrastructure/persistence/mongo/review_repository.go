package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/review"
	apperrors "github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
)

const reviewsCollection = "reviews"

type reviewDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	MovieID   int           `bson:"movieId"`
	AuthorID  bson.ObjectID `bson:"authorId"`
	Username  string        `bson:"username"`
	Rating    int           `bson:"rating"`
	Comment   string        `bson:"comment"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{coll: db.Database.Collection(reviewsCollection)}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	authorID, err := bson.ObjectIDFromHex(rev.AuthorID)
	if err != nil {
		return apperrors.Wrap(err, "invalid author id")
	}

	doc := &reviewDocument{
		MovieID:   rev.MovieID,
		AuthorID:  authorID,
		Username:  rev.Username,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt,
		UpdatedAt: rev.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(err, "failed to create review")
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		rev.ID = oid.Hex()
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrReviewNotFound
	}

	var doc reviewDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get review")
	}
	return toDomainReview(&doc), nil
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int) ([]*review.Review, error) {
	filter := bson.M{}
	if movieID != 0 {
		filter["movieId"] = movieID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reviews")
	}
	defer cursor.Close(ctx)

	reviews := make([]*review.Review, 0)
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode review")
		}
		reviews = append(reviews, toDomainReview(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate reviews")
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id string, update *review.Update) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrReviewNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Comment != nil {
		set["comment"] = *update.Comment
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return apperrors.Wrap(err, "failed to update review")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrReviewNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Wrap(err, "failed to delete review")
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}

func toDomainReview(doc *reviewDocument) *review.Review {
	return &review.Review{
		ID:        doc.ID.Hex(),
		MovieID:   doc.MovieID,
		AuthorID:  doc.AuthorID.Hex(),
		Username:  doc.Username,
		Rating:    doc.Rating,
		Comment:   doc.Comment,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
