package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
	apperrors "github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
)

const usersCollection = "users"

// userDocument is the BSON shape of a user record.
type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	PasswordHash string        `bson:"password"`
	Email        string        `bson:"email"`
	FirstName    string        `bson:"firstName,omitempty"`
	LastName     string        `bson:"lastName,omitempty"`
	AvatarURL    string        `bson:"avatarUrl,omitempty"`
	Language     string        `bson:"language,omitempty"`
	MoviesSeen   []int         `bson:"moviesSeen"`
	MoviesToSee  []int         `bson:"moviesToSee"`
	Favorites    []int         `bson:"favorites"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{coll: db.Database.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	doc := toUserDocument(u)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by ID")
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update *user.Update) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setField(set, "username", update.Username)
	setField(set, "email", update.Email)
	setField(set, "password", update.Password)
	setField(set, "firstName", update.FirstName)
	setField(set, "lastName", update.LastName)
	setField(set, "avatarUrl", update.AvatarURL)
	setField(set, "language", update.Language)
	setField(set, "moviesSeen", update.MoviesSeen)
	setField(set, "moviesToSee", update.MoviesToSee)
	setField(set, "favorites", update.Favorites)

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update user")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return apperrors.Wrap(err, "failed to update password hash")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func toUserDocument(u *user.User) *userDocument {
	return &userDocument{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		AvatarURL:    u.AvatarURL,
		Language:     u.Language,
		MoviesSeen:   u.MoviesSeen,
		MoviesToSee:  u.MoviesToSee,
		Favorites:    u.Favorites,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toDomainUser(doc *userDocument) *user.User {
	return &user.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Email:        doc.Email,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		AvatarURL:    doc.AvatarURL,
		Language:     doc.Language,
		MoviesSeen:   doc.MoviesSeen,
		MoviesToSee:  doc.MoviesToSee,
		Favorites:    doc.Favorites,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// setField adds a $set entry when the pointer is non-nil.
func setField[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}
