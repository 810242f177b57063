package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UsersCollection is the Firestore collection holding one document per user.
const UsersCollection = "users"

// FirestoreProfileRepo implements ProfileRepo on a Firestore collection.
type FirestoreProfileRepo struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreProfileRepo returns a repo over the users collection.
func NewFirestoreProfileRepo(client *firestore.Client) *FirestoreProfileRepo {
	return &FirestoreProfileRepo{client: client, collection: UsersCollection}
}

func (r *FirestoreProfileRepo) Get(ctx context.Context, id string) (*Profile, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}

	var p Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", id, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

func (r *FirestoreProfileRepo) Put(ctx context.Context, p *Profile, fields ...ProfileField) error {
	if p.ID == "" {
		return errors.New("put profile: empty id")
	}

	_, err := r.client.Collection(r.collection).Doc(p.ID).Set(ctx, documentData(p, fields), firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("put profile %s: %w", p.ID, err)
	}
	return nil
}

func (r *FirestoreProfileRepo) All(ctx context.Context) ([]Profile, error) {
	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	var out []Profile
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}

		var p Profile
		if err := doc.DataTo(&p); err != nil {
			log.Warn().Err(err).Str("user_id", doc.Ref.ID).Msg("skipping undecodable profile")
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// documentData builds the merge payload for the named fields.
func documentData(p *Profile, fields []ProfileField) map[string]any {
	values := fieldValues(p, fields)
	data := make(map[string]any, len(values))
	for f, v := range values {
		data[string(f)] = v
	}
	return data
}
