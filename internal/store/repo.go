package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an update targets a missing record.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when creating an account whose email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Profile is the durable per-user progress record.
type Profile struct {
	ID                   string   `firestore:"-" json:"id"`
	DisplayName          string   `firestore:"displayName" json:"displayName"`
	Email                string   `firestore:"email" json:"email"`
	PhotoRef             string   `firestore:"photoURL" json:"photoRef"`
	Coins                int      `firestore:"coins" json:"coins"`
	CollectedStickerIDs  []string `firestore:"collectedStickerIds" json:"collectedStickerIds"`
	AchievedMilestoneIDs []string `firestore:"achievedMilestoneIds" json:"achievedMilestoneIds"`
}

// ProfileField names a single profile field for merge writes. Values match
// the document keys used by the Firestore backend.
type ProfileField string

const (
	FieldDisplayName        ProfileField = "displayName"
	FieldEmail              ProfileField = "email"
	FieldPhotoRef           ProfileField = "photoURL"
	FieldCoins              ProfileField = "coins"
	FieldCollectedStickers  ProfileField = "collectedStickerIds"
	FieldAchievedMilestones ProfileField = "achievedMilestoneIds"
)

// AllProfileFields lists every writable profile field.
var AllProfileFields = []ProfileField{
	FieldDisplayName,
	FieldEmail,
	FieldPhotoRef,
	FieldCoins,
	FieldCollectedStickers,
	FieldAchievedMilestones,
}

// ProgressFields are the fields that change during play.
var ProgressFields = []ProfileField{
	FieldCoins,
	FieldCollectedStickers,
	FieldAchievedMilestones,
}

// ProfileRepo is the keyed account document store.
type ProfileRepo interface {
	// Get returns the profile for id, or nil if none exists.
	Get(ctx context.Context, id string) (*Profile, error)

	// Put merges the named fields of p into the stored profile, creating it
	// if needed. With no fields, every field is written.
	Put(ctx context.Context, p *Profile, fields ...ProfileField) error

	// All returns every stored profile.
	All(ctx context.Context) ([]Profile, error)
}

// Account holds login credentials for the local identity backend.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

// AccountRepo stores login credentials.
type AccountRepo interface {
	// Create inserts a new account. Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, a *Account) error

	// ByEmail returns the account for email, or nil if none exists.
	ByEmail(ctx context.Context, email string) (*Account, error)

	// UpdateDisplayName changes an account's display name. Returns ErrNotFound
	// for unknown ids.
	UpdateDisplayName(ctx context.Context, id, name string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when non-empty
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose, busiest first.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model, busiest first.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// fieldsOrAll returns fields, or every field when none are named.
func fieldsOrAll(fields []ProfileField) []ProfileField {
	if len(fields) == 0 {
		return AllProfileFields
	}
	return fields
}

// fieldValues maps each named field to its value in p. Nil id lists are
// written as empty lists.
func fieldValues(p *Profile, fields []ProfileField) map[ProfileField]any {
	out := make(map[ProfileField]any, len(fields))
	for _, f := range fieldsOrAll(fields) {
		switch f {
		case FieldDisplayName:
			out[f] = p.DisplayName
		case FieldEmail:
			out[f] = p.Email
		case FieldPhotoRef:
			out[f] = p.PhotoRef
		case FieldCoins:
			out[f] = p.Coins
		case FieldCollectedStickers:
			out[f] = nonNil(p.CollectedStickerIDs)
		case FieldAchievedMilestones:
			out[f] = nonNil(p.AchievedMilestoneIDs)
		}
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
