package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sqliteProfileRepo implements ProfileRepo on the profiles table.
type sqliteProfileRepo struct {
	drv *entsql.Driver
}

var profileColumns = map[ProfileField]string{
	FieldDisplayName:        "display_name",
	FieldEmail:              "email",
	FieldPhotoRef:           "photo_ref",
	FieldCoins:              "coins",
	FieldCollectedStickers:  "collected_sticker_ids",
	FieldAchievedMilestones: "achieved_milestone_ids",
}

func (r *sqliteProfileRepo) Get(ctx context.Context, id string) (*Profile, error) {
	query, args := selectProfiles().Where(entsql.EQ("id", id)).Query()

	profiles, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (r *sqliteProfileRepo) Put(ctx context.Context, p *Profile, fields ...ProfileField) error {
	if p.ID == "" {
		return errors.New("put profile: empty id")
	}

	values := fieldValues(p, fields)
	cols := []string{"id", "updated_at"}
	vals := []any{p.ID, time.Now().UnixMilli()}
	for _, f := range fieldsOrAll(fields) {
		v := values[f]
		if ids, ok := v.([]string); ok {
			b, err := json.Marshal(ids)
			if err != nil {
				return fmt.Errorf("encode %s: %w", f, err)
			}
			v = string(b)
		}
		cols = append(cols, profileColumns[f])
		vals = append(vals, v)
	}

	query, args := builder().Insert("profiles").
		Columns(cols...).
		Values(vals...).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put profile %s: %w", p.ID, err)
	}
	return nil
}

func (r *sqliteProfileRepo) All(ctx context.Context) ([]Profile, error) {
	query, args := selectProfiles().OrderBy("id").Query()

	profiles, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func selectProfiles() *entsql.Selector {
	return builder().
		Select("id", "display_name", "email", "photo_ref", "coins",
			"collected_sticker_ids", "achieved_milestone_ids").
		From(entsql.Table("profiles"))
}

func (r *sqliteProfileRepo) query(ctx context.Context, query string, args []any) ([]Profile, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var (
			p                    Profile
			stickers, milestones string
		)
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Email, &p.PhotoRef, &p.Coins, &stickers, &milestones); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if err := json.Unmarshal([]byte(stickers), &p.CollectedStickerIDs); err != nil {
			return nil, fmt.Errorf("decode stickers for %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(milestones), &p.AchievedMilestoneIDs); err != nil {
			return nil, fmt.Errorf("decode milestones for %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
