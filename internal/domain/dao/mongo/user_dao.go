package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savora/savora-cloud-go/internal/domain/dao"
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/document"
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/mapper"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/policy"
)

// userDAO implements dao.UserDAO using MongoDB.
type userDAO struct {
	*baseMongoDAO[document.UserDocument]
	client *mongo.Client
	mapper *mapper.UserMapper
}

// NewUserDAO creates a new MongoDB-based UserDAO.
func NewUserDAO(db *mongo.Database, idCounter *IDCounter) dao.UserDAO {
	return &userDAO{
		baseMongoDAO: newBaseMongoDAO[document.UserDocument](
			db,
			document.UserDocument{}.CollectionName(),
			idCounter,
		),
		client: db.Client(),
		mapper: mapper.NewUserMapper(),
	}
}

// Create inserts a new user into MongoDB.
func (d *userDAO) Create(ctx context.Context, user *entity.User) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	doc := d.mapper.ToDocument(user)
	return d.insertOne(ctx, doc)
}

// FindByID retrieves a non-deleted user by their numeric ID.
func (d *userDAO) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindByEmail retrieves a non-deleted user by their email.
func (d *userDAO) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	filter := withNotDeleted(bson.M{"email": email})

	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindByReferralCode retrieves the owner of a referral code. Deleted and
// banned owners are returned too: the caller decides whether the code is
// still usable.
func (d *userDAO) FindByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	filter := bson.M{"referral.code": code}

	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindAll retrieves users with pagination.
func (d *userDAO) FindAll(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	filter := notDeletedFilter()

	total, err := d.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * size)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(size)).
		SetSort(bson.D{{Key: "numeric_id", Value: -1}})

	var docs []*document.UserDocument
	if err := d.findManyByFilter(ctx, filter, opts, &docs); err != nil {
		return nil, 0, err
	}

	return d.mapper.ToEntities(docs), total, nil
}

// Update replaces the stored document for the user.
func (d *userDAO) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(user)

	filter := bson.M{"numeric_id": user.ID}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	return err
}

// ExistsByEmail checks if a user with the given email exists.
func (d *userDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return d.existsBy(ctx, "email", email)
}

// ExistsByReferralCode checks if any user owns the given referral code.
func (d *userDAO) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	count, err := d.count(ctx, bson.M{"referral.code": code})
	return count > 0, err
}

// SoftDelete marks a user deleted.
func (d *userDAO) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return d.softDelete(ctx, id, time.Now())
}

// Restore clears the soft-delete marker on a user.
func (d *userDAO) Restore(ctx context.Context, id uint) (bool, error) {
	return d.restore(ctx, id, time.Now())
}

// PermanentDelete physically removes an already soft-deleted user.
func (d *userDAO) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return d.permanentDelete(ctx, id)
}

// PushSession atomically inserts a session at the front of the registry and
// trims the array to max in the same write, avoiding a read-modify-write
// race between concurrent logins.
func (d *userDAO) PushSession(ctx context.Context, id uint, session entity.Session, max int) error {
	now := time.Now()
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{
		"$push": bson.M{
			"sessions": bson.M{
				"$each":     []document.SessionDocument{mapper.SessionToDocument(session)},
				"$position": 0,
				"$slice":    max,
			},
		},
		"$set": bson.M{"last_login": now, "updated_at": now},
	}
	_, err := d.updateOne(ctx, filter, update)
	return err
}

// PullSessionByID removes the session with the given identifier and reports
// whether one was removed.
func (d *userDAO) PullSessionByID(ctx context.Context, id uint, sessionID string) (bool, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{
		"$pull": bson.M{"sessions": bson.M{"session_id": sessionID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return d.updateOne(ctx, filter, update)
}

// PullSessionsExceptToken removes every session whose token differs from the
// given one and returns the number removed. When no stored session carries
// the token, every session is removed.
func (d *userDAO) PullSessionsExceptToken(ctx context.Context, id uint, token string) (int, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{
		"$pull": bson.M{"sessions": bson.M{"token": bson.M{"$ne": token}}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before document.UserDocument
	err := d.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, s := range before.Sessions {
		if s.Token != token {
			removed++
		}
	}
	return removed, nil
}

// RemoveExpiredSessions pulls naturally expired sessions from every user and
// returns the number of users affected.
func (d *userDAO) RemoveExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"sessions.expires_at": bson.M{"$lt": now}}
	update := bson.M{"$pull": bson.M{"sessions": bson.M{"expires_at": bson.M{"$lt": now}}}}
	return d.updateMany(ctx, filter, update)
}

// PushActivity atomically prepends an activity entry, capped at max.
func (d *userDAO) PushActivity(ctx context.Context, id uint, activity entity.Activity, max int) error {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{
		"$push": bson.M{
			"activities": bson.M{
				"$each":     []document.ActivityDocument{mapper.ActivityToDocument(activity)},
				"$position": 0,
				"$slice":    max,
			},
		},
	}
	_, err := d.updateOne(ctx, filter, update)
	return err
}

// SetActivities replaces the stored activity log for a user.
func (d *userDAO) SetActivities(ctx context.Context, id uint, activities []entity.Activity) error {
	filter := bson.M{"numeric_id": id}
	update := bson.M{"$set": bson.M{"activities": mapper.ActivitiesToDocuments(activities)}}
	_, err := d.updateOne(ctx, filter, update)
	return err
}

// CleanupActivitiesBefore removes activity entries older than cutoff from
// every user and returns the total number of entries removed.
func (d *userDAO) CleanupActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	match := bson.M{"activities.created_at": bson.M{"$lt": cutoff}}

	// Count affected entries first; $pull reports modified documents, not
	// removed array elements.
	pipeline := []bson.M{
		{"$match": match},
		{"$project": bson.M{
			"stale": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$activities",
				"as":    "a",
				"cond":  bson.M{"$lt": []any{"$$a.created_at", cutoff}},
			}}},
		}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$stale"}}},
	}

	cursor, err := d.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return 0, err
	}
	if len(counts) == 0 || counts[0].Total == 0 {
		return 0, nil
	}

	update := bson.M{"$pull": bson.M{"activities": bson.M{"created_at": bson.M{"$lt": cutoff}}}}
	if _, err := d.updateMany(ctx, match, update); err != nil {
		return 0, err
	}
	return counts[0].Total, nil
}

// EnforceCollectionCaps repairs users whose embedded collections exceed the
// caps. Entries are ranked by their own timestamp, not array order, since
// documents written before the caps existed carry no ordering guarantee.
// Returns the number of users repaired.
func (d *userDAO) EnforceCollectionCaps(ctx context.Context, maxSessions, maxActivities int) (int, error) {
	filter := bson.M{"$expr": bson.M{"$or": []bson.M{
		{"$gt": []any{bson.M{"$size": bson.M{"$ifNull": []any{"$sessions", []any{}}}}, maxSessions}},
		{"$gt": []any{bson.M{"$size": bson.M{"$ifNull": []any{"$activities", []any{}}}}, maxActivities}},
	}}}

	var docs []*document.UserDocument
	if err := d.findManyByFilter(ctx, filter, nil, &docs); err != nil {
		return 0, err
	}

	repaired := 0
	for _, doc := range docs {
		set := bson.M{}
		if len(doc.Sessions) > maxSessions {
			set["sessions"] = policy.TrimNewest(doc.Sessions, maxSessions,
				func(s document.SessionDocument) time.Time { return s.CreatedAt })
		}
		if len(doc.Activities) > maxActivities {
			set["activities"] = policy.TrimNewest(doc.Activities, maxActivities,
				func(a document.ActivityDocument) time.Time { return a.CreatedAt })
		}
		if len(set) == 0 {
			continue
		}
		if _, err := d.updateOne(ctx, bson.M{"numeric_id": doc.NumericID}, bson.M{"$set": set}); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}

// SetAddresses replaces the stored address book for a user.
func (d *userDAO) SetAddresses(ctx context.Context, id uint, addresses []entity.Address) error {
	doc := d.mapper.ToDocument(&entity.User{Addresses: addresses})
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{"$set": bson.M{"addresses": doc.Addresses, "updated_at": time.Now()}}
	_, err := d.updateOne(ctx, filter, update)
	return err
}

// PushReward appends a reward ledger entry and bumps the earned counter.
func (d *userDAO) PushReward(ctx context.Context, id uint, reward entity.Reward) error {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{
		"$push": bson.M{"referral.rewards": mapper.RewardToDocument(reward)},
		"$inc":  bson.M{"referral.stats.total_rewards_earned": reward.Amount},
	}
	_, err := d.updateOne(ctx, filter, update)
	return err
}

// ClaimReward flips an unclaimed reward to claimed and credits the loyalty
// balance in a single conditional write. The claimed=false condition in the
// filter makes the operation safe against concurrent double-claims: only one
// writer can match.
func (d *userDAO) ClaimReward(ctx context.Context, id uint, rewardID string, amount int, now time.Time) (bool, error) {
	filter := withNotDeleted(bson.M{
		"numeric_id": id,
		"referral.rewards": bson.M{"$elemMatch": bson.M{
			"reward_id": rewardID,
			"claimed":   false,
		}},
	})
	update := bson.M{
		"$set": bson.M{
			"referral.rewards.$.claimed":    true,
			"referral.rewards.$.claimed_at": now,
			"updated_at":                    now,
		},
		"$inc": bson.M{
			"loyalty_points":                       amount,
			"referral.stats.total_rewards_claimed": amount,
		},
	}
	return d.updateOne(ctx, filter, update)
}

// CompleteReferralEntry moves a verified referral entry to completed and
// records the earned reward amount. Returns false when no verified entry for
// the referred user exists.
func (d *userDAO) CompleteReferralEntry(ctx context.Context, referrerID, referredUserID uint, rewardEarned int, completedAt time.Time) (bool, error) {
	filter := withNotDeleted(bson.M{
		"numeric_id": referrerID,
		"referral.referrals": bson.M{"$elemMatch": bson.M{
			"user_id": referredUserID,
			"status":  string(entity.ReferralVerified),
		}},
	})
	update := bson.M{
		"$set": bson.M{
			"referral.referrals.$.status":       string(entity.ReferralCompleted),
			"referral.referrals.$.completed_at": completedAt,
			"updated_at":                        completedAt,
		},
		"$inc": bson.M{
			"referral.referrals.$.reward_earned": rewardEarned,
			"referral.stats.completed_referrals": 1,
		},
	}
	return d.updateOne(ctx, filter, update)
}

// UpdateReferralSettings stores the sharing preferences.
func (d *userDAO) UpdateReferralSettings(ctx context.Context, id uint, settings entity.ReferralSettings) error {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{"$set": bson.M{
		"referral.settings.notify_on_referral": settings.NotifyOnReferral,
		"referral.settings.allow_sharing":      settings.AllowSharing,
		"updated_at":                           time.Now(),
	}}
	_, err := d.updateOne(ctx, filter, update)
	return err
}

// ApplyReferralSignup runs the two-document referral linkage inside a
// MongoDB transaction. Either both users are updated or neither is.
func (d *userDAO) ApplyReferralSignup(ctx context.Context, referrerID uint, entry entity.ReferralEntry, referrerReward entity.Reward, newUserID uint, referredBy entity.ReferredBy, signupReward entity.Reward) error {
	session, err := d.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	now := time.Now()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		referrerUpdate := bson.M{
			"$push": bson.M{
				"referral.referrals": mapper.ReferralEntryToDocument(entry),
				"referral.rewards":   mapper.RewardToDocument(referrerReward),
			},
			"$inc": bson.M{
				"referral.stats.total_referrals":      1,
				"referral.stats.total_rewards_earned": referrerReward.Amount,
			},
			"$set": bson.M{"updated_at": now},
		}
		res, err := d.collection.UpdateOne(sc, withNotDeleted(bson.M{"numeric_id": referrerID}), referrerUpdate)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}

		newUserUpdate := bson.M{
			"$set": bson.M{
				"referral.referred_by": document.ReferredByDocument{
					UserID:       referredBy.UserID,
					Code:         referredBy.Code,
					BonusClaimed: referredBy.BonusClaimed,
					ReferredAt:   referredBy.ReferredAt,
				},
				"updated_at": now,
			},
			"$push": bson.M{"referral.rewards": mapper.RewardToDocument(signupReward)},
			"$inc":  bson.M{"referral.stats.total_rewards_earned": signupReward.Amount},
		}
		res, err = d.collection.UpdateOne(sc, withNotDeleted(bson.M{"numeric_id": newUserID}), newUserUpdate)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return nil, nil
	})
	return err
}
