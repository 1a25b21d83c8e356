// Package mapper provides conversion between domain entities and MongoDB
// documents.
package mapper

import (
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/document"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// UserMapper converts between User entity and UserDocument.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDocument converts a User entity to a UserDocument.
func (m *UserMapper) ToDocument(user *entity.User) *document.UserDocument {
	if user == nil {
		return nil
	}

	doc := &document.UserDocument{
		NumericID:     user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Phone:         user.Phone,
		Password:      user.Password,
		Role:          string(user.Role),
		LoyaltyPoints: user.LoyaltyPoints,
		LastLogin:     user.LastLogin,
		Sessions:      SessionsToDocuments(user.Sessions),
		Activities:    ActivitiesToDocuments(user.Activities),
		Addresses:     addressesToDocuments(user.Addresses),
		Referral:      referralToDocument(user.Referral),
		Status: document.StatusDocument{
			IsVerified: user.Status.IsVerified,
			IsActive:   user.Status.IsActive,
			IsBanned:   user.Status.IsBanned,
			VerifiedAt: user.Status.VerifiedAt,
			BannedAt:   user.Status.BannedAt,
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		DeletedAt: user.DeletedAt,
	}

	return doc
}

// ToEntity converts a UserDocument to a User entity.
func (m *UserMapper) ToEntity(doc *document.UserDocument) *entity.User {
	if doc == nil {
		return nil
	}

	return &entity.User{
		ID:            doc.NumericID,
		FirstName:     doc.FirstName,
		LastName:      doc.LastName,
		Email:         doc.Email,
		Phone:         doc.Phone,
		Password:      doc.Password,
		Role:          entity.UserRole(doc.Role),
		LoyaltyPoints: doc.LoyaltyPoints,
		LastLogin:     doc.LastLogin,
		Sessions:      SessionsToEntities(doc.Sessions),
		Activities:    ActivitiesToEntities(doc.Activities),
		Addresses:     addressesToEntities(doc.Addresses),
		Referral:      referralToEntity(doc.Referral),
		Status: entity.AccountStatus{
			IsVerified: doc.Status.IsVerified,
			IsActive:   doc.Status.IsActive,
			IsBanned:   doc.Status.IsBanned,
			VerifiedAt: doc.Status.VerifiedAt,
			BannedAt:   doc.Status.BannedAt,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		DeletedAt: doc.DeletedAt,
	}
}

// ToEntities converts a slice of documents to entities.
func (m *UserMapper) ToEntities(docs []*document.UserDocument) []*entity.User {
	users := make([]*entity.User, len(docs))
	for i, doc := range docs {
		users[i] = m.ToEntity(doc)
	}
	return users
}

// SessionToDocument converts a single session entity.
func SessionToDocument(s entity.Session) document.SessionDocument {
	return document.SessionDocument{
		SessionID: s.ID,
		Token:     s.Token,
		Device:    s.Device,
		Location:  s.Location,
		IP:        s.IP,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// SessionsToDocuments converts session entities to documents.
func SessionsToDocuments(sessions []entity.Session) []document.SessionDocument {
	if sessions == nil {
		return nil
	}
	docs := make([]document.SessionDocument, len(sessions))
	for i, s := range sessions {
		docs[i] = SessionToDocument(s)
	}
	return docs
}

// SessionsToEntities converts session documents to entities.
func SessionsToEntities(docs []document.SessionDocument) []entity.Session {
	if docs == nil {
		return nil
	}
	sessions := make([]entity.Session, len(docs))
	for i, d := range docs {
		sessions[i] = entity.Session{
			ID:        d.SessionID,
			Token:     d.Token,
			Device:    d.Device,
			Location:  d.Location,
			IP:        d.IP,
			CreatedAt: d.CreatedAt,
			ExpiresAt: d.ExpiresAt,
		}
	}
	return sessions
}

// ActivityToDocument converts a single activity entity.
func ActivityToDocument(a entity.Activity) document.ActivityDocument {
	return document.ActivityDocument{
		ActivityID:  a.ID,
		Type:        a.Type,
		Description: a.Description,
		Status:      string(a.Status),
		IP:          a.IP,
		UserAgent:   a.UserAgent,
		Device:      a.Device,
		CreatedAt:   a.CreatedAt,
	}
}

// ActivitiesToDocuments converts activity entities to documents.
func ActivitiesToDocuments(activities []entity.Activity) []document.ActivityDocument {
	if activities == nil {
		return nil
	}
	docs := make([]document.ActivityDocument, len(activities))
	for i, a := range activities {
		docs[i] = ActivityToDocument(a)
	}
	return docs
}

// ActivitiesToEntities converts activity documents to entities.
func ActivitiesToEntities(docs []document.ActivityDocument) []entity.Activity {
	if docs == nil {
		return nil
	}
	activities := make([]entity.Activity, len(docs))
	for i, d := range docs {
		activities[i] = entity.Activity{
			ID:          d.ActivityID,
			Type:        d.Type,
			Description: d.Description,
			Status:      entity.ActivityStatus(d.Status),
			IP:          d.IP,
			UserAgent:   d.UserAgent,
			Device:      d.Device,
			CreatedAt:   d.CreatedAt,
		}
	}
	return activities
}

func addressesToDocuments(addresses []entity.Address) []document.AddressDocument {
	if addresses == nil {
		return nil
	}
	docs := make([]document.AddressDocument, len(addresses))
	for i, a := range addresses {
		docs[i] = document.AddressDocument{
			Label:      a.Label,
			Street:     a.Street,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			IsDefault:  a.IsDefault,
			IsDeleted:  a.IsDeleted,
			DeletedAt:  a.DeletedAt,
			CreatedAt:  a.CreatedAt,
		}
	}
	return docs
}

func addressesToEntities(docs []document.AddressDocument) []entity.Address {
	if docs == nil {
		return nil
	}
	addresses := make([]entity.Address, len(docs))
	for i, d := range docs {
		addresses[i] = entity.Address{
			Label:      d.Label,
			Street:     d.Street,
			City:       d.City,
			State:      d.State,
			PostalCode: d.PostalCode,
			Country:    d.Country,
			IsDefault:  d.IsDefault,
			IsDeleted:  d.IsDeleted,
			DeletedAt:  d.DeletedAt,
			CreatedAt:  d.CreatedAt,
		}
	}
	return addresses
}

// RewardToDocument converts a single reward entity.
func RewardToDocument(r entity.Reward) document.RewardDocument {
	return document.RewardDocument{
		RewardID:  r.ID,
		Type:      string(r.Type),
		Amount:    r.Amount,
		Claimed:   r.Claimed,
		ClaimedAt: r.ClaimedAt,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
	}
}

// ReferralEntryToDocument converts a single referral entry entity.
func ReferralEntryToDocument(e entity.ReferralEntry) document.ReferralEntryDocument {
	return document.ReferralEntryDocument{
		UserID:       e.UserID,
		Name:         e.Name,
		Status:       string(e.Status),
		RewardEarned: e.RewardEarned,
		CreatedAt:    e.CreatedAt,
		CompletedAt:  e.CompletedAt,
	}
}

func referralToDocument(r entity.ReferralLedger) document.ReferralDocument {
	doc := document.ReferralDocument{
		Code:        r.Code,
		EncryptedID: r.EncryptedID,
		Stats: document.ReferralStatsDocument{
			TotalReferrals:      r.Stats.TotalReferrals,
			CompletedReferrals:  r.Stats.CompletedReferrals,
			TotalRewardsEarned:  r.Stats.TotalRewardsEarned,
			TotalRewardsClaimed: r.Stats.TotalRewardsClaimed,
		},
		Settings: document.ReferralSettingsDocument{
			NotifyOnReferral: r.Settings.NotifyOnReferral,
			AllowSharing:     r.Settings.AllowSharing,
		},
	}
	if r.ReferredBy != nil {
		doc.ReferredBy = &document.ReferredByDocument{
			UserID:       r.ReferredBy.UserID,
			Code:         r.ReferredBy.Code,
			BonusClaimed: r.ReferredBy.BonusClaimed,
			ReferredAt:   r.ReferredBy.ReferredAt,
		}
	}
	for _, e := range r.Referrals {
		doc.Referrals = append(doc.Referrals, ReferralEntryToDocument(e))
	}
	for _, rw := range r.Rewards {
		doc.Rewards = append(doc.Rewards, RewardToDocument(rw))
	}
	return doc
}

func referralToEntity(doc document.ReferralDocument) entity.ReferralLedger {
	ledger := entity.ReferralLedger{
		Code:        doc.Code,
		EncryptedID: doc.EncryptedID,
		Stats: entity.ReferralStats{
			TotalReferrals:      doc.Stats.TotalReferrals,
			CompletedReferrals:  doc.Stats.CompletedReferrals,
			TotalRewardsEarned:  doc.Stats.TotalRewardsEarned,
			TotalRewardsClaimed: doc.Stats.TotalRewardsClaimed,
		},
		Settings: entity.ReferralSettings{
			NotifyOnReferral: doc.Settings.NotifyOnReferral,
			AllowSharing:     doc.Settings.AllowSharing,
		},
	}
	if doc.ReferredBy != nil {
		ledger.ReferredBy = &entity.ReferredBy{
			UserID:       doc.ReferredBy.UserID,
			Code:         doc.ReferredBy.Code,
			BonusClaimed: doc.ReferredBy.BonusClaimed,
			ReferredAt:   doc.ReferredBy.ReferredAt,
		}
	}
	for _, e := range doc.Referrals {
		ledger.Referrals = append(ledger.Referrals, entity.ReferralEntry{
			UserID:       e.UserID,
			Name:         e.Name,
			Status:       entity.ReferralStatus(e.Status),
			RewardEarned: e.RewardEarned,
			CreatedAt:    e.CreatedAt,
			CompletedAt:  e.CompletedAt,
		})
	}
	for _, rw := range doc.Rewards {
		ledger.Rewards = append(ledger.Rewards, entity.Reward{
			ID:        rw.RewardID,
			Type:      entity.RewardType(rw.Type),
			Amount:    rw.Amount,
			Claimed:   rw.Claimed,
			ClaimedAt: rw.ClaimedAt,
			ExpiresAt: rw.ExpiresAt,
			CreatedAt: rw.CreatedAt,
		})
	}
	return ledger
}
