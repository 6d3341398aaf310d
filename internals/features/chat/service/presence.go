package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PresenceService tracks online users in a Redis set per institution.
// Membership carries a TTL refresh on connect so crashed clients age out.
type PresenceService struct {
	RDB *redis.Client
}

const presenceTTL = 15 * time.Minute

func presenceKey(institutionID uuid.UUID) string {
	return "presence:online:" + institutionID.String()
}

func (p *PresenceService) Connect(ctx context.Context, institutionID, userID uuid.UUID) error {
	pipe := p.RDB.TxPipeline()
	pipe.SAdd(ctx, presenceKey(institutionID), userID.String())
	pipe.Expire(ctx, presenceKey(institutionID), presenceTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (p *PresenceService) Disconnect(ctx context.Context, institutionID, userID uuid.UUID) error {
	return p.RDB.SRem(ctx, presenceKey(institutionID), userID.String()).Err()
}

func (p *PresenceService) IsOnline(ctx context.Context, institutionID, userID uuid.UUID) (bool, error) {
	return p.RDB.SIsMember(ctx, presenceKey(institutionID), userID.String()).Result()
}

// OnlineUsers returns the full online set keyed by user id.
func (p *PresenceService) OnlineUsers(ctx context.Context, institutionID uuid.UUID) (map[uuid.UUID]bool, error) {
	members, err := p.RDB.SMembers(ctx, presenceKey(institutionID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		if id, err := uuid.Parse(m); err == nil {
			out[id] = true
		}
	}
	return out, nil
}
