package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data"
	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/observability/metrics"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
)

// ResolutionOutcome classifies how a role lookup concluded.
type ResolutionOutcome string

const (
	// ResolutionResolved means a role was found through a healthy link.
	ResolutionResolved ResolutionOutcome = "resolved"
	// ResolutionNeedsRepair means the role was found through the email
	// fallback, implying the directory's auth-id link is missing or stale.
	ResolutionNeedsRepair ResolutionOutcome = "needs_repair"
	// ResolutionUnresolved means no role could be determined anywhere.
	ResolutionUnresolved ResolutionOutcome = "unresolved"
)

// Resolution is the explicit result of a role lookup. Callers branch on
// Outcome instead of inferring state from a bare role string.
type Resolution struct {
	Role     domainauth.Role
	UserID   string // legacy directory record id, when one was found
	Outcome  ResolutionOutcome
	Source   string // which cascade step produced the role
	Repaired bool   // a stale auth-id link was rewritten during this lookup
}

// Cascade source labels.
const (
	sourceSession = "session_metadata"
	sourceCache   = "identity_cache"
	sourceAuthID  = "auth_id"
	sourceEmail   = "email"
	sourceNone    = "none"
)

// RoleResolverOptions groups dependencies for RoleResolver.
type RoleResolverOptions struct {
	Users    core.UserRepository
	Identity ports.IdentityCache
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// RoleResolver determines a user's display role for layout chrome. It is
// strictly best effort: every failure degrades to RoleUnknown and never
// surfaces to the caller. Concurrent lookups for the same user collapse into
// a single cascade via singleflight.
type RoleResolver struct {
	users    core.UserRepository
	identity ports.IdentityCache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	group    singleflight.Group
}

// NewRoleResolver constructs a RoleResolver.
func NewRoleResolver(opts RoleResolverOptions) *RoleResolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RoleResolver{
		users:    opts.Users,
		identity: opts.Identity,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "role_resolver"),
	}
}

// Resolve walks the lookup cascade for the given session:
//
//  1. session role metadata, when present
//  2. cached directory id, then the record's role
//  3. directory lookup by auth-service id
//  4. directory lookup by email, repairing the stale auth-id link
//
// A nil session or an exhausted cascade yields RoleUnknown without error.
func (r *RoleResolver) Resolve(ctx context.Context, session *domainauth.Session) Resolution {
	if session == nil || session.UserID == "" {
		return r.finish(Resolution{Outcome: ResolutionUnresolved, Source: sourceNone})
	}

	if session.HasRoleMetadata() {
		return r.finish(Resolution{
			Role:    session.Role,
			Outcome: ResolutionResolved,
			Source:  sourceSession,
		})
	}

	// Collapse concurrent cascades for the same auth id. The shared result
	// is safe to reuse: resolution depends only on the session's identity.
	v, _, _ := r.group.Do(session.UserID, func() (any, error) {
		return r.cascade(ctx, session), nil
	})
	res, ok := v.(Resolution)
	if !ok {
		return r.finish(Resolution{Outcome: ResolutionUnresolved, Source: sourceNone})
	}
	return r.finish(res)
}

func (r *RoleResolver) cascade(ctx context.Context, session *domainauth.Session) Resolution {
	authID := session.UserID

	// Fast path: cached directory id.
	if r.identity != nil {
		if userID, err := r.identity.GetUserID(ctx, authID); err == nil {
			if role, ok := r.roleForRecord(ctx, userID); ok {
				return Resolution{
					Role:    role,
					UserID:  userID,
					Outcome: ResolutionResolved,
					Source:  sourceCache,
				}
			}
		} else if !errors.Is(err, ports.ErrCacheMiss) {
			r.logger.DebugContext(ctx, "identity cache lookup", "err", err)
		}
	}

	// Healthy link: directory row keyed by auth-service id.
	if user, err := r.users.GetByAuthID(ctx, authID); err == nil {
		r.cacheLink(ctx, authID, user.ID)
		return Resolution{
			Role:    roleOf(user.Role),
			UserID:  user.ID,
			Outcome: ResolutionResolved,
			Source:  sourceAuthID,
		}
	} else if !errors.Is(err, data.ErrUserNotFound) {
		r.logger.DebugContext(ctx, "directory lookup by auth id", "err", err)
	}

	// Fallback: the email matches but the auth-id link is missing or stale.
	if session.Email != "" {
		if user, err := r.users.GetByEmail(ctx, session.Email); err == nil {
			res := Resolution{
				Role:    roleOf(user.Role),
				UserID:  user.ID,
				Outcome: ResolutionNeedsRepair,
				Source:  sourceEmail,
			}
			res.Repaired = r.repairLink(ctx, user.ID, authID)
			r.cacheLink(ctx, authID, user.ID)
			return res
		} else if !errors.Is(err, data.ErrUserNotFound) {
			r.logger.DebugContext(ctx, "directory lookup by email", "err", err)
		}
	}

	return Resolution{Outcome: ResolutionUnresolved, Source: sourceNone}
}

// roleForRecord loads a directory record by id and extracts its role.
// A missing record invalidates the cascade step rather than failing it.
func (r *RoleResolver) roleForRecord(ctx context.Context, userID string) (domainauth.Role, bool) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, data.ErrUserNotFound) {
			r.logger.DebugContext(ctx, "directory lookup by id", "err", err)
		}
		return domainauth.RoleUnknown, false
	}
	if role := roleOf(user.Role); role != domainauth.RoleUnknown {
		return role, true
	}
	return domainauth.RoleUnknown, false
}

// repairLink rewrites the directory's auth-id link. The update is idempotent,
// so losing a race with another request costs nothing.
func (r *RoleResolver) repairLink(ctx context.Context, userID, authID string) bool {
	updated, err := r.users.AttachAuthID(ctx, userID, authID)
	if err != nil {
		r.logger.WarnContext(ctx, "repair auth-id link", "user_id", userID, "err", err)
		if r.metrics != nil {
			r.metrics.ObserveResolverRepair("error")
		}
		return false
	}
	if updated {
		r.logger.InfoContext(ctx, "repaired stale auth-id link", "user_id", userID)
		if r.metrics != nil {
			r.metrics.ObserveResolverRepair("repaired")
		}
		return true
	}
	if r.metrics != nil {
		r.metrics.ObserveResolverRepair("noop")
	}
	return false
}

func (r *RoleResolver) cacheLink(ctx context.Context, authID, userID string) {
	if r.identity == nil {
		return
	}
	if err := r.identity.SetUserID(ctx, authID, userID); err != nil {
		r.logger.DebugContext(ctx, "cache identity link", "err", err)
	}
}

func (r *RoleResolver) finish(res Resolution) Resolution {
	if r.metrics != nil {
		r.metrics.ObserveResolverOutcome(string(res.Outcome), res.Source)
	}
	return res
}

func roleOf(s *string) domainauth.Role {
	if s == nil {
		return domainauth.RoleUnknown
	}
	return domainauth.ParseRole(*s)
}
