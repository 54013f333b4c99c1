// Package authz derives authorization decisions for the UI from session and
// membership state. Everything here is pure: decisions are recomputed from
// the latest fetched state and never cached across a membership reload. None
// of it is authoritative; the server re-checks every action.
package authz

import (
	"github.com/aidar/teamhub/internal/client"
	"github.com/aidar/teamhub/internal/domain"
)

// CanViewProtectedRoute reports whether protected screens may render
func CanViewProtectedRoute(session client.Session) bool {
	return session.Status == client.StatusResolved
}

// EffectiveRole derives the user's role within one team from that team's
// membership list. Absence means the server granted no visibility beyond
// what already arrived.
func EffectiveRole(members []domain.Membership, userID int64) (domain.Role, bool) {
	member, ok := domain.MemberOf(members, userID)
	if !ok {
		return "", false
	}
	return member.Role, true
}

// IsAdmin reports whether the user is an admin of the team whose membership
// list is given
func IsAdmin(members []domain.Membership, userID int64) bool {
	role, ok := EffectiveRole(members, userID)
	return ok && role == domain.RoleAdmin
}

// CanMutateOtherMember reports whether the user may add, re-role or remove
// the target member. Self-mutation is always denied.
func CanMutateOtherMember(members []domain.Membership, userID, targetUserID int64) bool {
	return IsAdmin(members, userID) && targetUserID != userID
}
