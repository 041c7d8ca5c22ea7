package coordinator

import (
	"context"
	"fmt"

	"github.com/mmynk/groupledger/internal/session"
)

// RemoveMember takes a member out of a group.
//
// The member's splits are purged from every expense of the group before the
// membership row goes; if the purge fails the membership is left in place.
// Admins may remove anyone, members only themselves. The last admin cannot
// be removed.
func (c *Coordinator) RemoveMember(ctx context.Context, s *session.Session, groupID, memberID string) error {
	r := c.start("remove_member", "group_id", groupID, "member_id", memberID)

	// Validating
	caller, err := c.requireMembership(ctx, s, groupID)
	if err != nil {
		return r.fail(err)
	}
	if !caller.IsAdmin() && memberID != s.MemberID {
		return r.fail(fmt.Errorf("%w: only an admin can remove other members", ErrForbidden))
	}
	target, err := c.repo.GetMembership(ctx, groupID, memberID)
	if err != nil {
		return r.fail(fmt.Errorf("failed to load membership: %w", err))
	}
	if target.IsAdmin() {
		memberships, err := c.repo.ListMemberships(ctx, groupID)
		if err != nil {
			return r.fail(fmt.Errorf("failed to list members: %w", err))
		}
		admins := 0
		for _, m := range memberships {
			if m.IsAdmin() {
				admins++
			}
		}
		if admins <= 1 {
			return r.fail(invalid("member_id", "cannot remove the last admin of the group"))
		}
	}

	// LookupSplits
	splits, err := c.repo.ListSplitsByMember(ctx, groupID, memberID)
	if err != nil {
		return r.fail(fmt.Errorf("failed to look up splits: %w", err))
	}
	seen := make(map[string]bool, len(splits))
	var expenseIDs []string
	for _, split := range splits {
		if !seen[split.ExpenseID] {
			seen[split.ExpenseID] = true
			expenseIDs = append(expenseIDs, split.ExpenseID)
		}
	}

	pctx, err := beginPersist(ctx, r)
	if err != nil {
		return r.fail(err)
	}

	// PurgeSplits
	if len(expenseIDs) > 0 {
		n, err := c.repo.DeleteSplits(pctx, memberID, expenseIDs)
		if err != nil {
			return r.fail(&PersistError{Op: "purge splits", Err: err, Compensated: true})
		}
		r.logger.Debug("Splits purged", "expenses", len(expenseIDs), "rows", n)
	}

	// RemoveMembership
	if err := c.repo.DeleteMembership(pctx, groupID, memberID); err != nil {
		// The purge is committed either way; keep the ledger in step with it.
		c.observer.MemberRemoved(pctx, groupID, memberID)
		return r.fail(&PersistError{Op: "remove membership", Err: err, Compensated: len(expenseIDs) == 0})
	}

	r.commit()
	r.logger.Info("Member removed", "purged_expenses", len(expenseIDs))
	c.observer.MemberRemoved(pctx, groupID, memberID)
	return nil
}
