package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/coordinator"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/pkg/api"
	"github.com/mmynk/groupledger/pkg/api/apiconnect"
)

// GroupService manages groups and their members.
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
	coord *coordinator.Coordinator
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store, coord *coordinator.Coordinator) *GroupService {
	return &GroupService{store: store, coord: coord}
}

// CreateGroup creates a group with the caller as its first admin.
func (s *GroupService) CreateGroup(
	ctx context.Context,
	req *connect.Request[api.CreateGroupRequest],
) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name)

	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}

	group := &models.Group{Name: name, CreatedBy: sess.MemberID}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("Failed to create group", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	admin := &models.Membership{
		GroupID:       group.ID,
		MemberID:      sess.MemberID,
		Role:          models.RoleAdmin,
		Authenticated: true,
	}
	if err := s.store.AddMembership(ctx, admin); err != nil {
		slog.Error("Failed to add group creator, removing group", "group_id", group.ID, "error", err)
		if delErr := s.store.DeleteGroup(context.WithoutCancel(ctx), group.ID); delErr != nil {
			slog.Error("Failed to remove group without admin", "group_id", group.ID, "error", delErr)
			err = errors.Join(err, delErr)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out, err := s.loadGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	slog.Info("Group created", "group_id", group.ID, "created_by", sess.MemberID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: out}), nil
}

// GetGroup returns a group with its members and their roles.
func (s *GroupService) GetGroup(
	ctx context.Context,
	req *connect.Request[api.GetGroupRequest],
) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	if _, _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := s.loadGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: out}), nil
}

// InviteMember adds an existing profile to a group, or creates a
// placeholder when no profile is given. Admin only.
func (s *GroupService) InviteMember(
	ctx context.Context,
	req *connect.Request[api.InviteMemberRequest],
) (*connect.Response[api.InviteMemberResponse], error) {
	slog.Info("InviteMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	if err := s.requireAdmin(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	var member *models.Member
	if req.Msg.MemberID != "" {
		m, err := s.store.GetMember(ctx, req.Msg.MemberID)
		if err != nil {
			return nil, toConnectError(fmt.Errorf("member %s: %w", req.Msg.MemberID, err))
		}
		member = m
	} else {
		name := strings.TrimSpace(req.Msg.DisplayName)
		if name == "" {
			return nil, invalidArgument("display_name required for a new member")
		}
		member = &models.Member{DisplayName: name, Email: req.Msg.Email}
		if err := s.store.CreateMember(ctx, member); err != nil {
			slog.Error("Failed to create placeholder", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	membership := &models.Membership{
		GroupID:       req.Msg.GroupID,
		MemberID:      member.ID,
		Role:          models.RoleMember,
		Authenticated: !member.IsPlaceholder(),
	}
	if err := s.store.AddMembership(ctx, membership); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Member invited", "group_id", req.Msg.GroupID, "member_id", member.ID, "placeholder", member.IsPlaceholder())
	return connect.NewResponse(&api.InviteMemberResponse{Member: memberToAPI(member, membership)}), nil
}

// UpdatePlaceholder edits a placeholder's profile. Admin only; members who
// have signed in manage their own profile.
func (s *GroupService) UpdatePlaceholder(
	ctx context.Context,
	req *connect.Request[api.UpdatePlaceholderRequest],
) (*connect.Response[api.UpdatePlaceholderResponse], error) {
	slog.Info("UpdatePlaceholder request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	if err := s.requireAdmin(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}
	membership, err := s.store.GetMembership(ctx, req.Msg.GroupID, req.Msg.MemberID)
	if err != nil {
		return nil, toConnectError(err)
	}
	member, err := s.store.GetMember(ctx, req.Msg.MemberID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !member.IsPlaceholder() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("member %s is not a placeholder", member.ID))
	}

	name := strings.TrimSpace(req.Msg.DisplayName)
	if name == "" {
		return nil, invalidArgument("display_name required")
	}
	member.DisplayName = name
	member.Email = req.Msg.Email
	member.PaymentHandle = req.Msg.PaymentHandle
	if err := s.store.UpdateMember(ctx, member); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdatePlaceholderResponse{Member: memberToAPI(member, membership)}), nil
}

// RemoveMember removes a member from a group and purges their splits.
func (s *GroupService) RemoveMember(
	ctx context.Context,
	req *connect.Request[api.RemoveMemberRequest],
) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.coord.RemoveMember(ctx, sess, req.Msg.GroupID, req.Msg.MemberID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

func (s *GroupService) requireAdmin(ctx context.Context, groupID string) error {
	_, membership, err := requireMember(ctx, s.store, groupID)
	if err != nil {
		return err
	}
	if !membership.IsAdmin() {
		return connect.NewError(connect.CodePermissionDenied, coordinator.ErrForbidden)
	}
	return nil
}

func (s *GroupService) loadGroup(ctx context.Context, group *models.Group) (*api.Group, error) {
	memberships, err := s.store.ListMemberships(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := &api.Group{
		ID:        group.ID,
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
		Members:   make([]*api.Member, 0, len(memberships)),
	}
	for _, ms := range memberships {
		member, err := s.store.GetMember(ctx, ms.MemberID)
		if err != nil {
			return nil, toConnectError(err)
		}
		out.Members = append(out.Members, memberToAPI(member, ms))
	}
	return out, nil
}
