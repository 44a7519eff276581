package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

// OrganizationsServiceName is the fully qualified name of the organization service.
const OrganizationsServiceName = "nox.iam.v1.Organizations"

// OrganizationService defines tenant management operations.
type OrganizationService interface {
	Create(ctx context.Context, actor model.Actor, name string) (model.Organization, error)
	AddMember(ctx context.Context, actor model.Actor, orgID uuid.UUID, email, roleName string) (model.Member, error)
	RemoveMember(ctx context.Context, actor model.Actor, orgID, userID uuid.UUID) error
	CreateRole(ctx context.Context, actor model.Actor, orgID uuid.UUID, name string, level int, permissions []string) (model.Role, error)
	UpdateRolePermissions(ctx context.Context, actor model.Actor, orgID, roleID uuid.UUID, permissions []string) (model.Role, error)
	DeleteRole(ctx context.Context, actor model.Actor, orgID, roleID uuid.UUID) error
	ListRoles(ctx context.Context, actor model.Actor, orgID uuid.UUID) ([]model.Role, error)
	ListMembers(ctx context.Context, actor model.Actor, orgID uuid.UUID) ([]model.Member, error)
	Update(ctx context.Context, actor model.Actor, orgID uuid.UUID, name string) (model.Organization, error)
	Delete(ctx context.Context, actor model.Actor, orgID uuid.UUID) error
	ListForUser(ctx context.Context, actor model.Actor) ([]model.Organization, error)
	Invite(ctx context.Context, actor model.Actor, orgID uuid.UUID, email, roleName string) (model.Invitation, error)
	AcceptInvitation(ctx context.Context, actor model.Actor, rawToken string) (model.Member, error)
}

// OrganizationsServer is the server API of the organization service.
type OrganizationsServer interface {
	Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AddMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RemoveMember(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	CreateRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateRolePermissions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteRole(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	ListRoles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListMembers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Delete(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	ListMine(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Invite(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AcceptInvitation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// OrganizationsServiceDesc describes the organization service for grpc.Server.RegisterService.
var OrganizationsServiceDesc = grpc.ServiceDesc{
	ServiceName: OrganizationsServiceName,
	HandlerType: (*OrganizationsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OrganizationsServiceName, "Create", OrganizationsServer.Create),
		unary(OrganizationsServiceName, "AddMember", OrganizationsServer.AddMember),
		unary(OrganizationsServiceName, "RemoveMember", OrganizationsServer.RemoveMember),
		unary(OrganizationsServiceName, "CreateRole", OrganizationsServer.CreateRole),
		unary(OrganizationsServiceName, "UpdateRolePermissions", OrganizationsServer.UpdateRolePermissions),
		unary(OrganizationsServiceName, "DeleteRole", OrganizationsServer.DeleteRole),
		unary(OrganizationsServiceName, "ListRoles", OrganizationsServer.ListRoles),
		unary(OrganizationsServiceName, "ListMembers", OrganizationsServer.ListMembers),
		unary(OrganizationsServiceName, "Update", OrganizationsServer.Update),
		unary(OrganizationsServiceName, "Delete", OrganizationsServer.Delete),
		unary(OrganizationsServiceName, "ListMine", OrganizationsServer.ListMine),
		unary(OrganizationsServiceName, "Invite", OrganizationsServer.Invite),
		unary(OrganizationsServiceName, "AcceptInvitation", OrganizationsServer.AcceptInvitation),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nox/iam/v1/organizations.proto",
}

var _ OrganizationsServer = (*Organization)(nil)

// Organization handles gRPC endpoints for organizations, roles and members.
// Every endpoint requires an authenticated actor.
type Organization struct {
	orgService     OrganizationService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewOrganization creates a new Organization handler.
func NewOrganization(orgService OrganizationService, contextManager model.ContextManager, logger *logger.Logger) *Organization {
	return &Organization{
		orgService:     orgService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Create creates an organization owned by the caller.
func (h *Organization) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "name"); err != nil {
		return nil, err
	}

	org, err := h.orgService.Create(ctx, actor, stringField(req, "name"))
	if err != nil {
		return nil, h.fail("create", err, "user_id", actor.UserID)
	}

	h.logger.Info("Organization handler: organization created",
		"organization_id", org.ID,
		"user_id", actor.UserID)

	return toStruct(organizationFields(org))
}

// Update renames an organization.
func (h *Organization) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "name"); err != nil {
		return nil, err
	}

	org, err := h.orgService.Update(ctx, actor, orgID, stringField(req, "name"))
	if err != nil {
		return nil, h.fail("update", err, "organization_id", orgID)
	}

	return toStruct(organizationFields(org))
}

// Delete soft-deletes an organization.
func (h *Organization) Delete(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := h.orgService.Delete(ctx, actor, orgID); err != nil {
		return nil, h.fail("delete", err, "organization_id", orgID)
	}

	h.logger.Info("Organization handler: organization deleted",
		"organization_id", orgID,
		"user_id", actor.UserID)

	return &emptypb.Empty{}, nil
}

// ListMine lists the organizations of the caller.
func (h *Organization) ListMine(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}

	orgs, err := h.orgService.ListForUser(ctx, actor)
	if err != nil {
		return nil, h.fail("list organizations", err, "user_id", actor.UserID)
	}

	items := make([]any, 0, len(orgs))
	for _, o := range orgs {
		items = append(items, organizationFields(o))
	}
	return toStruct(map[string]any{"organizations": items})
}

// Invite emails an invitation to join the organization under a named role.
func (h *Organization) Invite(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "email", "role"); err != nil {
		return nil, err
	}

	inv, err := h.orgService.Invite(ctx, actor, orgID, stringField(req, "email"), stringField(req, "role"))
	if err != nil {
		return nil, h.fail("invite", err, "organization_id", orgID)
	}

	return toStruct(map[string]any{
		"id":         inv.ID.String(),
		"email":      inv.Email,
		"role_id":    inv.RoleID.String(),
		"status":     string(inv.Status),
		"expires_at": timestamp(inv.ExpiresAt),
	})
}

// AcceptInvitation joins the organization behind an invitation token.
func (h *Organization) AcceptInvitation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "token"); err != nil {
		return nil, err
	}

	member, err := h.orgService.AcceptInvitation(ctx, actor, stringField(req, "token"))
	if err != nil {
		return nil, h.fail("accept invitation", err, "user_id", actor.UserID)
	}

	fields := memberFields(member)
	fields["organization_id"] = member.OrganizationID.String()
	return toStruct(fields)
}

// AddMember adds a registered user to the organization with a named role.
func (h *Organization) AddMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "email", "role"); err != nil {
		return nil, err
	}

	member, err := h.orgService.AddMember(ctx, actor, orgID, stringField(req, "email"), stringField(req, "role"))
	if err != nil {
		return nil, h.fail("add member", err, "organization_id", orgID)
	}

	return toStruct(memberFields(member))
}

// RemoveMember removes a member from the organization.
func (h *Organization) RemoveMember(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	userID, err := uuidField(req, "user_id")
	if err != nil {
		return nil, err
	}

	if err := h.orgService.RemoveMember(ctx, actor, orgID, userID); err != nil {
		return nil, h.fail("remove member", err, "organization_id", orgID, "member_user_id", userID)
	}

	return &emptypb.Empty{}, nil
}

// CreateRole defines a custom role.
func (h *Organization) CreateRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "name"); err != nil {
		return nil, err
	}

	level, err := intField(req, "level")
	if err != nil {
		return nil, err
	}

	role, err := h.orgService.CreateRole(ctx, actor, orgID,
		stringField(req, "name"),
		level,
		stringListField(req, "permissions"))
	if err != nil {
		return nil, h.fail("create role", err, "organization_id", orgID)
	}

	return toStruct(roleFields(role))
}

// UpdateRolePermissions replaces the permission set of a role.
func (h *Organization) UpdateRolePermissions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	roleID, err := uuidField(req, "role_id")
	if err != nil {
		return nil, err
	}

	role, err := h.orgService.UpdateRolePermissions(ctx, actor, orgID, roleID, stringListField(req, "permissions"))
	if err != nil {
		return nil, h.fail("update role permissions", err, "organization_id", orgID, "role_id", roleID)
	}

	return toStruct(roleFields(role))
}

// DeleteRole deletes an unused role.
func (h *Organization) DeleteRole(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}
	roleID, err := uuidField(req, "role_id")
	if err != nil {
		return nil, err
	}

	if err := h.orgService.DeleteRole(ctx, actor, orgID, roleID); err != nil {
		return nil, h.fail("delete role", err, "organization_id", orgID, "role_id", roleID)
	}

	return &emptypb.Empty{}, nil
}

// ListRoles lists the roles of the organization.
func (h *Organization) ListRoles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}

	roles, err := h.orgService.ListRoles(ctx, actor, orgID)
	if err != nil {
		return nil, h.fail("list roles", err, "organization_id", orgID)
	}

	items := make([]any, 0, len(roles))
	for _, r := range roles {
		items = append(items, roleFields(r))
	}
	return toStruct(map[string]any{"roles": items})
}

// ListMembers lists the members of the organization.
func (h *Organization) ListMembers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, orgID, err := h.scope(ctx, req)
	if err != nil {
		return nil, err
	}

	members, err := h.orgService.ListMembers(ctx, actor, orgID)
	if err != nil {
		return nil, h.fail("list members", err, "organization_id", orgID)
	}

	items := make([]any, 0, len(members))
	for _, m := range members {
		items = append(items, memberFields(m))
	}
	return toStruct(map[string]any{"members": items})
}

func (h *Organization) actor(ctx context.Context) (model.Actor, error) {
	actor, ok := h.contextManager.GetActorFromContext(ctx)
	if !ok {
		return model.Actor{}, handleError(apperror.ErrUnauthenticated)
	}
	return actor, nil
}

// scope resolves the caller and the organization_id field of the request.
func (h *Organization) scope(ctx context.Context, req *structpb.Struct) (model.Actor, uuid.UUID, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return model.Actor{}, uuid.Nil, err
	}
	orgID, err := uuidField(req, "organization_id")
	if err != nil {
		return model.Actor{}, uuid.Nil, err
	}
	return actor, orgID, nil
}

func (h *Organization) fail(op string, err error, args ...any) error {
	logFailure(h.logger, "Organization handler: "+op+" failed", err, args...)
	return handleError(err)
}

func organizationFields(o model.Organization) map[string]any {
	return map[string]any{
		"id":         o.ID.String(),
		"name":       o.Name,
		"slug":       o.Slug,
		"created_at": timestamp(o.CreatedAt),
	}
}

func roleFields(r model.Role) map[string]any {
	return map[string]any{
		"id":          r.ID.String(),
		"name":        r.Name,
		"level":       r.Level,
		"permissions": stringList(r.Permissions),
	}
}

func memberFields(m model.Member) map[string]any {
	return map[string]any{
		"id":        m.ID.String(),
		"user_id":   m.UserID.String(),
		"email":     m.Email,
		"role":      roleFields(m.Role),
		"joined_at": timestamp(m.JoinedAt),
	}
}
