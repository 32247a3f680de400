// Package rbac defines the role hierarchy, the static permission table and the
// geographic scope checks that gate every district-tied read and write.
package rbac

// Role identifies one of the five user roles. The four official roles form a
// strict hierarchy of geographic reach; voters sit outside of it.
type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleRegionalAdmin    Role = "regional_admin"
	RoleProvinceAdmin    Role = "province_admin"
	RoleDistrictOfficial Role = "district_official"
	RoleVoter            Role = "voter"
)

// Permission is an action a role may or may not perform.
type Permission string

const (
	PermElectionCreate       Permission = "election:create"
	PermElectionRead         Permission = "election:read"
	PermElectionUpdate       Permission = "election:update"
	PermElectionDelete       Permission = "election:delete"
	PermElectionManageStatus Permission = "election:manage_status"

	PermPartyCreate Permission = "party:create"
	PermPartyRead   Permission = "party:read"
	PermPartyUpdate Permission = "party:update"
	PermPartyDelete Permission = "party:delete"

	PermCandidateCreate Permission = "candidate:create"
	PermCandidateRead   Permission = "candidate:read"
	PermCandidateUpdate Permission = "candidate:update"
	PermCandidateDelete Permission = "candidate:delete"

	PermVoteCast         Permission = "vote:cast"
	PermVoteBatchUpload  Permission = "vote:batch_upload"
	PermVoteBatchApprove Permission = "vote:batch_approve"
	PermVoteViewResults  Permission = "vote:view_results"

	PermUserCreate Permission = "user:create"
	PermUserRead   Permission = "user:read"
	PermUserUpdate Permission = "user:update"
	PermUserDelete Permission = "user:delete"
)

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermElectionCreate, PermElectionRead, PermElectionUpdate, PermElectionDelete, PermElectionManageStatus,
		PermPartyCreate, PermPartyRead, PermPartyUpdate, PermPartyDelete,
		PermCandidateCreate, PermCandidateRead, PermCandidateUpdate, PermCandidateDelete,
		PermVoteBatchApprove, PermVoteViewResults,
		PermUserCreate, PermUserRead, PermUserUpdate, PermUserDelete,
	},
	RoleRegionalAdmin: {
		PermElectionRead,
		PermPartyRead,
		PermCandidateRead, PermCandidateCreate, PermCandidateUpdate,
		PermVoteBatchApprove, PermVoteViewResults,
		PermUserRead,
	},
	RoleProvinceAdmin: {
		PermElectionRead,
		PermPartyRead,
		PermCandidateRead, PermCandidateCreate, PermCandidateUpdate,
		PermVoteBatchApprove, PermVoteViewResults,
		PermUserRead,
	},
	RoleDistrictOfficial: {
		PermElectionRead,
		PermPartyRead,
		PermCandidateRead,
		PermVoteBatchUpload, PermVoteViewResults,
	},
	RoleVoter: {
		PermElectionRead,
		PermPartyRead,
		PermCandidateRead,
		PermVoteCast, PermVoteViewResults,
	},
}

// HasPermission answers whether role may perform permission. Total function:
// unknown roles simply have no permissions.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// ScopeKind tags which geographic level a Scope constrains.
type ScopeKind int

const (
	// ScopeNone is the scope of users with no geographic authority (voters,
	// officials whose scope column was never set).
	ScopeNone ScopeKind = iota
	// ScopeUnconstrained grants access everywhere (super_admin).
	ScopeUnconstrained
	ScopeRegion
	ScopeProvince
	ScopeDistrict
)

// Scope is the geographic subset an official is authorized to act within,
// expressed as a tagged variant so the meaningful field is carried by the
// type rather than by convention.
type Scope struct {
	Kind ScopeKind
	ID   string
}

func Unconstrained() Scope          { return Scope{Kind: ScopeUnconstrained} }
func NoScope() Scope                { return Scope{Kind: ScopeNone} }
func RegionScope(id string) Scope   { return Scope{Kind: ScopeRegion, ID: id} }
func ProvinceScope(id string) Scope { return Scope{Kind: ScopeProvince, ID: id} }
func DistrictScope(id string) Scope { return Scope{Kind: ScopeDistrict, ID: id} }

// CanAccessDistrict answers whether a user with the given role and scope has
// authority over the district identified by districtID, which belongs to
// provinceID inside regionID. Pure and total: same inputs, same answer.
func CanAccessDistrict(role Role, scope Scope, districtID, provinceID, regionID string) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleVoter:
		return false
	case RoleRegionalAdmin:
		return scope.Kind == ScopeRegion && scope.ID == regionID
	case RoleProvinceAdmin:
		return scope.Kind == ScopeProvince && scope.ID == provinceID
	case RoleDistrictOfficial:
		return scope.Kind == ScopeDistrict && scope.ID == districtID
	default:
		return false
	}
}
