package domain

// Role defines the role hierarchy within an organization.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleProducer   Role = "producer"
	RoleFinance    Role = "finance"
	RoleFreelancer Role = "freelancer"
)

// roleRank is the total order over roles. Higher outranks lower.
// Finance sits above freelancer in the order but is a lateral role with
// no invite or removal capability of its own.
var roleRank = map[Role]int{
	RoleOwner:      50,
	RoleAdmin:      40,
	RoleProducer:   30,
	RoleFinance:    20,
	RoleFreelancer: 10,
}

// ValidRoles enumerates the accepted role values.
var ValidRoles = map[Role]bool{
	RoleOwner:      true,
	RoleAdmin:      true,
	RoleProducer:   true,
	RoleFinance:    true,
	RoleFreelancer: true,
}

// Rank returns the role's position in the total order, or 0 for unknown roles.
func (r Role) Rank() int {
	return roleRank[r]
}

// ProposalStatus represents the lifecycle of a proposal.
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExpired  ProposalStatus = "expired"
)

// Editable reports whether financial fields may still change. Approved,
// rejected and expired proposals are locked.
func (s ProposalStatus) Editable() bool {
	return s == ProposalStatusDraft || s == ProposalStatusSent
}

// Terminal reports whether the status is a terminal state.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusApproved || s == ProposalStatusRejected || s == ProposalStatusExpired
}

// InviteStatus represents the lifecycle of a team invitation.
// pending is the only non-terminal state.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRevoked  InviteStatus = "revoked"
	InviteStatusExpired  InviteStatus = "expired"
)

// ProjectStatus represents the lifecycle of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// CallSheetStatus represents the publication state of a call sheet.
type CallSheetStatus string

const (
	CallSheetStatusDraft     CallSheetStatus = "draft"
	CallSheetStatusPublished CallSheetStatus = "published"
)

// SupplierCategory tags an external party by what they provide.
type SupplierCategory string

const (
	SupplierCategoryCrew      SupplierCategory = "crew"
	SupplierCategoryEquipment SupplierCategory = "equipment"
	SupplierCategoryLocation  SupplierCategory = "location"
	SupplierCategoryPost      SupplierCategory = "post"
	SupplierCategoryCatering  SupplierCategory = "catering"
	SupplierCategoryOther     SupplierCategory = "other"
)

// ValidSupplierCategories enumerates the accepted supplier categories.
var ValidSupplierCategories = map[SupplierCategory]bool{
	SupplierCategoryCrew:      true,
	SupplierCategoryEquipment: true,
	SupplierCategoryLocation:  true,
	SupplierCategoryPost:      true,
	SupplierCategoryCatering:  true,
	SupplierCategoryOther:     true,
}

// NotificationKind identifies what triggered a notification.
type NotificationKind string

const (
	NotificationInviteAccepted   NotificationKind = "invite_accepted"
	NotificationProposalApproved NotificationKind = "proposal_approved"
	NotificationProposalRejected NotificationKind = "proposal_rejected"
)

// FileType represents the allowed file types for call sheet attachments.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded attachment.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
