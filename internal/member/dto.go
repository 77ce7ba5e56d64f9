package member

import (
	"encoding/xml"
	"strconv"

	"github.com/members-api/go-api-server/internal/model"
)

// MemberResponse is the wire representation of a member in every negotiated
// format. The field names are the wire keys themselves, and Active stays a
// real boolean regardless of how the store persists it.
type MemberResponse struct {
	XMLName   xml.Name `json:"-" xml:"Member" yaml:"-"`
	MemberID  uint32   `json:"MemberId" xml:"MemberId" yaml:"MemberId"`
	Firstname string   `json:"Firstname" xml:"Firstname" yaml:"Firstname"`
	Lastname  string   `json:"Lastname" xml:"Lastname" yaml:"Lastname"`
	Email     string   `json:"Email" xml:"Email" yaml:"Email"`
	Active    bool     `json:"Active" xml:"Active" yaml:"Active"`
}

func NewMemberResponse(m *model.Member) *MemberResponse {
	return &MemberResponse{
		MemberID:  m.MemberID,
		Firstname: m.Firstname,
		Lastname:  m.Lastname,
		Email:     m.Email,
		Active:    m.Active,
	}
}

// CreateMemberRequest takes Active as a boolean-as-string so form-style
// clients can submit "true"/"false". Absent means inactive.
type CreateMemberRequest struct {
	Firstname string `json:"Firstname" binding:"required,max=100"`
	Lastname  string `json:"Lastname" binding:"required,max=100"`
	Email     string `json:"Email" binding:"required,email,max=255"`
	Active    string `json:"Active" binding:"omitempty,activeflag"`
}

// ActiveFlag parses the optional Active field. Binding has already checked
// the format, so a present value always parses.
func (r *CreateMemberRequest) ActiveFlag() bool {
	if r.Active == "" {
		return false
	}
	active, _ := strconv.ParseBool(r.Active)
	return active
}

// UpdateMemberRequest is a partial update: nil fields are left untouched.
// MemberId is server-assigned and not updatable.
type UpdateMemberRequest struct {
	Firstname *string `json:"Firstname" binding:"omitempty,max=100"`
	Lastname  *string `json:"Lastname" binding:"omitempty,max=100"`
	Email     *string `json:"Email" binding:"omitempty,email,max=255"`
	Active    *string `json:"Active" binding:"omitempty,activeflag"`
}

// ListFilter restricts the member list to rows matching a single field.
type ListFilter struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Active    *bool
}

// IsEmpty reports whether no filter field is set.
func (f *ListFilter) IsEmpty() bool {
	return f.Firstname == nil && f.Lastname == nil && f.Email == nil && f.Active == nil
}
