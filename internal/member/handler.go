package member

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/members-api/go-api-server/internal/shared/context"
	sharedError "github.com/members-api/go-api-server/internal/shared/error"
	"github.com/members-api/go-api-server/internal/shared/handler"
	"github.com/members-api/go-api-server/internal/shared/render"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// List returns the member collection, optionally restricted by a
// single-field query filter. Zero matches is 204, not an empty array.
func (h *MemberHandler) List(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}

	responses, err := h.memberService.List(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	if len(responses) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, responses)
}

func (h *MemberHandler) Create(c *gin.Context) {
	if _, ok := sharedContext.RequireUserID(c); !ok {
		return
	}

	var request CreateMemberRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), &request)
	if err != nil {
		h.respondMemberError(c, err, request.Email)
		return
	}

	c.Header("Location", fmt.Sprintf("/members/%d", response.MemberID))
	c.JSON(http.StatusCreated, response)
}

// Get renders a single member in the Accept-negotiated format. Error bodies
// stay JSON on every path.
func (h *MemberHandler) Get(c *gin.Context) {
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.Get(c.Request.Context(), memberID)
	if err != nil {
		h.respondMemberError(c, err, "")
		return
	}

	render.Negotiated(c, http.StatusOK, response)
}

func (h *MemberHandler) Update(c *gin.Context) {
	if _, ok := sharedContext.RequireUserID(c); !ok {
		return
	}

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var request UpdateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), memberID, &request)
	if err != nil {
		email := ""
		if request.Email != nil {
			email = *request.Email
		}
		h.respondMemberError(c, err, email)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete responds with the member as it existed immediately before deletion.
func (h *MemberHandler) Delete(c *gin.Context) {
	if _, ok := sharedContext.RequireUserID(c); !ok {
		return
	}

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.Delete(c.Request.Context(), memberID)
	if err != nil {
		h.respondMemberError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondMemberError maps service errors onto the registered responses,
// filling in the exact duplicate-entry message for conflicts.
func (h *MemberHandler) respondMemberError(c *gin.Context, err error, email string) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		if errors.Is(err, ErrDuplicateEmail) && email != "" {
			resp.Message = DuplicateEmailMessage(email)
		}
		handler.RespondError(c, err, resp)
		return
	}

	handler.RespondError(c, err, sharedError.InternalServerError)
}

// requireMemberID parses the :id path parameter. A non-numeric id is just an
// id that cannot exist, so it gets the same 404 as an unknown one.
func requireMemberID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp, _ := sharedError.ResolveDomainError(ErrMemberNotFound)
		handler.RespondError(c, ErrMemberNotFound, resp)
		return 0, false
	}
	return uint32(id), true
}

func parseListFilter(c *gin.Context) (*ListFilter, bool) {
	filter := &ListFilter{}

	if v, ok := c.GetQuery("firstname"); ok {
		filter.Firstname = &v
	}
	if v, ok := c.GetQuery("lastname"); ok {
		filter.Lastname = &v
	}
	if v, ok := c.GetQuery("email"); ok {
		filter.Email = &v
	}
	if v, ok := c.GetQuery("active"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			resp := sharedError.ValidationFailed
			resp.Message = "Must be 'true' or 'false'."
			handler.RespondError(c, err, resp)
			return nil, false
		}
		filter.Active = &active
	}

	return filter, true
}
