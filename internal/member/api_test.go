package member_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/members-api/go-api-server/internal/auth"
	"github.com/members-api/go-api-server/internal/config"
	"github.com/members-api/go-api-server/internal/member"
	"github.com/members-api/go-api-server/internal/router"
	"github.com/members-api/go-api-server/internal/shared/database"
	sharedError "github.com/members-api/go-api-server/internal/shared/error"
	"github.com/members-api/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// setupAPI wires the full route table against an in-memory database, so
// requests pass through the real JWT guard and content negotiation.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	engine := testutil.SetupTestRouter()
	router.Setup(engine, cfg, &database.DB{DB: db})

	return engine, db, cfg
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestMembers_Unauthorized(t *testing.T) {
	// Given: Full API with two existing members
	engine, db, _ := setupAPI(t)
	testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)

	testCases := []struct {
		name    string
		headers map[string]string
	}{
		{name: "No Authorization header", headers: nil},
		{name: "Basic auth scheme", headers: map[string]string{"Authorization": "Basic bGV3aXM6c2VjcmV0"}},
		{name: "Junk header", headers: map[string]string{"Authorization": "gibberish"}},
		{name: "Invalid bearer token", headers: map[string]string{"Authorization": "Bearer not-a-real-token"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When: Hit protected endpoints without valid bearer auth
			for _, url := range []string{"/members", "/members/1"} {
				recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
					Method:  http.MethodGet,
					URL:     url,
					Headers: tc.headers,
				})

				// Then: Uniform 401, regardless of whether the target exists
				assert.Equal(t, http.StatusUnauthorized, recorder.Code, url)

				var errorResponse sharedError.ErrorResponse
				testutil.ParseResponse(t, recorder, &errorResponse)
				assert.Equal(t, http.StatusUnauthorized, errorResponse.Status)
			}
		})
	}
}

func TestListMembers(t *testing.T) {
	// Given: Two members in the store
	engine, db, cfg := setupAPI(t)
	testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	testutil.CreateTestMember(t, db, "max", "verstappen", "max@example.com", false)
	token := testutil.IssueTestToken(t, cfg)

	// When: List without a filter
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/members",
		Headers: bearer(token),
	})

	// Then: Full collection
	require.Equal(t, http.StatusOK, recorder.Code)

	var members []member.MemberResponse
	testutil.ParseResponse(t, recorder, &members)
	assert.Len(t, members, 2)
}

func TestListMembers_FilterSingleMatch(t *testing.T) {
	// Given: Two members, one named lewis
	engine, db, cfg := setupAPI(t)
	testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	testutil.CreateTestMember(t, db, "max", "verstappen", "max@example.com", false)
	token := testutil.IssueTestToken(t, cfg)

	// When: Filter on one field
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/members?firstname=lewis",
		Headers: bearer(token),
	})

	// Then: Single-element array
	require.Equal(t, http.StatusOK, recorder.Code)

	var members []member.MemberResponse
	testutil.ParseResponse(t, recorder, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "lewis@example.com", members[0].Email)
}

func TestListMembers_FilterNoMatch(t *testing.T) {
	// Given: Members that won't match
	engine, db, cfg := setupAPI(t)
	testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	token := testutil.IssueTestToken(t, cfg)

	// When: Filter matches nothing
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/members?firstname=nico",
		Headers: bearer(token),
	})

	// Then: 204 with empty body, not 200 with []
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Zero(t, recorder.Body.Len())
}

func TestCreateMember_Success(t *testing.T) {
	// Given: Full API
	engine, _, cfg := setupAPI(t)
	token := testutil.IssueTestToken(t, cfg)

	// When: Create a member with an unused email
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/members",
		Headers: bearer(token),
		Body: member.CreateMemberRequest{
			Firstname: "lando",
			Lastname:  "norris",
			Email:     "lando@example.com",
			Active:    "true",
		},
	})

	// Then: 201 with the assigned id and a Location header
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created member.MemberResponse
	testutil.ParseResponse(t, recorder, &created)
	assert.NotZero(t, created.MemberID)
	assert.True(t, created.Active)
	assert.Equal(t, fmt.Sprintf("/members/%d", created.MemberID), recorder.Header().Get("Location"))

	// Then: Immediately retrievable with identical field values
	getRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("/members/%d", created.MemberID),
		Headers: bearer(token),
	})
	require.Equal(t, http.StatusOK, getRecorder.Code)

	var fetched member.MemberResponse
	testutil.ParseResponse(t, getRecorder, &fetched)
	assert.Equal(t, created, fetched)
}

func TestCreateMember_DuplicateEmail(t *testing.T) {
	// Given: An existing member
	engine, db, cfg := setupAPI(t)
	original := testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	token := testutil.IssueTestToken(t, cfg)

	// When: Create another member with the same email
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/members",
		Headers: bearer(token),
		Body: member.CreateMemberRequest{
			Firstname: "lewis2",
			Lastname:  "hamilton2",
			Email:     "lewis@example.com",
		},
	})

	// Then: 409 with the exact duplicate-entry message
	require.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "Duplicate entry 'lewis@example.com' for key 'Email'", errorResponse.Message)

	// Then: Original member is retrievable unchanged
	getRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("/members/%d", original.MemberID),
		Headers: bearer(token),
	})
	require.Equal(t, http.StatusOK, getRecorder.Code)

	var fetched member.MemberResponse
	testutil.ParseResponse(t, getRecorder, &fetched)
	assert.Equal(t, "lewis", fetched.Firstname)
	assert.Equal(t, "hamilton", fetched.Lastname)
}

func TestCreateMember_ValidationError(t *testing.T) {
	// Given: Full API
	engine, _, cfg := setupAPI(t)
	token := testutil.IssueTestToken(t, cfg)

	// When: Create a member without the required email
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/members",
		Headers: bearer(token),
		Body: map[string]string{
			"Firstname": "lando",
			"Lastname":  "norris",
		},
	})

	// Then: Validation failure
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.NotEmpty(t, errorResponse.Message)
}

func TestGetMember_ContentNegotiation(t *testing.T) {
	// Given: One active member
	engine, db, cfg := setupAPI(t)
	created := testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	token := testutil.IssueTestToken(t, cfg)
	url := fmt.Sprintf("/members/%d", created.MemberID)

	headersWith := func(accept string) map[string]string {
		headers := bearer(token)
		headers["Accept"] = accept
		return headers
	}

	// When: Default (JSON) representation
	jsonRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: bearer(token),
	})

	// Then: JSON object with Active as a genuine boolean
	require.Equal(t, http.StatusOK, jsonRecorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", jsonRecorder.Header().Get("Content-Type"))

	var asJSON map[string]interface{}
	testutil.ParseResponse(t, jsonRecorder, &asJSON)
	assert.Equal(t, true, asJSON["Active"])
	assert.Equal(t, "lewis@example.com", asJSON["Email"])

	// When: XML representation
	xmlRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headersWith("application/xml"),
	})

	// Then: Document starts with the XML declaration, fields as elements,
	// Active as a literal boolean
	require.Equal(t, http.StatusOK, xmlRecorder.Code)
	assert.Equal(t, "application/xml", xmlRecorder.Header().Get("Content-Type"))

	xmlBody := xmlRecorder.Body.String()
	assert.True(t, strings.HasPrefix(xmlBody, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xmlBody, "<Email>lewis@example.com</Email>")
	assert.Contains(t, xmlBody, "<Active>true</Active>")

	// When: YAML representation
	yamlRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headersWith("text/yaml"),
	})

	// Then: Same keys and values, Active parses back to a real boolean
	require.Equal(t, http.StatusOK, yamlRecorder.Code)
	assert.Equal(t, "text/yaml; charset=utf-8", yamlRecorder.Header().Get("Content-Type"))

	var asYAML member.MemberResponse
	require.NoError(t, yaml.Unmarshal(yamlRecorder.Body.Bytes(), &asYAML))
	assert.Equal(t, created.MemberID, asYAML.MemberID)
	assert.Equal(t, "lewis@example.com", asYAML.Email)
	assert.True(t, asYAML.Active)
}

func TestGetMember_NotFound(t *testing.T) {
	// Given: Empty store
	engine, _, cfg := setupAPI(t)
	token := testutil.IssueTestToken(t, cfg)

	testCases := []struct {
		name string
		url  string
	}{
		{name: "Unknown id", url: "/members/4242"},
		{name: "Non-numeric id", url: "/members/abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When: Fetch a member that cannot exist
			recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
				Method:  http.MethodGet,
				URL:     tc.url,
				Headers: bearer(token),
			})

			// Then: 404 with an object body
			assert.Equal(t, http.StatusNotFound, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, http.StatusNotFound, errorResponse.Status)
		})
	}
}

func TestUpdateMember_Partial(t *testing.T) {
	// Given: An existing member
	engine, db, cfg := setupAPI(t)
	created := testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	token := testutil.IssueTestToken(t, cfg)

	// When: Patch only the first name
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPatch,
		URL:     fmt.Sprintf("/members/%d", created.MemberID),
		Headers: bearer(token),
		Body:    map[string]string{"Firstname": "sir lewis"},
	})

	// Then: Full object with the one change applied
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated member.MemberResponse
	testutil.ParseResponse(t, recorder, &updated)
	assert.Equal(t, "sir lewis", updated.Firstname)
	assert.Equal(t, "hamilton", updated.Lastname)
	assert.Equal(t, "lewis@example.com", updated.Email)
	assert.True(t, updated.Active)
	assert.Equal(t, created.MemberID, updated.MemberID)
}

func TestUpdateMember_NotFound(t *testing.T) {
	// Given: Empty store
	engine, _, cfg := setupAPI(t)
	token := testutil.IssueTestToken(t, cfg)

	// When: Patch a missing member
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPatch,
		URL:     "/members/4242",
		Headers: bearer(token),
		Body:    map[string]string{"Firstname": "ghost"},
	})

	// Then
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteMember(t *testing.T) {
	// Given: An existing member
	engine, db, cfg := setupAPI(t)
	created := testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)
	token := testutil.IssueTestToken(t, cfg)
	url := fmt.Sprintf("/members/%d", created.MemberID)

	// When: Delete it
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodDelete,
		URL:     url,
		Headers: bearer(token),
	})

	// Then: 200 with the pre-delete snapshot
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot member.MemberResponse
	testutil.ParseResponse(t, recorder, &snapshot)
	assert.Equal(t, "lewis", snapshot.Firstname)
	assert.Equal(t, "lewis@example.com", snapshot.Email)

	// Then: Every later reference to the id is 404
	for _, req := range []testutil.TestRequest{
		{Method: http.MethodGet, URL: url, Headers: bearer(token)},
		{Method: http.MethodPatch, URL: url, Headers: bearer(token), Body: map[string]string{"Firstname": "ghost"}},
		{Method: http.MethodDelete, URL: url, Headers: bearer(token)},
	} {
		assert.Equal(t, http.StatusNotFound, testutil.ExecuteRequest(t, engine, req).Code, req.Method)
	}
}

func TestIssuedTokenAuthorizesMembers(t *testing.T) {
	// Given: A credential user and one member
	engine, db, _ := setupAPI(t)
	testutil.CreateTestUser(t, db, "lewis", "correct-horse")
	testutil.CreateTestMember(t, db, "lewis", "hamilton", "lewis@example.com", true)

	// When: Obtain a token from /auth
	authRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/auth?username=lewis&password=correct-horse",
	})
	require.Equal(t, http.StatusOK, authRecorder.Code)

	var tokenResponse auth.TokenResponse
	testutil.ParseResponse(t, authRecorder, &tokenResponse)
	require.NotEmpty(t, tokenResponse.JWT)

	// Then: The jwt is immediately usable as bearer auth
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/members",
		Headers: bearer(tokenResponse.JWT),
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMemberLifecycle(t *testing.T) {
	// Given: Full API and a token
	engine, _, cfg := setupAPI(t)
	token := testutil.IssueTestToken(t, cfg)

	// When: Create
	createRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/members",
		Headers: bearer(token),
		Body: member.CreateMemberRequest{
			Firstname: "Test",
			Lastname:  "User",
			Email:     "test-x@user.com",
			Active:    "true",
		},
	})
	require.Equal(t, http.StatusCreated, createRecorder.Code)

	var created member.MemberResponse
	testutil.ParseResponse(t, createRecorder, &created)
	url := fmt.Sprintf("/members/%d", created.MemberID)
	require.Equal(t, url, createRecorder.Header().Get("Location"))

	// When: Read as XML
	xmlHeaders := bearer(token)
	xmlHeaders["Accept"] = "application/xml"
	xmlRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: xmlHeaders,
	})
	require.Equal(t, http.StatusOK, xmlRecorder.Code)
	assert.True(t, strings.HasPrefix(xmlRecorder.Body.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xmlRecorder.Body.String(), "<Email>test-x@user.com</Email>")

	// When: Patch
	patchRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodPatch,
		URL:     url,
		Headers: bearer(token),
		Body:    map[string]string{"Firstname": "Updated"},
	})
	require.Equal(t, http.StatusOK, patchRecorder.Code)

	var patched member.MemberResponse
	testutil.ParseResponse(t, patchRecorder, &patched)
	assert.Equal(t, "Updated", patched.Firstname)

	// When: Delete
	deleteRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodDelete,
		URL:     url,
		Headers: bearer(token),
	})
	require.Equal(t, http.StatusOK, deleteRecorder.Code)

	var deleted member.MemberResponse
	testutil.ParseResponse(t, deleteRecorder, &deleted)
	assert.Equal(t, "Updated", deleted.Firstname)

	// Then: Gone
	getRecorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: bearer(token),
	})
	assert.Equal(t, http.StatusNotFound, getRecorder.Code)
}
