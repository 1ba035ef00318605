package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"hanapbahay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	renter := createTestUser(t, db, models.RoleRenter)
	outsider := createTestUser(t, db, models.RoleRenter)
	landlordToken := tokenFor(t, landlord)
	renterToken := tokenFor(t, renter)

	listing := createListingViaAPI(t, app, landlordToken, validListingFields(), nil)

	req := httptest.NewRequest(http.MethodPost,
		"/api/properties/"+strconv.Itoa(int(listing.ID))+"/conversations", nil)
	resp := doRequest(t, app, authed(req, renterToken))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	conversation := decodeJSON[models.Conversation](t, resp)
	messagesPath := "/api/conversations/" + strconv.FormatInt(conversation.ID, 10) + "/messages"

	t.Run("participants send and read messages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, messagesPath,
			strings.NewReader(`{"body":"Hello po, is this available?"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := doRequest(t, app, authed(req, renterToken))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		readReq := httptest.NewRequest(http.MethodGet, messagesPath, nil)
		readResp := doRequest(t, app, authed(readReq, landlordToken))
		require.Equal(t, http.StatusOK, readResp.StatusCode)

		messages := decodeJSON[[]models.Message](t, readResp)
		require.Len(t, messages, 1)
		assert.Equal(t, "Hello po, is this available?", messages[0].Body)
		assert.True(t, messages[0].IsRead)
	})

	t.Run("outsiders get 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, messagesPath, nil)
		resp := doRequest(t, app, authed(req, tokenFor(t, outsider)))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("both parties see the conversation list", func(t *testing.T) {
		for _, token := range []string{landlordToken, renterToken} {
			req := httptest.NewRequest(http.MethodGet, "/api/conversations/", nil)
			resp := doRequest(t, app, authed(req, token))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			conversations := decodeJSON[[]models.Conversation](t, resp)
			assert.Len(t, conversations, 1)
		}
	})
}

func TestWishlistEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	renter := createTestUser(t, db, models.RoleRenter)
	renterToken := tokenFor(t, renter)

	listing := createListingViaAPI(t, app, tokenFor(t, landlord), validListingFields(), nil)
	path := "/api/wishlist/" + strconv.Itoa(int(listing.ID))

	t.Run("add then list", func(t *testing.T) {
		resp := doRequest(t, app, authed(httptest.NewRequest(http.MethodPut, path, nil), renterToken))
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		listResp := doRequest(t, app, authed(httptest.NewRequest(http.MethodGet, "/api/wishlist/", nil), renterToken))
		require.Equal(t, http.StatusOK, listResp.StatusCode)
		saved := decodeJSON[[]models.PropertyResponse](t, listResp)
		require.Len(t, saved, 1)
		assert.Equal(t, listing.ID, saved[0].ID)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := doRequest(t, app, authed(httptest.NewRequest(http.MethodDelete, path, nil), renterToken))
			require.Equal(t, http.StatusNoContent, resp.StatusCode)
		}

		listResp := doRequest(t, app, authed(httptest.NewRequest(http.MethodGet, "/api/wishlist/", nil), renterToken))
		saved := decodeJSON[[]models.PropertyResponse](t, listResp)
		assert.Empty(t, saved)
	})

	t.Run("unknown listing is 404", func(t *testing.T) {
		resp := doRequest(t, app, authed(httptest.NewRequest(http.MethodPut, "/api/wishlist/99999", nil), renterToken))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUploadEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	user := createTestUser(t, db, models.RoleRenter)
	token := tokenFor(t, user)

	t.Run("uploads a file and returns its url", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/uploads/", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp := doRequest(t, app, authed(req, token))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		result := decodeJSON[map[string]string](t, resp)
		assert.Contains(t, result["url"], "/images/")
		assert.True(t, strings.HasSuffix(result["url"], ".png"), result["url"])
	})

	t.Run("missing file field is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/", nil)
		resp := doRequest(t, app, authed(req, token))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("signed url requires a blob name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/uploads/signed-url", nil)
		resp := doRequest(t, app, authed(req, token))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		req = httptest.NewRequest(http.MethodGet, "/api/uploads/signed-url?name=avatar.png", nil)
		resp = doRequest(t, app, authed(req, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeJSON[map[string]string](t, resp)
		assert.Contains(t, result["url"], "signed=1")
	})
}
