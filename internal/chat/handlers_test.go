package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app/apptest"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var chats = []client.Chat{
	{ID: "120363001@g.us", Name: "Family", IsGroup: true},
	{ID: "120363002@g.us", Name: "Work", IsGroup: true},
	{ID: "628123@s.whatsapp.net", Name: "Budi"},
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/chats", nil)
	handler(c)
	return rec
}

func TestChatsHandlers(t *testing.T) {
	a := apptest.NewApp(&apptest.WhatsApp{Chats: chats}, &apptest.Media{})
	apptest.Connect(a)
	h := NewHandlers(a)

	rec := serve(h.GetAllChatsHandler)
	require.Equal(t, http.StatusOK, rec.Code)
	var all ChatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, chats, all.Chats)
	assert.Equal(t, 3, all.Total)

	rec = serve(h.GetGroupsHandler)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups ChatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Equal(t, chats[:2], groups.Chats)
	assert.Equal(t, 2, groups.Total)
}

func TestChatsHandlers_NotConnected(t *testing.T) {
	wa := &apptest.WhatsApp{Chats: chats}
	h := NewHandlers(apptest.NewApp(wa, &apptest.Media{}))

	rec := serve(h.GetGroupsHandler)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"WhatsApp client is not connected"}`, rec.Body.String())
	assert.Zero(t, wa.ListCalls)
}

func TestChatsHandlers_ListFails(t *testing.T) {
	a := apptest.NewApp(&apptest.WhatsApp{ListErr: errors.New("usync failed")}, &apptest.Media{})
	apptest.Connect(a)

	rec := serve(NewHandlers(a).GetAllChatsHandler)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"list chats: usync failed"}`, rec.Body.String())
}
