package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/feed-service/internal/seed"
	"github.com/weiawesome/wes-io-live/feed-service/internal/service"
	"github.com/weiawesome/wes-io-live/feed-service/internal/session"
	"github.com/weiawesome/wes-io-live/feed-service/pkg/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, maxSessions int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w, err := seed.Demo()
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2024, 6, 28, 12, 30, 0, 0, time.UTC) }
	svc := service.NewFeedService(session.NewManager(w.Factory(clock), maxSessions, clock))

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, sessionID string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeaderKey, sessionID)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func openSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, code)

	var info struct {
		ID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	require.NotEmpty(t, info.ID)
	return info.ID
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHandler_SessionHeader(t *testing.T) {
	r := newTestRouter(t, 0)

	code, env := do(t, r, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing session header", env.Error.Message)

	code, env = do(t, r, http.MethodGet, "/api/v1/feed", "not-a-uuid", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid session id", env.Error.Message)

	code, env = do(t, r, http.MethodGet, "/api/v1/feed", "7d444840-9dc0-11d1-b245-5ffdce74fad2", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHandler_TooManySessions(t *testing.T) {
	r := newTestRouter(t, 1)
	openSession(t, r)

	code, env := do(t, r, http.MethodPost, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
}

func TestHandler_FeedRoundTrip(t *testing.T) {
	r := newTestRouter(t, 0)
	sid := openSession(t, r)

	type feedResp struct {
		View  string `json:"view"`
		Posts []struct {
			ID    int64  `json:"id"`
			Age   string `json:"age"`
			Liked bool   `json:"liked"`
		} `json:"posts"`
	}

	code, env := do(t, r, http.MethodGet, "/api/v1/feed", sid, nil)
	require.Equal(t, http.StatusOK, code)
	got := decode[feedResp](t, env)
	assert.Equal(t, "home", got.View)
	assert.Len(t, got.Posts, 3)

	code, env = do(t, r, http.MethodGet, "/api/v1/feed?view=bogus", sid, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/current/login", sid, map[string]string{"username": "nobody"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, r, http.MethodPost, "/api/v1/sessions/current/login", sid, map[string]string{"username": " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/current/login", sid, map[string]string{"username": "alex_dev"})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/feed?view=home", sid, nil)
	require.Equal(t, http.StatusOK, code)
	got = decode[feedResp](t, env)
	require.Len(t, got.Posts, 2)
	assert.Equal(t, int64(1), got.Posts[0].ID)
	assert.Equal(t, "2h", got.Posts[0].Age)
	assert.True(t, got.Posts[0].Liked)

	code, env = do(t, r, http.MethodGet, "/api/v1/feed?view=explore&q=golden", sid, nil)
	require.Equal(t, http.StatusOK, code)
	got = decode[feedResp](t, env)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, int64(3), got.Posts[0].ID)
}

func TestHandler_PostLikeComment(t *testing.T) {
	r := newTestRouter(t, 0)
	sid := openSession(t, r)

	code, env := do(t, r, http.MethodPost, "/api/v1/posts", sid, map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "not logged in", env.Error.Message)

	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/current/login", sid, map[string]string{"username": "emma_writer"})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/posts", sid, map[string]any{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodPost, "/api/v1/posts", sid, map[string]any{
		"content": "Drafting a new short story",
		"tags":    []string{"Writing"},
	})
	require.Equal(t, http.StatusCreated, code)
	post := decode[struct {
		ID   int64    `json:"id"`
		Tags []string `json:"tags"`
	}](t, env)
	assert.Equal(t, int64(4), post.ID)
	assert.Equal(t, []string{"Writing"}, post.Tags)

	code, env = do(t, r, http.MethodPost, "/api/v1/posts/1/like", sid, nil)
	require.Equal(t, http.StatusOK, code)
	like := decode[struct {
		Applied    bool `json:"applied"`
		Liked      bool `json:"liked"`
		LikesCount int  `json:"likes_count"`
	}](t, env)
	assert.True(t, like.Applied)
	assert.True(t, like.Liked)
	assert.Equal(t, 3, like.LikesCount)

	code, env = do(t, r, http.MethodPost, "/api/v1/posts/42/like", sid, nil)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decode[struct {
		Applied bool `json:"applied"`
	}](t, env).Applied)

	code, env = do(t, r, http.MethodGet, "/api/v1/posts/1", sid, nil)
	require.Equal(t, http.StatusOK, code)
	single := decode[struct {
		ID    int64 `json:"id"`
		Liked bool  `json:"liked"`
	}](t, env)
	assert.Equal(t, int64(1), single.ID)
	assert.True(t, single.Liked)

	code, env = do(t, r, http.MethodGet, "/api/v1/posts/42", sid, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "post not found", env.Error.Message)

	code, _ = do(t, r, http.MethodPost, "/api/v1/posts/abc/like", sid, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodPost, "/api/v1/posts/1/comments", sid, map[string]string{"content": "Lovely"})
	require.Equal(t, http.StatusOK, code)
	comment := decode[struct {
		Applied bool `json:"applied"`
		Comment struct {
			ID int64 `json:"id"`
		} `json:"comment"`
	}](t, env)
	assert.True(t, comment.Applied)
	assert.Equal(t, int64(4), comment.Comment.ID)

	code, env = do(t, r, http.MethodGet, "/api/v1/trending", sid, nil)
	require.Equal(t, http.StatusOK, code)
	trending := decode[struct {
		Tags []struct {
			Tag   string `json:"tag"`
			Count int    `json:"count"`
		} `json:"tags"`
	}](t, env)
	require.Len(t, trending.Tags, 5)
	assert.Equal(t, "Writing", trending.Tags[0].Tag)
}

func TestHandler_SignUpFollowNotifications(t *testing.T) {
	r := newTestRouter(t, 0)
	sid := openSession(t, r)

	code, _ := do(t, r, http.MethodPost, "/api/v1/sessions/current/signup", sid, map[string]string{"username": "jo"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/current/signup", sid, map[string]string{
		"username": "sarah_design", "name": "S", "bio": "B",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env := do(t, r, http.MethodPost, "/api/v1/sessions/current/signup", sid, map[string]string{
		"username": "jo", "name": "Jo", "bio": "new here",
	})
	require.Equal(t, http.StatusCreated, code)
	me := decode[struct {
		ID     int64  `json:"id"`
		Avatar string `json:"avatar"`
	}](t, env)
	assert.Equal(t, int64(5), me.ID)

	code, env = do(t, r, http.MethodGet, "/api/v1/users/suggested", sid, nil)
	require.Equal(t, http.StatusOK, code)
	suggested := decode[struct {
		Users []struct {
			ID int64 `json:"id"`
		} `json:"users"`
	}](t, env)
	assert.Len(t, suggested.Users, 3)

	code, env = do(t, r, http.MethodPost, "/api/v1/users/2/follow", sid, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[struct {
		Following bool `json:"following"`
	}](t, env).Following)

	code, _ = do(t, r, http.MethodGet, "/api/v1/users/99", sid, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Switch to the followed account and read the notification.
	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/current/logout", sid, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/api/v1/me", sid, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/current/login", sid, map[string]string{"username": "sarah_design"})
	require.Equal(t, http.StatusOK, code)

	type notificationsResp struct {
		Notifications []struct {
			ID       int64  `json:"id"`
			Type     string `json:"type"`
			FromUser string `json:"from_user"`
			PostID   *int64 `json:"post_id"`
		} `json:"notifications"`
		UnreadCount int `json:"unread_count"`
	}
	code, env = do(t, r, http.MethodGet, "/api/v1/notifications", sid, nil)
	require.Equal(t, http.StatusOK, code)
	got := decode[notificationsResp](t, env)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, "follow", got.Notifications[0].Type)
	assert.Equal(t, "jo", got.Notifications[0].FromUser)
	assert.Nil(t, got.Notifications[0].PostID)
	assert.Equal(t, 1, got.UnreadCount)

	code, _ = do(t, r, http.MethodPost, "/api/v1/notifications/1/read", sid, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/notifications", sid, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, decode[notificationsResp](t, env).UnreadCount)

	code, _ = do(t, r, http.MethodDelete, "/api/v1/sessions/current", sid, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/api/v1/trending", sid, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
