package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
	"github.com/weiawesome/wes-io-live/feed-service/internal/service"
	"github.com/weiawesome/wes-io-live/feed-service/internal/session"
	"github.com/weiawesome/wes-io-live/feed-service/pkg/log"
	"github.com/weiawesome/wes-io-live/feed-service/pkg/middleware"
	"github.com/weiawesome/wes-io-live/feed-service/pkg/response"
)

// Handler handles HTTP requests for feed service.
type Handler struct {
	feedService service.FeedService
}

// NewHandler creates a new HTTP handler.
func NewHandler(feedService service.FeedService) *Handler {
	return &Handler{feedService: feedService}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// Public routes
		api.POST("/sessions", h.OpenSession)

		// Session-scoped routes
		scoped := api.Group("")
		scoped.Use(middleware.RequireSession(), h.loadSession)
		{
			current := scoped.Group("/sessions/current")
			{
				current.DELETE("", h.CloseSession)
				current.POST("/login", h.Login)
				current.POST("/signup", h.SignUp)
				current.POST("/logout", h.Logout)
			}

			scoped.GET("/me", h.GetMe)

			users := scoped.Group("/users")
			{
				users.GET("/suggested", h.SuggestedUsers)
				users.GET("/:user_id", h.GetUser)
				users.POST("/:user_id/follow", h.ToggleFollow)
			}

			scoped.GET("/feed", h.GetFeed)

			posts := scoped.Group("/posts")
			{
				posts.POST("", h.CreatePost)
				posts.GET("/:post_id", h.GetPost)
				posts.POST("/:post_id/like", h.ToggleLike)
				posts.POST("/:post_id/comments", h.AddComment)
			}

			scoped.GET("/trending", h.GetTrending)

			notifications := scoped.Group("/notifications")
			{
				notifications.GET("", h.GetNotifications)
				notifications.POST("/:notification_id/read", h.MarkNotificationRead)
			}
		}
	}
}

// loadSession rejects unknown sessions and records the viewer for request logging.
func (h *Handler) loadSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	info, err := h.feedService.Describe(c.Request.Context(), sessionID)
	if err != nil {
		h.writeError(c, err, "failed to load session")
		c.Abort()
		return
	}

	middleware.SetUsername(c, info.Username)
	c.Request = c.Request.WithContext(log.WithSession(c.Request.Context(), sessionID))
	c.Next()
}

// OpenSession starts a new seeded session.
func (h *Handler) OpenSession(c *gin.Context) {
	info, err := h.feedService.OpenSession(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "failed to open session")
		return
	}
	response.Created(c, info)
}

// CloseSession discards the current session.
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.feedService.CloseSession(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.writeError(c, err, "failed to close session")
		return
	}
	response.Success(c, gin.H{"message": "session closed"})
}

// Login handles viewer login by username.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.feedService.Login(ctx, middleware.GetSessionID(c), req.Username)
	if err != nil {
		h.writeError(c, err, "failed to login")
		return
	}

	middleware.SetUsername(c, user.Username)
	response.Success(c, user)
}

// SignUp handles account creation.
func (h *Handler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid signup request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.feedService.SignUp(ctx, middleware.GetSessionID(c), &req)
	if err != nil {
		h.writeError(c, err, "failed to sign up")
		return
	}

	middleware.SetUsername(c, user.Username)
	response.Created(c, user)
}

// Logout clears the session viewer.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.feedService.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.writeError(c, err, "failed to logout")
		return
	}
	response.Success(c, gin.H{"message": "logged out successfully"})
}

// GetMe returns the session viewer.
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.feedService.Me(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.writeError(c, err, "failed to get user")
		return
	}
	response.Success(c, user)
}

// GetUser returns a user profile.
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.feedService.GetUser(c.Request.Context(), middleware.GetSessionID(c), domain.UserID(userID))
	if err != nil {
		h.writeError(c, err, "failed to get user")
		return
	}
	response.Success(c, user)
}

// SuggestedUsers returns accounts the viewer does not follow yet.
func (h *Handler) SuggestedUsers(c *gin.Context) {
	users, err := h.feedService.SuggestedUsers(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.writeError(c, err, "failed to get suggestions")
		return
	}
	response.Success(c, gin.H{"users": users})
}

// ToggleFollow follows or unfollows a user.
func (h *Handler) ToggleFollow(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	result, err := h.feedService.ToggleFollow(c.Request.Context(), middleware.GetSessionID(c), domain.UserID(userID))
	if err != nil {
		h.writeError(c, err, "failed to toggle follow")
		return
	}
	response.Success(c, result)
}

// GetFeed returns the posts visible in the requested view.
func (h *Handler) GetFeed(c *gin.Context) {
	view, err := domain.ParseView(c.Query("view"))
	if err != nil {
		h.writeError(c, err, "failed to get feed")
		return
	}

	posts, err := h.feedService.Feed(c.Request.Context(), middleware.GetSessionID(c), view, c.Query("q"))
	if err != nil {
		h.writeError(c, err, "failed to get feed")
		return
	}
	response.Success(c, gin.H{"view": view, "posts": posts})
}

// GetPost returns a single post with its comments.
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	post, err := h.feedService.GetPost(c.Request.Context(), middleware.GetSessionID(c), domain.PostID(postID))
	if err != nil {
		h.writeError(c, err, "failed to get post")
		return
	}
	response.Success(c, post)
}

// CreatePost publishes a post as the viewer.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create post request")
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.feedService.CreatePost(ctx, middleware.GetSessionID(c), &req)
	if err != nil {
		h.writeError(c, err, "failed to create post")
		return
	}
	response.Created(c, post)
}

// ToggleLike likes or unlikes a post.
func (h *Handler) ToggleLike(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	result, err := h.feedService.ToggleLike(c.Request.Context(), middleware.GetSessionID(c), domain.PostID(postID))
	if err != nil {
		h.writeError(c, err, "failed to toggle like")
		return
	}
	response.Success(c, result)
}

// AddComment comments on a post.
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	var req domain.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid comment request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.feedService.AddComment(ctx, middleware.GetSessionID(c), domain.PostID(postID), &req)
	if err != nil {
		h.writeError(c, err, "failed to add comment")
		return
	}
	response.Success(c, result)
}

// GetTrending returns the top tags.
func (h *Handler) GetTrending(c *gin.Context) {
	tags, err := h.feedService.Trending(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.writeError(c, err, "failed to get trending tags")
		return
	}
	response.Success(c, gin.H{"tags": tags})
}

// GetNotifications returns the viewer's notifications.
func (h *Handler) GetNotifications(c *gin.Context) {
	result, err := h.feedService.Notifications(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.writeError(c, err, "failed to get notifications")
		return
	}
	response.Success(c, result)
}

// MarkNotificationRead flags a notification as read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "notification_id")
	if !ok {
		return
	}

	applied, err := h.feedService.MarkNotificationRead(c.Request.Context(), middleware.GetSessionID(c), domain.NotificationID(id))
	if err != nil {
		h.writeError(c, err, "failed to mark notification read")
		return
	}
	response.Success(c, gin.H{"applied": applied})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(c, "session not found")
	case errors.Is(err, session.ErrTooManySessions):
		response.ServiceUnavailable(c, "too many open sessions")
	case errors.Is(err, service.ErrNotLoggedIn):
		response.Unauthorized(c, "not logged in")
	case errors.Is(err, session.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, session.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, session.ErrUsernameTaken):
		response.Conflict(c, "username already exists")
	case errors.Is(err, session.ErrEmptyContent),
		errors.Is(err, session.ErrUsernameRequired),
		errors.Is(err, session.ErrMissingProfileField),
		errors.Is(err, domain.ErrInvalidView):
		response.BadRequest(c, err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Str(log.FieldUsername, middleware.GetUsername(c)).Msg(msg)
		response.InternalError(c, msg)
	}
}
