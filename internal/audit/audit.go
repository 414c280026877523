package audit

import (
	"context"

	"github.com/weiawesome/wes-io-live/feed-service/pkg/log"
)

// Audit actions for feed-service.
const (
	ActionSessionOpen      = "feed.session_open"
	ActionSessionClose     = "feed.session_close"
	ActionSignUp           = "feed.signup"
	ActionLogin            = "feed.login"
	ActionLoginFailed      = "feed.login_failed"
	ActionLogout           = "feed.logout"
	ActionPostCreate       = "feed.post_create"
	ActionLike             = "feed.like"
	ActionUnlike           = "feed.unlike"
	ActionComment          = "feed.comment"
	ActionFollow           = "feed.follow"
	ActionUnfollow         = "feed.unfollow"
	ActionNotificationRead = "feed.notification_read"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, username string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUsername, username).
		Msg(msg)
}

// LogTarget emits an audit log naming the post, user or notification acted on.
func LogTarget(ctx context.Context, action string, username string, targetID int64, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUsername, username).
		Int64(FieldTargetID, targetID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, username string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUsername, username).
		Str(FieldDetail, detail).
		Msg(msg)
}
