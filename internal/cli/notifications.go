package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
	"github.com/weiawesome/wes-io-live/feed-service/internal/feed"
)

var unread = color.New(color.FgYellow, color.Bold)

func newNotificationsCmd(opts *rootOptions) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Print a user's notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if as == "" {
				return fmt.Errorf("--as is required")
			}
			s, err := opts.openAs(as)
			if err != nil {
				return err
			}
			u, _ := s.Viewer()

			out := cmd.OutOrStdout()
			count := s.UnreadCount(u.ID)
			heading.Fprintf(out, "Notifications for %s ", u.Username)
			unread.Fprintf(out, "(%d unread)\n", count)

			list := s.NotificationsFor(u.ID)
			if len(list) == 0 {
				fmt.Fprintln(out, "No notifications")
				return nil
			}

			now := s.Now()
			table := newTable(out, "", "From", "Event", "Age")
			for _, n := range list {
				marker := ""
				if !n.Read {
					marker = unread.Sprint("●")
				}
				table.Append([]string{marker, n.FromUsername, describe(n), feed.FormatSince(n.CreatedAt, now)})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "username whose notifications to show")
	return cmd
}

func describe(n domain.Notification) string {
	switch n.Kind {
	case domain.NotificationLike:
		return "liked post " + postRef(n.PostID)
	case domain.NotificationComment:
		return "commented on post " + postRef(n.PostID)
	case domain.NotificationFollow:
		return "started following you"
	default:
		return string(n.Kind)
	}
}

func postRef(id *domain.PostID) string {
	if id == nil {
		return "?"
	}
	return "#" + strconv.FormatInt(int64(*id), 10)
}
