package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
	"github.com/weiawesome/wes-io-live/feed-service/internal/feed"
)

const previewLen = 60

func newFeedCmd(opts *rootOptions) *cobra.Command {
	var (
		as     string
		view   string
		search string
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the posts visible in a view",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseView(view)
			if err != nil {
				return err
			}
			s, err := opts.openAs(as)
			if err != nil {
				return err
			}

			var viewer domain.UserID
			if u, ok := s.Viewer(); ok {
				viewer = u.ID
			}
			posts := s.QueryFeed(viewer, v, search)

			out := cmd.OutOrStdout()
			heading.Fprintf(out, "%s feed (%d posts)\n", v, len(posts))
			if len(posts) == 0 {
				fmt.Fprintln(out, "No posts")
				return nil
			}

			now := s.Now()
			table := newTable(out, "#", "Author", "Age", "Likes", "Comments", "Tags", "Content")
			for _, p := range posts {
				author := strconv.FormatInt(int64(p.AuthorID), 10)
				if u, ok := s.User(p.AuthorID); ok {
					author = u.Username
				}
				table.Append([]string{
					strconv.FormatInt(int64(p.ID), 10),
					author,
					feed.FormatSince(p.CreatedAt, now),
					strconv.Itoa(p.Likes.Len()),
					strconv.Itoa(len(p.Comments)),
					strings.Join(p.Tags, " "),
					preview(p.Content),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "username to view as")
	cmd.Flags().StringVar(&view, "view", string(domain.ViewHome), "home, explore, profile, notifications or settings")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text or tag filter")
	return cmd
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "…"
}
