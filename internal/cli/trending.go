package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/feed-service/internal/feed"
)

func newTrendingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Print the top tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading.Fprintln(out, "Trending")
			counts := s.TagCounts(feed.TrendingLimit)
			if len(counts) == 0 {
				fmt.Fprintln(out, "No tags yet")
				return nil
			}

			table := newTable(out, "Tag", "Posts")
			for _, tc := range counts {
				table.Append([]string{"#" + tc.Tag, strconv.Itoa(tc.Count)})
			}
			table.Render()
			return nil
		},
	}
}
