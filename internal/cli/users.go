package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newUsersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every user in the world",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading.Fprintln(out, "Users")
			table := newTable(out, "ID", "Username", "Name", "Followers", "Following", "Joined")
			for _, u := range s.Users() {
				table.Append([]string{
					strconv.FormatInt(int64(u.ID), 10),
					u.Avatar + " " + u.Username,
					u.Name,
					strconv.Itoa(u.Followers.Len()),
					strconv.Itoa(u.Following.Len()),
					u.JoinDate.Format(time.DateOnly),
				})
			}
			table.Render()
			return nil
		},
	}
}
