// Package cli implements feedctl, an offline inspector that loads the seed
// world into a local session and prints it.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/feed-service/internal/seed"
	"github.com/weiawesome/wes-io-live/feed-service/internal/session"
)

var heading = color.New(color.FgHiCyan, color.Bold)

type rootOptions struct {
	seedFile string
}

// NewRootCmd builds the feedctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "feedctl [command] [flags]",
		Short:         "Inspect the demo feed world offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "seed file (defaults to the embedded demo world)")

	root.AddCommand(
		newFeedCmd(opts),
		newTrendingCmd(opts),
		newUsersCmd(opts),
		newNotificationsCmd(opts),
	)
	return root
}

// Execute runs feedctl with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) open() (*session.Session, error) {
	world, err := seed.Load(o.seedFile)
	if err != nil {
		return nil, err
	}
	return world.Factory(nil)()
}

func (o *rootOptions) openAs(username string) (*session.Session, error) {
	s, err := o.open()
	if err != nil {
		return nil, err
	}
	if username == "" {
		return s, nil
	}
	if _, err := s.Login(username); err != nil {
		return nil, fmt.Errorf("login as %s: %w", username, err)
	}
	return s, nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}
