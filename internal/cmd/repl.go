package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellgraph/sheet/internal/config"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read commands interactively from stdin against one sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		sess := newSession(cfg)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := sess.run(scanner.Text(), func(s string) { fmt.Fprintln(os.Stdout, s) }); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
