package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellgraph/sheet/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run <script-file>",
	Short: "Run a command script against one sheet, stopping at the first error",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		sess := newSession(cfg)
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if err := sess.run(scanner.Text(), func(s string) { fmt.Fprintln(os.Stdout, s) }); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitCode(err))
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
