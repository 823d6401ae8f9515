package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellgraph/sheet/internal/config"
	"github.com/cellgraph/sheet/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <script-file>",
	Short: "Run a command script, then render the sheet as a styled table",
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
			if err := sess.run(scanner.Text(), func(string) {}); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitCode(err))
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		fmt.Println(render.Table(sess.sheet, sess.errTokens))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
