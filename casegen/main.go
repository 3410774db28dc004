package main

import (
	"fmt"
	"os"

	"github.com/casegen/casegen/server/modules/unique"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "casegen",
	Short:         "Operator tools for the casegen server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Generate a random secret key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		length, _ := cmd.Flags().GetInt("length")
		s, err := unique.GenerateRandomBase62String(length)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate a bcrypt digest of a password read from the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, _ := cmd.Flags().GetInt("cost")
		if cost < bcrypt.MinCost || bcrypt.MaxCost < cost {
			return bcrypt.InvalidCostError(cost)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Digest your password(cost = %v)\n", cost)
		fmt.Fprint(out, "Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Generating...")
		digest, err := bcrypt.GenerateFromPassword(password, cost)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, string(digest))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the TOML config file (default casegen.toml)")

	secretCmd.Flags().Int("length", 64, "length of the secret")
	passwordCmd.Flags().IntP("cost", "c", 12, "cost of bcrypt")

	rootCmd.AddCommand(serveCmd, secretCmd, passwordCmd, generateCmd, modelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
