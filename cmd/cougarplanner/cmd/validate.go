package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured Canvas token is accepted",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	canvasClient, err := client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.RequestTimeout)
	defer cancel()

	if !canvasClient.ValidateToken(ctx) {
		return &errors.AuthenticationError{
			Endpoint: "/api/v1/courses",
			Message:  "token rejected or instance unreachable",
			Err:      errors.ErrTokenInvalid,
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Token accepted")
	return nil
}
