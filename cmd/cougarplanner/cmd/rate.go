package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/errors"
)

var rateClear bool

var rateCmd = &cobra.Command{
	Use:   "rate <assignment-id> [difficulty]",
	Short: "Set or clear an assignment's difficulty rating",
	Long: `Rate assigns a difficulty from 1 to 5 to a stored assignment. The
rating is yours alone: Canvas never supplies one, and syncs carry it forward
unchanged.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRate,
}

func init() {
	rateCmd.Flags().BoolVar(&rateClear, "clear", false, "remove the rating instead of setting one")
	rootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	id := args[0]

	difficulty := 0
	if !rateClear {
		if len(args) < 2 {
			return &errors.ValidationError{Field: "difficulty", Message: "required unless --clear is set"}
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < constants.MinDifficulty || n > constants.MaxDifficulty {
			return &errors.ValidationError{
				Field:   "difficulty",
				Value:   args[1],
				Message: fmt.Sprintf("must be an integer from %d to %d", constants.MinDifficulty, constants.MaxDifficulty),
			}
		}
		difficulty = n
	}

	_, assignments, _ := stores()
	all, err := assignments.All()
	if err != nil {
		return err
	}

	for _, a := range all {
		if a.ID != id {
			continue
		}
		a.Difficulty = difficulty
		if err := assignments.Upsert(a); err != nil {
			return err
		}
		if rateClear {
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared rating on %q\n", a.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Rated %q difficulty %d\n", a.Name, difficulty)
		}
		return nil
	}
	return &errors.NotFoundError{Resource: "assignment", ID: id}
}
