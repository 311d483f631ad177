package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazypower/lifeclock/internal/longevity"
)

var scoreCmd = &cobra.Command{
	Use:   "score <food>",
	Short: "Print the nutrition score of a food",
	Long:  "Scores a food name on a 0-100 scale. Runs locally; no server needed.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		food := strings.Join(args, " ")
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", food, longevity.NutritionScore(food))
	},
}
