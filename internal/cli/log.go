package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/lifeclock/internal/client"
	"github.com/lazypower/lifeclock/internal/engine"
)

const requestTimeout = 10 * time.Second

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a food, exercise or sleep entry to a running server",
}

var (
	foodQuantity string
	foodScore    int

	exerciseIntensity string
	exerciseCalories  int

	sleepTime string
	wakeTime  string
)

var logFoodCmd = &cobra.Command{
	Use:   "food <name>",
	Short: "Log a food entry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := engine.FoodRequest{
			FoodName: strings.Join(args, " "),
			Quantity: foodQuantity,
		}
		if cmd.Flags().Changed("score") {
			req.NutritionScore = &foodScore
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		e, err := client.New(serverURL).LogFood(ctx, req)
		if err != nil {
			return err
		}
		printImpact(cmd, e.LifeImpactHours, e.Explanation)
		return nil
	},
}

var logExerciseCmd = &cobra.Command{
	Use:   "exercise <type> <minutes>",
	Short: "Log an exercise entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := parsePositive(args[1], "minutes")
		if err != nil {
			return err
		}
		req := engine.ExerciseRequest{
			ExerciseType: args[0],
			Duration:     minutes,
			Intensity:    exerciseIntensity,
		}
		if cmd.Flags().Changed("calories") {
			req.CaloriesBurned = &exerciseCalories
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		e, err := client.New(serverURL).LogExercise(ctx, req)
		if err != nil {
			return err
		}
		printImpact(cmd, e.LifeImpactHours, e.Explanation)
		return nil
	},
}

var logSleepCmd = &cobra.Command{
	Use:   "sleep <hours> <quality 1-10>",
	Short: "Log a sleep entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := parsePositive(args[0], "hours")
		if err != nil {
			return err
		}
		quality, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quality %q: not an integer", args[1])
		}
		req := engine.SleepRequest{
			Duration:  hours,
			Quality:   quality,
			SleepTime: sleepTime,
			WakeTime:  wakeTime,
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		e, err := client.New(serverURL).LogSleep(ctx, req)
		if err != nil {
			return err
		}
		printImpact(cmd, e.LifeImpactHours, e.Explanation)
		return nil
	},
}

func parsePositive(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0) {
		return 0, fmt.Errorf("%s %q: must be a positive number", name, s)
	}
	return v, nil
}

func printImpact(cmd *cobra.Command, hours float64, explanation string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%+.2f hours\n%s\n", hours, explanation)
}

func init() {
	logFoodCmd.Flags().StringVarP(&foodQuantity, "quantity", "q", "", "portion, e.g. \"200g\" (default \"1 serving\")")
	logFoodCmd.Flags().IntVar(&foodScore, "score", 0, "nutrition score 0-100 (default: scored by the server)")

	logExerciseCmd.Flags().StringVarP(&exerciseIntensity, "intensity", "i", "", "low, moderate or high (default moderate)")
	logExerciseCmd.Flags().IntVar(&exerciseCalories, "calories", 0, "calories burned (default 5 per minute)")

	logSleepCmd.Flags().StringVar(&sleepTime, "slept", "", "bedtime, e.g. 23:00")
	logSleepCmd.Flags().StringVar(&wakeTime, "woke", "", "wake time, e.g. 07:00")

	logCmd.AddCommand(logFoodCmd, logExerciseCmd, logSleepCmd)
}
