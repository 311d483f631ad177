package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lazypower/lifeclock/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show life expectancy, countdown and today's food",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	c := client.New(serverURL)
	if !c.Healthy(ctx) {
		return fmt.Errorf("lifeclock server not reachable at %s", c.URL())
	}

	u, err := c.User(ctx)
	if err != nil {
		return err
	}
	cd, err := c.Countdown(ctx)
	if err != nil {
		return err
	}
	today, err := c.TodayFood(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	years, _ := strconv.ParseFloat(u.CurrentLifeExpectancy, 64)
	fmt.Fprintf(out, "%s, age %s\n", u.Username, humanize.Ftoa(u.Age))
	fmt.Fprintf(out, "Life expectancy: %s years\n", humanize.FormatFloat("#,###.####", years))
	fmt.Fprintf(out, "Life extension:  %s hours\n", humanize.FormatFloat("#,###.##", u.TotalLifeExtension))
	fmt.Fprintf(out, "Remaining:       %dy %dmo %dd %dh %dm %ds (%s seconds)\n",
		cd.Years, cd.Months, cd.Days, cd.Hours, cd.Minutes, cd.Seconds,
		humanize.Comma(int64(cd.TotalSeconds)))

	if len(today) == 0 {
		fmt.Fprintln(out, "\nNo food logged today.")
		return nil
	}
	fmt.Fprintf(out, "\nToday's food (%d):\n", len(today))
	for _, e := range today {
		fmt.Fprintf(out, "  %-24s score %3d  %+.2fh  %s\n",
			e.FoodName, e.NutritionScore, e.LifeImpactHours, humanize.Time(e.Timestamp))
	}
	return nil
}
