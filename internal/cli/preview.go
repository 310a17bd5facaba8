package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/spf13/cobra"
)

type previewOptions struct {
	online   bool
	city     string
	start    string
	end      string
	interval int
	from     string
	to       string
	timezone string
}

func newPreviewCmd() *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the slot grid that the admin form would generate",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(opts.timezone)
			if err != nil {
				return fmt.Errorf("timezone: %w", err)
			}

			cfg, r, err := opts.grid(loc)
			if err != nil {
				return err
			}

			slots, err := cfg.Generate(r, loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			key := cfg.Key()
			byDate := slotstore.GroupByDateThenSort(slotstore.SlotMap{key: slots}, loc)[key]

			fmt.Fprintf(out, "%s: %d %s\n", key, len(slots), formatting.PluralizeSlots(len(slots)))
			for _, date := range slotstore.SortedDates(byDate) {
				times := make([]string, 0, len(byDate[date]))
				for _, slot := range byDate[date] {
					times = append(times, formatting.FormatSlotTime(slot, loc))
				}
				fmt.Fprintf(out, "  %s  %s\n", formatting.FormatDateKey(date), strings.Join(times, " "))
			}
			return nil
		},
	}

	defaults := slotgrid.DefaultConfig()
	flags := cmd.Flags()
	flags.BoolVar(&opts.online, "online", false, "generate the online grid instead of a city")
	flags.StringVar(&opts.city, "city", "", "city for offline sessions")
	flags.StringVar(&opts.start, "start", defaults.DailyStart, "daily start time HH:MM")
	flags.StringVar(&opts.end, "end", defaults.DailyEnd, "daily end time HH:MM")
	flags.IntVar(&opts.interval, "interval", defaults.Interval, "interval in minutes")
	flags.StringVar(&opts.from, "from", "", "first day YYYY-MM-DD")
	flags.StringVar(&opts.to, "to", "", "last day YYYY-MM-DD (defaults to --from)")
	flags.StringVar(&opts.timezone, "tz", "Europe/Moscow", "IANA timezone of the grid")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// grid собирает конфиг и диапазон так же, как два клика в календаре админки
func (o previewOptions) grid(loc *time.Location) (slotgrid.Config, slotgrid.Range, error) {
	cfg := slotgrid.Config{
		Kind:       model.SessionOffline,
		City:       o.city,
		DailyStart: o.start,
		DailyEnd:   o.end,
		Interval:   o.interval,
	}
	if o.online {
		cfg.Kind = model.SessionOnline
	}

	to := o.to
	if to == "" {
		to = o.from
	}

	var r slotgrid.Range
	for _, value := range []string{o.from, to} {
		day, err := time.ParseInLocation(slotstore.DateLayout, value, loc)
		if err != nil {
			return cfg, r, fmt.Errorf("invalid date %q: %w", value, err)
		}
		r = r.Click(day)
	}

	return cfg, r, nil
}
