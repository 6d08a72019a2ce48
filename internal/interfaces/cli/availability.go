package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hotel-booking/internal/application/usecases"
)

func newAvailabilityCmd(opts *rootOptions) *cobra.Command {
	var checkin, checkout string

	c := &cobra.Command{
		Use:   "availability",
		Short: "List hotels open through the checkout date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, st, err := opts.setup(ctx, false)
			if err != nil {
				return err
			}
			defer st.close()

			hs, err := usecases.QueryAvailability{Hotels: st.hotels}.Execute(ctx, checkin, checkout)
			if err != nil {
				return err
			}
			if len(hs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no hotels available")
				return nil
			}
			for _, h := range hs {
				printHotel(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}

	c.Flags().StringVar(&checkin, "checkin", "", "checkin date")
	c.Flags().StringVar(&checkout, "checkout", "", "checkout date")
	return c
}
