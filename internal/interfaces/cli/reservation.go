package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/hotel-booking/internal/application/usecases"
	"github.com/example/hotel-booking/internal/domain/reservation"
)

func newReservationCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Inspect reservations",
	}
	cmd.AddCommand(newReservationListCmd(opts))
	cmd.AddCommand(newReservationGetCmd(opts))
	return cmd
}

func newReservationListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reservations, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, st, err := opts.setup(ctx, false)
			if err != nil {
				return err
			}
			defer st.close()

			rs, err := usecases.LookupReservations{Store: st.reservations}.List(ctx)
			if err != nil {
				return err
			}
			for _, r := range rs {
				printReservation(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}

func newReservationGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get CONFIRMATION_NUMBER",
		Short: "Show one reservation with its guests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, st, err := opts.setup(ctx, false)
			if err != nil {
				return err
			}
			defer st.close()

			r, err := usecases.LookupReservations{Store: st.reservations}.Get(ctx, args[0])
			if err != nil {
				return err
			}
			printReservation(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func printReservation(w io.Writer, r reservation.Reservation) {
	guests := make([]string, 0, len(r.Guests))
	for _, g := range r.Guests {
		guests = append(guests, fmt.Sprintf("%s (%s)", g.Name, g.Gender))
	}
	fmt.Fprintf(w, "confirmation_number=%s hotel=%q checkin=%s checkout=%s guests=%q\n",
		r.ConfirmationNumber, r.HotelName, r.Checkin, r.Checkout, strings.Join(guests, ", "))
}
