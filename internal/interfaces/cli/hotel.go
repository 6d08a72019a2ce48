package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/hotel-booking/internal/application/usecases"
	"github.com/example/hotel-booking/internal/domain/hotel"
)

func newHotelCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotel",
		Short: "Manage the hotel catalog",
	}
	cmd.AddCommand(newHotelAddCmd(opts))
	cmd.AddCommand(newHotelListCmd(opts))
	cmd.AddCommand(newHotelGetCmd(opts))
	return cmd
}

func newHotelAddCmd(opts *rootOptions) *cobra.Command {
	var (
		id, price int
		rating    float64
		name      string
		address   string
		until     string
		available bool
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a hotel to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, st, err := opts.setup(ctx, true)
			if err != nil {
				return err
			}
			defer st.close()

			in := usecases.HotelInput{
				ID:             &id,
				Name:           name,
				Address:        address,
				Rating:         &rating,
				Price:          &price,
				AvailableUntil: until,
			}
			if cmd.Flags().Changed("available") {
				in.Available = &available
			}
			h, err := usecases.RegisterHotel{Hotels: st.hotels}.Execute(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), "created ")
			printHotel(cmd.OutOrStdout(), h)
			return nil
		},
	}

	c.Flags().IntVar(&id, "id", 0, "hotel id")
	c.Flags().StringVar(&name, "name", "", "hotel name")
	c.Flags().StringVar(&address, "address", "", "street address")
	c.Flags().Float64Var(&rating, "rating", 0, "rating, one decimal place")
	c.Flags().IntVar(&price, "price", 0, "nightly price")
	c.Flags().StringVar(&until, "available-until", "", "last bookable date (YYYY-MM-DD or MM/DD/YYYY)")
	c.Flags().BoolVar(&available, "available", false, "availability flag; left unset when omitted")
	for _, f := range []string{"id", "name", "rating", "price", "available-until"} {
		_ = c.MarkFlagRequired(f)
	}
	return c
}

func newHotelListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every hotel",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, st, err := opts.setup(ctx, false)
			if err != nil {
				return err
			}
			defer st.close()

			hs, err := usecases.BrowseHotels{Hotels: st.hotels}.List(ctx)
			if err != nil {
				return err
			}
			for _, h := range hs {
				printHotel(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}

func newHotelGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid hotel id %q", args[0])
			}
			ctx := cmd.Context()
			_, _, st, err := opts.setup(ctx, false)
			if err != nil {
				return err
			}
			defer st.close()

			h, err := usecases.BrowseHotels{Hotels: st.hotels}.Get(ctx, id)
			if err != nil {
				return err
			}
			printHotel(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func printHotel(w io.Writer, h hotel.Hotel) {
	available := "unset"
	if h.Available != nil {
		available = strconv.FormatBool(*h.Available)
	}
	fmt.Fprintf(w, "id=%d name=%q rating=%.1f price=%d available_until=%s available=%s\n",
		h.ID, h.Name, h.Rating, h.Price, h.AvailableUntil, available)
}
