package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/movieprompt/movieprompt/internal/maoyan"
	"github.com/spf13/cobra"
)

func newCityCmd(a *app) *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "city",
		Short: "Look up the city containing a coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			city, err := a.client().CityByLatLng(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}
			a.logger.Debug("City lookup", "lat", lat, "lng", lng, "name", city.Name())
			if err := printJSON(cmd.OutOrStdout(), city); err != nil {
				return err
			}
			if id, ok := city.ID(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "city id: %d\n", id)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

func newCinemasCmd(a *app) *cobra.Command {
	var q maoyan.CinemaQuery

	cmd := &cobra.Command{
		Use:   "cinemas",
		Short: "List cinemas showing a movie, nearest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := a.client()

			if q.ShowDate == "" {
				q.ShowDate = time.Now().Format("2006-01-02")
			}
			if q.CityID == 0 {
				city, err := client.CityByLatLng(ctx, q.Lat, q.Lng)
				if err != nil {
					return err
				}
				id, ok := city.ID()
				if !ok {
					return fmt.Errorf("city lookup returned no id for %v,%v", q.Lat, q.Lng)
				}
				q.CityID = id
				a.logger.Debug("Resolved city", "id", id, "name", city.Name())
			}

			list, err := client.Cinemas(ctx, q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(list.Cinemas) == 0 {
				fmt.Fprintln(w, "No cinemas found")
				return nil
			}
			for _, c := range list.Cinemas {
				fmt.Fprintf(w, "%s - %s - %s元起\n", c.Name, c.Address, c.SellPrice)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&q.MovieID, "movie-id", 0, "Movie ID")
	cmd.Flags().StringVar(&q.ShowDate, "date", "", "Show date YYYY-MM-DD (default today)")
	cmd.Flags().Int64Var(&q.CityID, "city-id", 0, "City ID (resolved from --lat/--lng when omitted)")
	cmd.Flags().Float64Var(&q.Lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&q.Lng, "lng", 0, "Longitude")
	cmd.Flags().IntVar(&q.Limit, "limit", 20, "Maximum cinemas to list")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "Listing offset")
	_ = cmd.MarkFlagRequired("movie-id")

	return cmd
}

func newTopRatedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "top-rated",
		Short: "Show the top rated movie list",
		RunE: func(cmd *cobra.Command, args []string) error {
			movies, err := a.client().TopRated(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, m := range movies {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.Score)
			}
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var cityID int64

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search movies by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client().SearchMovies(cmd.Context(), args[0], cityID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Int64Var(&cityID, "ci", 1, "City ID")

	return cmd
}

func newDetailCmd(a *app) *cobra.Command {
	var movieID int64
	var asRecord bool

	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Fetch a movie's detail",
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.client().MovieDetail(cmd.Context(), movieID)
			if err != nil {
				return err
			}
			if asRecord {
				return printJSON(cmd.OutOrStdout(), maoyan.DetailRecord(detail))
			}
			return printJSON(cmd.OutOrStdout(), detail)
		},
	}

	cmd.Flags().Int64Var(&movieID, "movie-id", 0, "Movie ID")
	cmd.Flags().BoolVar(&asRecord, "record", false, "Print the detail mapped to a movie record")
	_ = cmd.MarkFlagRequired("movie-id")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
