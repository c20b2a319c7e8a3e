package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/astrohero/internal/adapters/ephemeris"
	service "github.com/okian/astrohero/internal/app"
	"github.com/okian/astrohero/internal/domain/background"
	"github.com/okian/astrohero/internal/domain/character"
	"github.com/okian/astrohero/internal/domain/model"
	"github.com/okian/astrohero/internal/domain/rating"
)

type sheetOptions struct {
	birth         model.BirthData
	scale         string
	houses        string
	backgroundMax int
	chart         bool
	compact       bool
}

func newSheetCmd() *cobra.Command {
	opts := &sheetOptions{}
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Derive a character sheet from birth data",
		Long: `Computes the natal chart for the given birth data and prints the derived
character sheet as JSON. Identical input always prints identical output.

Examples:
  astrohero-cli sheet --name 小明 --date 1990-06-15 --time 14:30 \
    --city 台北 --lon 121.5654 --lat 25.033 --tz Asia/Taipei`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSheet(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.birth.Name, "name", "", "Subject name")
	f.StringVar(&opts.birth.City, "city", "", "Birth city")
	f.Float64Var(&opts.birth.Longitude, "lon", 0, "Longitude in degrees, east positive")
	f.Float64Var(&opts.birth.Latitude, "lat", 0, "Latitude in degrees, north positive")
	f.StringVar(&opts.birth.Timezone, "tz", "", "IANA timezone of the local birth time (default "+ephemeris.DefaultTimezone+")")
	f.StringVar(&opts.scale, "scale", rating.Standard.Name, "Rating scale (standard, extended)")
	f.StringVar(&opts.houses, "houses", string(ephemeris.EqualHouses), "House system (equal, whole_sign, porphyry)")
	f.IntVar(&opts.backgroundMax, "background-max", background.DefaultMaxLength, "Background length cap in characters")
	f.BoolVar(&opts.chart, "chart", false, "Include the chart placements in the output")
	f.BoolVar(&opts.compact, "compact", false, "Print compact JSON")
	date := f.String("date", "", "Birth date as YYYY-MM-DD")
	clock := f.String("time", "", "Local birth time as HH:MM")
	for _, name := range []string{"name", "date", "time", "city", "lon", "lat"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.PreRunE = func(*cobra.Command, []string) error {
		if _, err := fmt.Sscanf(*date, "%d-%d-%d", &opts.birth.Year, &opts.birth.Month, &opts.birth.Day); err != nil {
			return fmt.Errorf("invalid --date %q: %w", *date, err)
		}
		if _, err := fmt.Sscanf(*clock, "%d:%d", &opts.birth.Hour, &opts.birth.Minute); err != nil {
			return fmt.Errorf("invalid --time %q: %w", *clock, err)
		}
		return nil
	}
	return cmd
}

func runSheet(cmd *cobra.Command, opts *sheetOptions) error {
	scale, err := rating.ParseScale(opts.scale)
	if err != nil {
		return err
	}
	houses, err := ephemeris.ParseHouseSystem(opts.houses)
	if err != nil {
		return err
	}

	svc := service.New(
		service.WithCalculator(ephemeris.NewApproximate(ephemeris.WithHouseSystem(houses))),
		service.WithDeriver(character.NewDeriver(
			character.WithScale(scale),
			character.WithComposer(background.NewComposer(background.WithMaxLength(opts.backgroundMax))),
		)),
	)
	res, err := svc.Calculate(cmd.Context(), opts.birth)
	if err != nil {
		return err
	}

	var out any = res.Character
	if opts.chart {
		out = res
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
