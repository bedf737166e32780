package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

func TestYearFlagsApply(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		padding float64
		gap     float64
	}{
		{"no flags keep config", nil, 4, 30},
		{"explicit zero", []string{"--padding", "0", "--month-gap", "0"}, 0, 0},
		{"padding only", []string{"--padding", "1.5"}, 1.5, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var yf yearFlags
			cmd := &cobra.Command{Use: "render"}
			yf.register(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}

			opts := pipeline.DefaultOptions()
			opts.Padding, opts.MonthGap = 4, 30
			if err := yf.apply(resolvedYear{year: 2025}, &opts); err != nil {
				t.Fatalf("apply: %v", err)
			}
			if opts.Padding != tt.padding || opts.MonthGap != tt.gap {
				t.Errorf("padding/month gap = %g/%g, want %g/%g", opts.Padding, opts.MonthGap, tt.padding, tt.gap)
			}
			if opts.SquareSize != grid.DefaultSquareSize {
				t.Errorf("SquareSize = %g, want %g", opts.SquareSize, grid.DefaultSquareSize)
			}
			if opts.Year != 2025 {
				t.Errorf("Year = %d, want 2025", opts.Year)
			}
		})
	}
}
