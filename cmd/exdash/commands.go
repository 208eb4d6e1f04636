package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/engine"
	"github.com/ukaji3/exdash-go/pkg/exdash/models"
	"github.com/ukaji3/exdash-go/pkg/exdash/output"
	"github.com/ukaji3/exdash-go/pkg/exdash/render"
)

var (
	showLimit int

	groupColumn string
	valueColumn string
	aggFunc     string
	aggLimit    int

	calcColumn string
	calcFunc   string

	chartType   string
	xColumn     string
	yColumn     string
	yAgg        string
	colorColumn string
	imagePath   string
)

type sheetInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Rows    int      `json:"rows" yaml:"rows"`
	Columns []string `json:"columns" yaml:"columns"`
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List sheets with their row counts and columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			var infos []sheetInfo
			for _, name := range s.Workbook.SheetNames {
				ds, _ := s.Workbook.Sheet(name)
				infos = append(infos, sheetInfo{Name: name, Rows: ds.Len(), Columns: ds.Names()})
			}
			return emit(infos, func(w io.Writer) error {
				for _, info := range infos {
					if _, err := fmt.Fprintf(w, "%s\t%d rows\t%s\n", info.Name, info.Rows, strings.Join(info.Columns, ", ")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [input.xlsx]",
		Short: "Print the working sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			return emitDataset(s.Sheet(), s.Data(), showLimit)
		},
	}
	cmd.Flags().IntVarP(&showLimit, "limit", "n", 20, "Maximum rows to print (0 = all)")
	return cmd
}

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate [input.xlsx]",
		Short: "Group the sheet by a column and reduce another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := parseFunc(aggFunc)
			if err != nil {
				return err
			}
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			req := engine.AggregationRequest{GroupColumn: groupColumn, Func: fn}
			if valueColumn != "" {
				req.ValueColumn = engine.Col(valueColumn)
			}
			out, err := s.Aggregate(req)
			if err != nil {
				return err
			}
			return emitDataset(s.Sheet(), out, aggLimit)
		},
	}
	cmd.Flags().StringVar(&groupColumn, "group", "", "Column to group by")
	cmd.Flags().StringVar(&valueColumn, "value", "", "Column to reduce (not needed for Count)")
	cmd.Flags().StringVar(&aggFunc, "func", "Count", "Count, Unique, Sum, Mean, Median, Max, Min or None")
	cmd.Flags().IntVarP(&aggLimit, "limit", "n", 0, "Maximum rows to print (0 = all)")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [input.xlsx]",
		Short: "Reduce one column to a single value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := parseFunc(calcFunc)
			if err != nil {
				return err
			}
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			res, err := s.Calculate(engine.ScalarRequest{Column: calcColumn, Func: fn})
			if err != nil {
				return err
			}
			return emit(res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s of %s: %s\n", res.Func, res.Column, output.FormatValue(res.Value))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&calcColumn, "column", "", "Column to reduce")
	cmd.Flags().StringVar(&calcFunc, "func", "Sum", "Count, Unique, Sum, Mean, Median, Max or Min")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart [input.xlsx]",
		Short: "Build a chart from the sheet and render it or print its descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := parseFunc(yAgg)
			if err != nil {
				return err
			}
			s, err := openSession(args[0])
			if err != nil {
				return err
			}

			req := engine.ChartRequest{
				Family:       parseFamily(chartType),
				XColumn:      xColumn,
				YAggregation: fn,
			}
			if yColumn != "" {
				req.YColumn = engine.Col(yColumn)
			}
			if colorColumn != "" {
				req.ColorColumn = engine.Col(colorColumn)
			}
			desc, err := s.Chart(req)
			if err != nil {
				return err
			}

			if imagePath == "" {
				return emit(desc, func(w io.Writer) error {
					return writeDescriptor(w, desc)
				})
			}
			return renderImage(desc, imagePath)
		},
	}
	cmd.Flags().StringVarP(&chartType, "type", "t", "bar", "line, bar, histogram, scatter, pie or box")
	cmd.Flags().StringVar(&xColumn, "x", "", "X axis column (slice names for pie)")
	cmd.Flags().StringVar(&yColumn, "y", "", "Y axis column (slice sizes for pie)")
	cmd.Flags().StringVar(&yAgg, "agg", "None", "Aggregate y by x first: Count, Unique, Sum, Mean, Median, Max, Min or None")
	cmd.Flags().StringVar(&colorColumn, "color", "", "Column splitting the data into series")
	cmd.Flags().StringVar(&imagePath, "image", "", "Render the chart to this .png or .svg file")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}

func emitDataset(sheet string, ds *models.Dataset, limit int) error {
	return emit(output.NewTable(sheet, ds, limit), func(w io.Writer) error {
		return output.WriteTable(w, ds, limit)
	})
}

func renderImage(desc *models.ChartDescriptor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()

	r := render.New(
		render.WithSize(cfg.Render.Width, cfg.Render.Height),
		render.WithFormat(render.FormatFromPath(path, render.Format(cfg.Render.Format))),
		render.WithLogger(logger),
	)
	if err := r.Render(desc, f); err != nil {
		return err
	}
	logger.Info("chart written", zap.String("path", path), zap.String("title", desc.Title))
	return nil
}

func writeDescriptor(w io.Writer, desc *models.ChartDescriptor) error {
	if _, err := fmt.Fprintln(w, desc.Title); err != nil {
		return err
	}
	channels := []struct {
		name string
		ch   *models.Channel
	}{
		{"x", desc.X}, {"y", desc.Y}, {"color", desc.Color},
		{"names", desc.Names}, {"values", desc.Values},
	}
	for _, c := range channels {
		if c.ch == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %-6s %s (%d values)\n", c.name, c.ch.Column, len(c.ch.Values)); err != nil {
			return err
		}
	}
	return nil
}

// parseFunc matches s case-insensitively against the aggregation vocabulary.
func parseFunc(s string) (engine.Func, error) {
	if strings.EqualFold(s, string(engine.FuncNone)) || s == "" {
		return engine.FuncNone, nil
	}
	for _, f := range engine.Funcs {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", engine.ErrUnsupportedAggregation, s)
}

// parseFamily accepts short names ("bar") as well as family names ("Bar Chart").
// Anything else is passed through for the chart builder to reject.
func parseFamily(s string) engine.Family {
	for _, f := range engine.Families {
		name := strings.ToLower(string(f))
		if strings.EqualFold(s, string(f)) || strings.ToLower(s) == strings.Fields(name)[0] {
			return f
		}
	}
	return engine.Family(s)
}
