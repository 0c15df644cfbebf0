package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/akkyie/xcdoc"
	"github.com/akkyie/xcdoc/codec"
	"github.com/akkyie/xcdoc/lang"
	"github.com/akkyie/xcdoc/render"
)

// Version is injected at build time
var Version = "dev"

func main() {
	if err := Execute(os.Args[1:]); err != nil {
		if !errors.Is(err, xcdoc.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing.
func Execute(args []string) error {
	v := viper.New()
	v.SetEnvPrefix("XCDOC")
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "xcdoc",
		Short:         "Query a documentation catalog",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("catalog", "", "catalog base directory (env: XCDOC_CATALOG)")
	flags.String("codec", "", "payload codec, json or go-json (default go-json)")
	flags.Bool("verbose", false, "enable debug logging")
	flags.Bool("log-json", false, "emit logs as JSON")
	bindFlags(v, flags)

	rootCmd.AddCommand(newShowCommand(v), newSearchCommand(v))
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	_ = v.BindPFlag("catalog", flags.Lookup("catalog"))
	_ = v.BindPFlag("codec", flags.Lookup("codec"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = v.BindPFlag("log_json", flags.Lookup("log-json"))
}

func openCatalog(v *viper.Viper) (*xcdoc.Catalog, error) {
	dir := v.GetString("catalog")
	if dir == "" {
		return nil, errors.New("no catalog directory; pass --catalog or set XCDOC_CATALOG")
	}

	logger := xcdoc.NoopLogger()
	if v.GetBool("verbose") {
		if v.GetBool("log_json") {
			logger = xcdoc.NewJSONLogger(slog.LevelDebug)
		} else {
			logger = xcdoc.NewTextLogger(slog.LevelDebug)
		}
	}
	opts := []xcdoc.Option{xcdoc.WithLogger(logger)}

	if name := v.GetString("codec"); name != "" {
		c, ok := codec.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown codec %q", name)
		}
		opts = append(opts, xcdoc.WithCodec(c))
	}
	return xcdoc.Open(dir, opts...)
}

func newShowCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show <identifier|path>",
		Short: "Print one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog(v)
			if err != nil {
				return err
			}
			defer cat.Close()

			doc, err := cat.Document(cmd.Context(), args[0])
			if errors.Is(err, xcdoc.ErrNotFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "not found: %s\n", args[0])
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Text(doc))
			return nil
		},
	}
}

func newSearchCommand(v *viper.Viper) *cobra.Command {
	var (
		limit    int
		langName string
	)
	cmd := &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Search documents by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog(v)
			if err != nil {
				return err
			}
			defer cat.Close()

			var language *lang.Language
			if langName != "" {
				l, ok := lang.ByName(langName)
				if !ok {
					return fmt.Errorf("unknown language %q", langName)
				}
				language = &l
			}

			result, err := cat.Search(cmd.Context(), args, language, limit)
			if err != nil {
				return err
			}
			if len(result.Hits) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no matches for %q\n", strings.Join(args, " "))
				return xcdoc.ErrNotFound
			}
			for _, hit := range result.Hits {
				title := hit.Title
				if title == "" {
					title = hit.Path
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-40s %s\n", hit.PageType, title, hit.Path)
			}
			if result.Truncated {
				fmt.Fprintln(cmd.ErrOrStderr(), "search stopped early; refine the keywords for full coverage")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of hits")
	cmd.Flags().StringVarP(&langName, "language", "l", "", "restrict to one language (swift, occ, data)")
	return cmd
}
