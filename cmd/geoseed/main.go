// geoseed converts INEGI marco geoestadístico shapefiles into the geography
// catalog JSON the sandbox serves.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/costamaya/backoffice/internal/geoseed"
)

var src geoseed.Sources
var out string

var rootCmd = &cobra.Command{
	Use:   "geoseed",
	Short: "Build the geography catalog from INEGI shapefiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := geoseed.Build(src)
		if err != nil {
			return err
		}
		if err := geoseed.WriteCatalog(catalog, out); err != nil {
			return err
		}
		fmt.Printf("Wrote %d states, %d municipalities, %d localities to %s\n",
			len(catalog.States), len(catalog.Municipalities), len(catalog.Localities), out)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&src.States, "states", "", "states layer .shp (required)")
	rootCmd.Flags().StringVar(&src.Municipalities, "municipalities", "", "municipalities layer .shp")
	rootCmd.Flags().StringVar(&src.Localities, "localities", "", "localities layer .shp")
	rootCmd.Flags().StringVarP(&out, "out", "o", "geography.json", "output catalog path")
	_ = rootCmd.MarkFlagRequired("states")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
