/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/rotblauer/tilecut/api"
	"github.com/rotblauer/tilecut/geo"
	"github.com/spf13/cobra"
)

var optBBox string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [input] [output]",
	Short: "Extract tiles within a bounding box into a new archive",
	Long: `
Copies every tile of the input archive that falls inside --bbox into a
freshly created output archive, along with a verbatim copy of the
input's metadata table. The output must not already hold an archive.

The bounding box is decimal degrees, north,east,south,west. A box whose
edge lies exactly on a tile boundary includes the touching tile. A box
crossing the antimeridian selects nothing; split it and run twice.

Example:

  tilecut extract planet.mbtiles montana.mbtiles --bbox "49,-104,44.3,-116.1"
`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		bbox, err := geo.ParseBoundingBox(optBBox)
		if err != nil {
			log.Fatalln(err)
		}
		copied, err := api.Extract(args[0], args[1], bbox)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("Extraction complete: %d tiles copied\n", copied)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&optBBox, "bbox", "", "Bounding box in decimal degrees: N,E,S,W")
	extractCmd.MarkFlagRequired("bbox")
}
