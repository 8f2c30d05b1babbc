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

	"github.com/dustin/go-humanize"
	"github.com/rotblauer/tilecut/api"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [archive]",
	Short: "Summarize an archive: metadata, zoom levels, coverage",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		info, err := api.Info(args[0])
		if err != nil {
			log.Fatalln(err)
		}

		fmt.Printf("%s (%s)\n", info.Path, humanize.Bytes(uint64(info.Size)))
		for _, e := range info.Metadata {
			fmt.Printf("  %s: %s\n", e.Name, e.Value)
		}
		var total int64
		for _, z := range info.Zooms {
			total += z.Tiles
			fmt.Printf("  zoom %2d: %s tiles, columns %d-%d, rows %d-%d\n",
				z.Zoom, humanize.Comma(z.Tiles), z.XMin, z.XMax, z.YMin, z.YMax)
		}
		fmt.Printf("  total: %s tiles\n", humanize.Comma(total))
		if len(info.Zooms) > 0 {
			b := info.Coverage
			fmt.Printf("  coverage: %.4f,%.4f,%.4f,%.4f (W,S,E,N)\n",
				b.Min[0], b.Min[1], b.Max[0], b.Max[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
