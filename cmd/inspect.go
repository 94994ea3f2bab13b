/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/notargets/tetmodel/mesh/readers"
	"github.com/spf13/cobra"
)

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the contents of a surface or model file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := Inspect(args[0], os.Stdout); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(InspectCmd)
}

// Inspect prints element counts of a .msh model or the surface of an .stl or .obj file
func Inspect(filename string, w io.Writer) error {
	if strings.ToLower(filepath.Ext(filename)) == ".msh" {
		gm, err := readers.ReadGmshAuto(filename)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "[%s]\t\t\t\t= Gmsh Version\n", gm.FormatVersion)
		fmt.Fprintf(w, "[%d]\t\t\t\t= Vertices\n", len(gm.Vertices))
		fmt.Fprintf(w, "[%d]\t\t\t\t= Triangles\n", len(gm.Triangles))
		fmt.Fprintf(w, "[%d]\t\t\t\t= Tetrahedra\n", len(gm.Tetrahedra))
		fmt.Fprintf(w, "[%d]\t\t\t\t= Skipped Elements\n", gm.Skipped)
		tags := make([]int, 0, len(gm.PhysicalNames))
		for tag := range gm.PhysicalNames {
			tags = append(tags, tag)
		}
		sort.Ints(tags)
		for _, tag := range tags {
			fmt.Fprintf(w, "PhysicalNames[%d] = %s\n", tag, gm.PhysicalNames[tag])
		}
		return nil
	}
	surf, err := readers.ReadSurfaceFile(filename)
	if err != nil {
		return err
	}
	bb := surf.BoundingBox()
	fmt.Fprintf(w, "[%d]\t\t\t\t= Vertices\n", len(surf.Vertices))
	fmt.Fprintf(w, "[%d]\t\t\t\t= Triangles\n", surf.NumTriangles())
	fmt.Fprintf(w, "[%d]\t\t\t\t= Texture Channels\n", surf.NumTexCoords())
	fmt.Fprintf(w, "%v -> %v\t= Bounds\n", bb.Min, bb.Max)
	return nil
}
