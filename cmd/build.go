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

	"github.com/notargets/tetmodel/InputParameters"
	"github.com/notargets/tetmodel/logger"
	"github.com/notargets/tetmodel/mesh/readers"
	"github.com/notargets/tetmodel/model"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type BuildRun struct {
	SurfaceFile string // .stl, .obj or .msh
	ParamsFile  string
	OutFile     string // Gmsh 2.2 model output
	STLFile     string // Boundary surface output
	Silent      bool
	Profile     string // Directory for a CPU profile
	Perf        bool   // Count CPU instructions of the build
}

// BuildCmd represents the build command
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a tetrahedral model from a closed triangle surface",
	Long: `
Reads a closed triangle surface, tetrahedralizes it and assembles the model,

tetmodel build -F surface.obj -I params.yaml -o model.msh --stl boundary.stl`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		br := &BuildRun{}
		if br.SurfaceFile, err = cmd.Flags().GetString("surfaceFile"); err != nil {
			panic(err)
		}
		if br.ParamsFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		br.OutFile, _ = cmd.Flags().GetString("output")
		br.STLFile, _ = cmd.Flags().GetString("stl")
		br.Silent, _ = cmd.Flags().GetBool("silent")
		br.Profile, _ = cmd.Flags().GetString("profile")
		br.Perf, _ = cmd.Flags().GetBool("perf")
		bp := processBuildInput(br)

		level := bp.LogLevel
		if l := viper.GetString("logLevel"); l != "" {
			level = l
		}
		logFile := bp.LogFile
		if f := viper.GetString("logFile"); f != "" {
			logFile = f
		}
		if err = logger.Init(level, logFile); err != nil {
			panic(err)
		}
		defer logger.Sync()

		if br.Profile != "" {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(br.Profile), profile.Quiet).Stop()
		}
		if _, err = RunBuild(br, bp, os.Stdout); err != nil {
			logger.Error("Build failed", zap.Error(err))
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processBuildInput(br *BuildRun) (bp *InputParameters.BuildParameters) {
	var (
		err      error
		willExit bool
	)
	if len(br.SurfaceFile) == 0 {
		err := fmt.Errorf("must supply a surface file (-F, --surfaceFile) in .stl, .obj or .msh format")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	bp = InputParameters.NewBuildParameters()
	if len(br.ParamsFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(br.ParamsFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			willExit = true
		} else if err = bp.Parse(data); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", InputParameters.ExampleFile)
			willExit = true
		}
	}
	if willExit {
		os.Exit(1)
	}
	return
}

func init() {
	rootCmd.AddCommand(BuildCmd)
	BuildCmd.Flags().StringP("surfaceFile", "F", "", "Closed triangle surface to read in STL (.stl), OBJ (.obj) or Gmsh 2.2 (.msh) format")
	BuildCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for build parameters like:\n\t- MaxTetraVolume\n\t- SteinerBudget")
	BuildCmd.Flags().StringP("output", "o", "", "write the model in Gmsh 2.2 (.msh) format")
	BuildCmd.Flags().String("stl", "", "write the model boundary in STL format")
	BuildCmd.Flags().BoolP("silent", "s", false, "do not report build progress")
	BuildCmd.Flags().String("profile", "", "directory for a CPU profile of the run")
	BuildCmd.Flags().Bool("perf", false, "count the CPU instructions used by the build")
}

// RunBuild reads the surface, builds the model, prints its statistics to w and writes the requested outputs
func RunBuild(br *BuildRun, bp *InputParameters.BuildParameters, w io.Writer) (m *model.Model, err error) {
	in, err := readers.ReadSurfaceFile(br.SurfaceFile)
	if err != nil {
		return
	}
	if bp.Title != "" {
		fmt.Fprintf(w, "%s\n", bp.Title)
	}
	gen := model.NewGenerator(nil, bp.Options())
	gen.Reporter = model.NewLogReporter(logger.Named("build"))

	build := func() (err error) {
		m, err = gen.Build(in, br.Silent)
		return
	}
	if br.Perf {
		err = measureInstructions(build)
	} else {
		err = build()
	}
	if err != nil {
		return
	}
	if !m.Valid {
		return m, errors.Errorf("surface %s is empty", filepath.Base(br.SurfaceFile))
	}
	PrintStats(w, m.Stats())

	if br.OutFile != "" {
		if err = readers.WriteGmsh22File(br.OutFile, m); err != nil {
			return
		}
		logger.Info("Wrote model", zap.String("file", br.OutFile))
	}
	if br.STLFile != "" {
		if err = readers.WriteSTL(br.STLFile, m); err != nil {
			return
		}
		logger.Info("Wrote boundary", zap.String("file", br.STLFile))
	}
	return
}

func PrintStats(w io.Writer, st model.Stats) {
	fmt.Fprintf(w, "[%d]\t\t\t\t= Render Vertices\n", st.RenderVertices)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Physics Vertices\n", st.PhysicsVertices)
	fmt.Fprintf(w, "[%d/%d]\t\t\t\t= Surface/Interior Vertices\n", st.SurfaceVertices, st.InteriorVertices)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Tetrahedra\n", st.Tetrahedra)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Faces\n", st.Faces)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Maximum Neighbors\n", st.MaxDegree)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Dropped Neighbors\n", st.Overflows)
	fmt.Fprintf(w, "[%d]\t\t\t\t= One Sided Neighbors\n", st.AsymmetricPairs)
}
