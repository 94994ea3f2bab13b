package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/notargets/tetmodel/model"
	"github.com/pkg/errors"
)

// Parameters obtained from the YAML input file
type BuildParameters struct {
	Title          string  `json:"Title"`
	MaxTetraVolume float64 `json:"MaxTetraVolume"` // Zero disables the volume cap
	MinRatio       float64 `json:"MinRatio"`
	MinDihedral    float64 `json:"MinDihedral"`   // Degrees
	SteinerBudget  int     `json:"SteinerBudget"` // Negative for unlimited
	FaceMatch      string  `json:"FaceMatch"`     // hash or exact
	LogLevel       string  `json:"LogLevel"`
	LogFile        string  `json:"LogFile"`
}

// NewBuildParameters returns the defaults, a parsed file overrides the keys it contains
func NewBuildParameters() *BuildParameters {
	opts := model.DefaultOptions()
	return &BuildParameters{
		MaxTetraVolume: opts.MaxTetraVolume,
		MinRatio:       opts.MinRatio,
		MinDihedral:    opts.MinDihedral,
		SteinerBudget:  opts.SteinerBudget,
		FaceMatch:      opts.FaceMatch,
		LogLevel:       "info",
	}
}

func (bp *BuildParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, bp); err != nil {
		return errors.Wrap(err, "parsing build parameters")
	}
	return bp.Validate()
}

func (bp *BuildParameters) Validate() error {
	switch {
	case bp.MaxTetraVolume < 0:
		return errors.Errorf("MaxTetraVolume must not be negative, have %g", bp.MaxTetraVolume)
	case bp.MinRatio < 0:
		return errors.Errorf("MinRatio must not be negative, have %g", bp.MinRatio)
	case bp.MinDihedral < 0 || bp.MinDihedral >= 90:
		return errors.Errorf("MinDihedral must be in [0,90) degrees, have %g", bp.MinDihedral)
	case bp.FaceMatch != model.FaceMatchHash && bp.FaceMatch != model.FaceMatchExact:
		return errors.Errorf("FaceMatch must be %q or %q, have %q",
			model.FaceMatchHash, model.FaceMatchExact, bp.FaceMatch)
	}
	return nil
}

// Options converts the parameters to generator options
func (bp *BuildParameters) Options() model.Options {
	return model.Options{
		MaxTetraVolume: bp.MaxTetraVolume,
		MinRatio:       bp.MinRatio,
		MinDihedral:    bp.MinDihedral,
		SteinerBudget:  bp.SteinerBudget,
		FaceMatch:      bp.FaceMatch,
	}
}

func (bp *BuildParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", bp.Title)
	fmt.Printf("%8.2f\t\t= MaxTetraVolume\n", bp.MaxTetraVolume)
	fmt.Printf("%8.5f\t\t= MinRatio\n", bp.MinRatio)
	fmt.Printf("%8.5f\t\t= MinDihedral\n", bp.MinDihedral)
	fmt.Printf("[%d]\t\t\t\t= SteinerBudget\n", bp.SteinerBudget)
	fmt.Printf("[%s]\t\t\t= FaceMatch\n", bp.FaceMatch)
}

// ExampleFile is shown when no parameter file is given
const ExampleFile = `
########################################
Title: "Test Case"
MaxTetraVolume: 7500  # 0 disables the volume cap
MinRatio: 1.5
MinDihedral: 10
SteinerBudget: 4      # -1 for unlimited
FaceMatch: hash       # Can be "exact"
LogLevel: info
########################################
`
