package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

// SodVariables are the fields the Sod case can export, in data file column order
var SodVariables = []string{"rho", "u", "p", "e"}

// Parameters obtained from the YAML input file, ghodss/yaml matches them through the json tags
type ExportParameters struct {
	Title      string         `json:"Title"`
	Output     string         `json:"Output"`
	Grid       bool           `json:"Grid"`
	PNGOutput  bool           `json:"PNGOutput"`
	AxesLimits string         `json:"AxesLimits"`
	Precision  int            `json:"Precision"`
	Time       float64        `json:"Time"`
	Variables  []string       `json:"Variables"`
	Ranks      int            `json:"Ranks"`
	Mesh       MeshParameters `json:"Mesh"`
}

type MeshParameters struct {
	XMin    float64 `json:"XMin"`
	XMax    float64 `json:"XMax"`
	K       int     `json:"K"`
	Spacing string  `json:"Spacing"` // "uniform" or "gll"
	Refine  []int   `json:"Refine"`  // Elements to bisect, applied in order
	Levels  int     `json:"Levels"`  // Uniform bisections applied after Refine
}

func NewExportParameters() *ExportParameters {
	return &ExportParameters{
		Title:     "Sod Shock Tube",
		Output:    "sod.gp",
		Time:      0.2,
		Variables: append([]string(nil), SodVariables...),
		Ranks:     1,
		Mesh: MeshParameters{
			XMin:    0,
			XMax:    1,
			K:       50,
			Spacing: "uniform",
		},
	}
}

// Parse overlays the file contents on the current values
func (ep *ExportParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ep)
}

func (ep *ExportParameters) Validate() (err error) {
	if ep.Mesh.K < 1 {
		return fmt.Errorf("mesh needs at least one element, have K = %d", ep.Mesh.K)
	}
	if ep.Mesh.XMax <= ep.Mesh.XMin {
		return fmt.Errorf("mesh XMax %g must be greater than XMin %g", ep.Mesh.XMax, ep.Mesh.XMin)
	}
	if ep.Mesh.Levels < 0 {
		return fmt.Errorf("refinement levels can't be negative, have %d", ep.Mesh.Levels)
	}
	switch strings.ToLower(ep.Mesh.Spacing) {
	case "uniform", "gll":
	default:
		return fmt.Errorf("unknown mesh spacing %q, use uniform or gll", ep.Mesh.Spacing)
	}
	if ep.Ranks < 1 {
		return fmt.Errorf("need at least one rank, have %d", ep.Ranks)
	}
	if len(ep.Variables) == 0 {
		return fmt.Errorf("no variables selected")
	}
	for _, name := range ep.Variables {
		if _, err = VariableIndex(name); err != nil {
			return
		}
	}
	if len(ep.Output) == 0 {
		return fmt.Errorf("must supply an output file name")
	}
	return
}

func VariableIndex(name string) (idx int, err error) {
	for i, v := range SodVariables {
		if strings.EqualFold(v, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown variable %q, have %v", name, SodVariables)
}

func (ep *ExportParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ep.Title)
	fmt.Printf("[%s]\t\t= Output\n", ep.Output)
	fmt.Printf("%8.5f\t\t= Time\n", ep.Time)
	fmt.Printf("%v\t= Variables\n", ep.Variables)
	fmt.Printf("[%d]\t\t\t= Elements\n", ep.Mesh.K)
	fmt.Printf("[%g:%g]\t\t\t= Domain\n", ep.Mesh.XMin, ep.Mesh.XMax)
	fmt.Printf("[%s]\t\t= Spacing\n", ep.Mesh.Spacing)
	if len(ep.Mesh.Refine) != 0 {
		fmt.Printf("%v\t\t= Refined Elements\n", ep.Mesh.Refine)
	}
	if ep.Mesh.Levels != 0 {
		fmt.Printf("[%d]\t\t\t= Refinement Levels\n", ep.Mesh.Levels)
	}
	fmt.Printf("%v\t\t\t= Grid\n", ep.Grid)
	fmt.Printf("%v\t\t\t= PNG Output\n", ep.PNGOutput)
	if len(ep.AxesLimits) != 0 {
		fmt.Printf("%s\t\t= Axes Limits\n", ep.AxesLimits)
	}
	fmt.Printf("[%d]\t\t\t\t= Ranks\n", ep.Ranks)
}
