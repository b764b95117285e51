package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/vmmfluid/materials"
)

// Parameters obtained from the YAML input file
type FluidParameters struct {
	Title           string                       `json:"Title"`
	Shape           string                       `json:"Shape"`
	Action          string                       `json:"Action"`
	ConvForm        string                       `json:"ConvForm"`
	Linearisation   string                       `json:"Linearisation"`
	ALE             bool                         `json:"ALE"`
	TimeIntegration TimeIntegration              `json:"TimeIntegration"`
	Stabilization   StabilizationParameters      `json:"Stabilization"`
	MaterialID      int                          `json:"MaterialID"`
	Materials       map[int]materials.Definition `json:"Materials"`
	BodyForce       []float64                    `json:"BodyForce"`
	Channel         ChannelParameters            `json:"Channel"`
}

// TimeIntegration holds the generalized-alpha coefficients. A non zero RhoInf
// replaces AlphaM, AlphaF and Gamma by the values following from the
// spectral radius.
type TimeIntegration struct {
	AlphaM float64 `json:"AlphaM"`
	AlphaF float64 `json:"AlphaF"`
	Gamma  float64 `json:"Gamma"`
	RhoInf float64 `json:"RhoInf"`
	Dt     float64 `json:"Dt"`
	Time   float64 `json:"Time"`
}

type StabilizationParameters struct {
	Subscales string `json:"Subscales"`
	Transient string `json:"Transient"`
	SUPG      bool   `json:"SUPG"`
	PSPG      bool   `json:"PSPG"`
	CStab     bool   `json:"CStab"`
	VStab     string `json:"VStab"`
	Cross     string `json:"Cross"`
	Reynolds  string `json:"Reynolds"`
	TauType   string `json:"TauType"`
}

// ChannelParameters describe the Poiseuille channel driver problem
type ChannelParameters struct {
	Length float64 `json:"Length"`
	Height float64 `json:"Height"`
	Umax   float64 `json:"Umax"`
}

func NewFluidParameters() (ip *FluidParameters) {
	ip = &FluidParameters{
		Shape:         "quad4",
		Action:        "calc_fluid_systemmat_and_residual",
		ConvForm:      "convective",
		Linearisation: "Newton",
		TimeIntegration: TimeIntegration{
			AlphaM: 1, AlphaF: 1, Gamma: 1, Dt: 0.1,
		},
		Stabilization: StabilizationParameters{
			Subscales: "quasistatic",
			Transient: "no_transient",
			SUPG:      true,
			PSPG:      true,
			CStab:     true,
			VStab:     "no_vstab",
			Cross:     "no_cross",
			Reynolds:  "no_reynolds",
			TauType:   "franca_barrenechea_valentin_wall",
		},
		MaterialID: 1,
		Materials: map[int]materials.Definition{
			1: {Type: "newtonian", Density: 1, Params: materials.Params{"Viscosity": 1}},
		},
		Channel: ChannelParameters{Length: 4, Height: 1, Umax: 1},
	}
	return
}

// Parse overlays the YAML data on the receiver
func (ip *FluidParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ti := &ip.TimeIntegration
	if ti.RhoInf != 0 {
		if ti.RhoInf < 0 || ti.RhoInf > 1 {
			return fmt.Errorf("RhoInf must lie in [0,1], have %v", ti.RhoInf)
		}
		ti.AlphaM = 0.5 * (3 - ti.RhoInf) / (1 + ti.RhoInf)
		ti.AlphaF = 1 / (1 + ti.RhoInf)
		ti.Gamma = 0.5 + ti.AlphaM - ti.AlphaF
	}
	if ti.Dt <= 0 {
		err = fmt.Errorf("time step size must be positive, have %v", ti.Dt)
	}
	return
}

func (ip *FluidParameters) Print() {
	ti, st := ip.TimeIntegration, ip.Stabilization
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Shape\n", ip.Shape)
	fmt.Printf("[%s]\t= Action\n", ip.Action)
	fmt.Printf("[%s]\t\t= Convection Form\n", ip.ConvForm)
	fmt.Printf("[%s]\t\t\t= Linearisation\n", ip.Linearisation)
	fmt.Printf("%8.5f\t\t= AlphaM\n", ti.AlphaM)
	fmt.Printf("%8.5f\t\t= AlphaF\n", ti.AlphaF)
	fmt.Printf("%8.5f\t\t= Gamma\n", ti.Gamma)
	fmt.Printf("%8.5f\t\t= Dt\n", ti.Dt)
	fmt.Printf("%8.5f\t\t= Time\n", ti.Time)
	fmt.Printf("[%s]\t\t= Subscales\n", st.Subscales)
	fmt.Printf("[%s]\t\t= Transient\n", st.Transient)
	fmt.Printf("SUPG %v, PSPG %v, CStab %v\n", st.SUPG, st.PSPG, st.CStab)
	fmt.Printf("[%s] [%s] [%s]\t= VStab, Cross, Reynolds\n", st.VStab, st.Cross, st.Reynolds)
	fmt.Printf("[%s]\t= Tau\n", st.TauType)
	keys := make([]int, 0, len(ip.Materials))
	for k := range ip.Materials {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, key := range keys {
		fmt.Printf("Materials[%d] = %v\n", key, ip.Materials[key])
	}
	if len(ip.BodyForce) != 0 {
		fmt.Printf("%v\t\t= BodyForce\n", ip.BodyForce)
	}
}
