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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/vmmfluid/InputParameters"
	"github.com/notargets/vmmfluid/model_problems/Channel2D"
)

const exampleFile = `
########################################
Title: "Poiseuille channel"
Shape: quad9
Action: calc_fluid_systemmat_and_residual
ConvForm: convective            # or conservative
Linearisation: Newton           # no_linearisation, minimal, fixed_point_like
TimeIntegration:
  RhoInf: 0.5                   # replaces AlphaM, AlphaF, Gamma
  Dt: 0.1
  Time: 1.0
Stabilization:
  Subscales: time_dependent     # or quasistatic
  Transient: yes_transient
  SUPG: true
  PSPG: true
  CStab: true
  VStab: vstab_gls
  Cross: cross_complete
  Reynolds: reynolds_complete
  TauType: franca_barrenechea_valentin_wall
MaterialID: 1
Materials:
  1:
    Type: newtonian
    Density: 1.0
    Params:
      Viscosity: 0.01
Channel:
  Length: 4.0
  Height: 1.0
  Umax: 1.0
########################################
`

// ElementCmd evaluates one element of a coarse channel
var ElementCmd = &cobra.Command{
	Use:   "element",
	Short: "Evaluate a single fluid element and optionally check its tangent",
	Long: `Evaluates one element of a one cell Poiseuille channel and prints the
matrix and residual norms. With --check the element matrix is compared with
central differences of the residual.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("element called")
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		check, _ := cmd.Flags().GetBool("check")
		eps, _ := cmd.Flags().GetFloat64("epsilon")
		ip := processInput(inputFile)
		if err = RunElement(ip, check, eps); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processInput(inputFile string) (ip *InputParameters.FluidParameters) {
	var (
		err  error
		data []byte
	)
	ip = InputParameters.NewFluidParameters()
	if len(inputFile) == 0 {
		fmt.Printf("no input parameters file (-I, --inputConditionsFile), using defaults\n")
		fmt.Printf("Example File:%s\n", exampleFile)
		return
	}
	if data, err = os.ReadFile(inputFile); err != nil {
		panic(err)
	}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func RunElement(ip *InputParameters.FluidParameters, check bool, eps float64) (err error) {
	ip.Print()
	c := Channel2D.NewChannel(ip, 1, 1, 1, viper.GetBool("verbose"))
	K, F := c.EvaluateElement(0)
	fmt.Printf("%8.5e\t= max |K|\n", K.MaxAbs())
	fmt.Printf("%8.5e\t= |F|\n", F.Norm())
	if !check {
		return
	}
	maxErr, maxK := c.CheckElement(0, eps)
	fmt.Printf("%8.5e\t= max |K - K_fd|\n", maxErr)
	if maxErr > 1.e-5*maxK {
		err = fmt.Errorf("element matrix deviates from the residual derivative by %8.5e", maxErr)
	}
	return
}

func init() {
	rootCmd.AddCommand(ElementCmd)
	ElementCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Shape\n\t- Stabilization\n\t- Materials")
	ElementCmd.Flags().BoolP("check", "c", false, "compare the element matrix with central differences")
	ElementCmd.Flags().Float64P("epsilon", "e", 1.e-6, "finite difference step")
	ElementCmd.Flags().BoolP("verbose", "v", false, "print the element parameters")
	if err := viper.BindPFlag("verbose", ElementCmd.Flags().Lookup("verbose")); err != nil {
		panic(err)
	}
}
