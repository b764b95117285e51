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
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/vmmfluid/InputParameters"
	"github.com/notargets/vmmfluid/model_problems/Channel2D"
	"github.com/notargets/vmmfluid/utils"
)

type ChannelModel struct {
	ICFile         string
	Nx, Ny         int
	ParallelDegree int
	Profile        string
	Perf           bool
	Steps          int
}

// ChannelCmd assembles the Poiseuille channel
var ChannelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Assemble a Poiseuille channel in parallel",
	Long: `Assembles the fluid element over a structured channel initialized with
the exact Poiseuille solution and reports the interior residual norms of the
momentum and continuity equations`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("channel called")
		cm := &ChannelModel{
			ICFile:         viper.GetString("channel.inputConditionsFile"),
			Nx:             viper.GetInt("channel.nx"),
			Ny:             viper.GetInt("channel.ny"),
			ParallelDegree: viper.GetInt("channel.parallelDegree"),
			Profile:        viper.GetString("channel.profile"),
			Perf:           viper.GetBool("channel.perf"),
			Steps:          viper.GetInt("channel.steps"),
		}
		switch cm.Profile {
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		case "":
		default:
			panic(fmt.Errorf("unknown profile type %s, use cpu or mem", cm.Profile))
		}
		ip := processInput(cm.ICFile)
		if _, _, err := RunChannel(cm, ip); err != nil {
			panic(err)
		}
	},
}

// checkResidual rejects a global residual carrying NaN entries
func checkResidual(R utils.Vector) (err error) {
	if utils.IsNan(R) {
		err = fmt.Errorf("NaN found in the global residual")
	}
	return
}

func RunChannel(cm *ChannelModel, ip *InputParameters.FluidParameters) (momentum, continuity float64, err error) {
	c := Channel2D.NewChannel(ip, cm.Nx, cm.Ny, cm.ParallelDegree, true)
	for step := 0; step < cm.Steps; step++ {
		start := time.Now()
		work := func() error {
			A, R := c.Assemble()
			momentum, continuity = c.ResidualNorms(R)
			fmt.Printf("step %d, nnz %d, |R| %8.5e\n", step, A.NNZ(), R.Norm())
			return checkResidual(R)
		}
		if cm.Perf {
			err = countInstructions(work)
		} else {
			err = work()
		}
		if err != nil {
			err = fmt.Errorf("step %d: %w", step, err)
			return
		}
		fmt.Printf("%8.5e\t= interior momentum residual\n", momentum)
		fmt.Printf("%8.5e\t= interior continuity residual\n", continuity)
		fmt.Printf("assembly time %v, %s\n", time.Since(start), utils.GetMemUsage())
		c.TimeUpdate()
	}
	return
}

func init() {
	rootCmd.AddCommand(ChannelCmd)
	flags := ChannelCmd.Flags()
	flags.StringP("inputConditionsFile", "I", "", "YAML file for input parameters, see the element command")
	flags.IntP("nx", "x", 8, "number of cells along the channel")
	flags.IntP("ny", "y", 4, "number of cells across the channel")
	flags.IntP("parallelDegree", "p", 0, "number of go routines, 0 uses all cpus")
	flags.String("profile", "", "write a cpu or mem profile")
	flags.Bool("perf", false, "count cpu instructions of each assembly")
	flags.IntP("steps", "s", 1, "number of assemblies, subscale history is shifted in between")
	for _, name := range []string{"inputConditionsFile", "nx", "ny", "parallelDegree", "profile", "perf", "steps"} {
		if err := viper.BindPFlag("channel."+name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
