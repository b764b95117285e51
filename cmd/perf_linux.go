//go:build linux

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

	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f under a hardware instruction counter and returns
// the error of f
func countInstructions(f func() error) (err error) {
	var (
		ran  bool
		fErr error
	)
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		fErr = f()
		return fErr
	})
	if !ran {
		fmt.Printf("perf counters unavailable: %v\n", err)
		return f()
	}
	if fErr != nil {
		return fErr
	}
	if err != nil {
		fmt.Printf("perf counters unavailable: %v\n", err)
		return nil
	}
	fmt.Printf("%d\t= cpu instructions, enabled %d ns, running %d ns\n",
		pv.Value, pv.TimeEnabled, pv.TimeRunning)
	return nil
}
