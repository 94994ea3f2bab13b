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
//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	"github.com/notargets/tetmodel/logger"
	"go.uber.org/zap"
)

// measureInstructions runs f under a hardware instruction counter. When the counter cannot be
// opened, f runs unmeasured.
func measureInstructions(f func() error) error {
	var (
		ran  bool
		ferr error
	)
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		ferr = f()
		return ferr
	})
	switch {
	case ran && ferr != nil:
		return ferr
	case err != nil && !ran:
		logger.Warn("CPU instruction counter unavailable", zap.Error(err))
		return f()
	case err != nil:
		logger.Warn("CPU instruction counter failed", zap.Error(err))
		return nil
	}
	logger.Info("CPU instructions",
		zap.Uint64("instructions", pv.Value),
		zap.Uint64("timeEnabled", pv.TimeEnabled),
		zap.Uint64("timeRunning", pv.TimeRunning))
	return nil
}
