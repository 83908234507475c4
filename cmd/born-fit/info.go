package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// simdFeatures are the instruction sets worth reporting for dense math.
var simdFeatures = []cpuid.FeatureID{
	cpuid.SSE2, cpuid.SSE4, cpuid.AVX, cpuid.AVX2, cpuid.FMA3,
	cpuid.AVX512F, cpuid.AVX512DQ, cpuid.ASIMD,
}

func printInfo(w io.Writer) {
	cpu := cpuid.CPU
	fmt.Fprintf(w, "go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "cpu:      %s\n", cpu.BrandName)
	fmt.Fprintf(w, "vendor:   %s\n", cpu.VendorString)
	fmt.Fprintf(w, "cores:    %d physical, %d logical\n", cpu.PhysicalCores, cpu.LogicalCores)
	fmt.Fprintf(w, "workers:  %d\n", runtime.NumCPU())

	var simd []string
	for _, f := range simdFeatures {
		if cpu.Supports(f) {
			simd = append(simd, f.String())
		}
	}
	if len(simd) == 0 {
		simd = append(simd, "none")
	}
	fmt.Fprintf(w, "simd:     %s\n", strings.Join(simd, " "))
}
