package config

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Compute device identifiers.
const (
	DeviceCUDA = "cuda"
	DeviceCPU  = "cpu"
)

// quantizationVRAMThresholdGB is the VRAM amount below which the pipeline
// should fall back to a quantized model.
const quantizationVRAMThresholdGB = 12

// DetectDevice returns the compute device the inference pipeline should use.
// The TEXT2VIDEO_DEVICE environment variable overrides detection; otherwise
// a CUDA-capable GPU is assumed when the NVIDIA driver tooling is present.
func DetectDevice() string {
	if override := os.Getenv("TEXT2VIDEO_DEVICE"); override != "" {
		return override
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return DeviceCUDA
	}
	return DeviceCPU
}

// AvailableVRAMGB reports the total VRAM of the first GPU in gigabytes, or 0
// when no GPU is available or the query fails.
func AvailableVRAMGB() int {
	if DetectDevice() != DeviceCUDA {
		return 0
	}
	out, err := exec.Command("nvidia-smi",
		"--query-gpu=memory.total", "--format=csv,noheader,nounits").Output()
	if err != nil {
		return 0
	}
	// First line is the first GPU, value in MiB.
	line := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	mib, err := strconv.Atoi(line)
	if err != nil {
		return 0
	}
	return mib / 1024
}

// ShouldUseQuantization reports whether the pipeline should apply
// quantization given the available VRAM.
func ShouldUseQuantization() bool {
	vram := AvailableVRAMGB()
	return vram > 0 && vram < quantizationVRAMThresholdGB
}
