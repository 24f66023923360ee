package generator

import "sort"

// ModelConfig describes a supported pretrained text-to-video model.
type ModelConfig struct {
	// Name is the short identifier used on the command line.
	Name string
	// RepoID is the upstream model repository identifier.
	RepoID string
	// MinVRAMGB is the minimum GPU memory the model needs to run unquantized.
	MinVRAMGB int
	// DefaultWidth and DefaultHeight are the model's native output size.
	DefaultWidth  int
	DefaultHeight int
	// MaxFrames is the longest clip the model generates in one pass.
	MaxFrames int
	// FPS is the model's native frame rate.
	FPS int
}

// DefaultModel is used when no model is specified or the name is unknown.
const DefaultModel = "cogvideox-2b"

var models = map[string]ModelConfig{
	"cogvideox-2b": {
		Name:          "cogvideox-2b",
		RepoID:        "THUDM/CogVideoX-2b",
		MinVRAMGB:     8,
		DefaultWidth:  720,
		DefaultHeight: 480,
		MaxFrames:     49,
		FPS:           8,
	},
	"cogvideox-5b": {
		Name:          "cogvideox-5b",
		RepoID:        "THUDM/CogVideoX-5b",
		MinVRAMGB:     24,
		DefaultWidth:  1280,
		DefaultHeight: 720,
		MaxFrames:     49,
		FPS:           8,
	},
}

// ModelFor returns the configuration for the named model, falling back to
// the default model when the name is empty or unknown.
func ModelFor(name string) ModelConfig {
	if cfg, ok := models[name]; ok {
		return cfg
	}
	return models[DefaultModel]
}

// KnownModel reports whether name is a registered model.
func KnownModel(name string) bool {
	_, ok := models[name]
	return ok
}

// ModelNames returns the sorted list of registered model names.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
