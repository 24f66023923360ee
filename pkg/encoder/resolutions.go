package encoder

import (
	"sort"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
)

// Resolution is a named output size preset.
type Resolution struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Presets provides the supported resolution presets.
var Presets = map[string]Resolution{
	"480p":  {Name: "480p", Width: 720, Height: 480},
	"720p":  {Name: "720p", Width: 1280, Height: 720},
	"1080p": {Name: "1080p", Width: 1920, Height: 1080},
}

// PresetFor returns the resolution preset for the given name.
func PresetFor(name string) (Resolution, error) {
	if res, ok := Presets[name]; ok {
		return res, nil
	}
	return Resolution{}, errors.New(errors.ValidationError,
		errors.GetErrorMessage(errors.ErrUnknownResolution), name, errors.ErrUnknownResolution)
}

// PresetNames returns the sorted list of preset names.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
