package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadWeights reads scoring weights from a YAML file. Missing fields fall
// back to the defaults; a missing file is not an error so deployments can
// run without a weights file at all.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return w, fmt.Errorf("reading weights file: %w", err)
	}

	var file struct {
		Diversity    *float64 `yaml:"diversity"`
		Voice        *float64 `yaml:"voice"`
		Targeting    *float64 `yaml:"targeting"`
		Completeness *float64 `yaml:"completeness"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return w, fmt.Errorf("parsing weights file: %w", err)
	}

	if file.Diversity != nil {
		w.Diversity = *file.Diversity
	}
	if file.Voice != nil {
		w.Voice = *file.Voice
	}
	if file.Targeting != nil {
		w.Targeting = *file.Targeting
	}
	if file.Completeness != nil {
		w.Completeness = *file.Completeness
	}

	for name, v := range map[string]float64{
		"diversity":    w.Diversity,
		"voice":        w.Voice,
		"targeting":    w.Targeting,
		"completeness": w.Completeness,
	} {
		if v < 0 {
			return w, fmt.Errorf("weight %s must not be negative, got %v", name, v)
		}
	}

	return w, nil
}
