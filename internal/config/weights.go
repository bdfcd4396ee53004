package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"match-service/internal/match/model"
)

// weightsFile mirrors model.Weights with pointers so a file may override
// only some entries.
type weightsFile struct {
	Manufacturer    *float64 `yaml:"manufacturer"`
	Family          *float64 `yaml:"family"`
	MixedModel      *float64 `yaml:"mixedModel"`
	SingleKindModel *float64 `yaml:"singleKindModel"`
	OtherModel      *float64 `yaml:"otherModel"`
	Threshold       *float64 `yaml:"threshold"`
}

// LoadWeights reads a YAML point table on top of the defaults.
// An empty path returns the defaults.
func LoadWeights(path string) (model.Weights, error) {
	w := model.DefaultWeights()
	if path == "" {
		return w, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights %s: %w", path, err)
	}
	var f weightsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return w, fmt.Errorf("parse weights %s: %w", path, err)
	}
	set(&w.Manufacturer, f.Manufacturer)
	set(&w.Family, f.Family)
	set(&w.MixedModel, f.MixedModel)
	set(&w.SingleKindModel, f.SingleKindModel)
	set(&w.OtherModel, f.OtherModel)
	set(&w.Threshold, f.Threshold)
	if err := ValidateWeights(w); err != nil {
		return model.DefaultWeights(), fmt.Errorf("weights %s: %w", path, err)
	}
	return w, nil
}

func set(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// ValidateWeights rejects negative entries; a zero weight just disables its rule.
func ValidateWeights(w model.Weights) error {
	for name, v := range map[string]float64{
		"manufacturer":    w.Manufacturer,
		"family":          w.Family,
		"mixedModel":      w.MixedModel,
		"singleKindModel": w.SingleKindModel,
		"otherModel":      w.OtherModel,
		"threshold":       w.Threshold,
	} {
		if v < 0 {
			return errors.New(name + " must not be negative")
		}
	}
	return nil
}
