package estimator

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/skycast/internal/features"
)

// Artifact kinds
const (
	KindRegressor  = "regressor"
	KindClassifier = "classifier"
)

// ErrWrongKind is returned when a model is asked for an output it was not
// trained to produce
var ErrWrongKind = errors.New("wrong model kind")

// LinearModel is a linear (regressor) or logistic (classifier) model read
// from a YAML artifact. Numeric fields are multiplied by their weight;
// categorical fields add the weight of their value. Fields absent from the
// vector, and category values absent from the artifact, add nothing.
type LinearModel struct {
	Name        string                        `yaml:"name"`
	Kind        string                        `yaml:"kind"`
	Intercept   float64                       `yaml:"intercept"`
	Numeric     map[string]float64            `yaml:"numeric"`
	Categorical map[string]map[string]float64 `yaml:"categorical"`
}

// ParseLinearModel decodes and checks an artifact
func ParseLinearModel(data []byte) (*LinearModel, error) {
	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	switch m.Kind {
	case KindRegressor, KindClassifier:
	default:
		return nil, fmt.Errorf("model %q: unknown kind %q", m.Name, m.Kind)
	}

	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return nil, fmt.Errorf("model %q: intercept is not finite", m.Name)
	}

	return &m, nil
}

// LoadLinearModel reads an artifact from disk
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	m, err := ParseLinearModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// score sums contributions in vector order so the result does not depend on
// map iteration
func (m *LinearModel) score(fv features.FeatureVector) (float64, error) {
	z := m.Intercept
	var err error

	fv.Each(func(name string, v features.Value) {
		if err != nil {
			return
		}
		switch v.Kind {
		case features.Numeric:
			if _, isCat := m.Categorical[name]; isCat {
				err = fmt.Errorf("model %q: field %s is numeric, want categorical", m.Name, name)
				return
			}
			z += m.Numeric[name] * v.Number
		case features.Categorical:
			if _, isNum := m.Numeric[name]; isNum {
				err = fmt.Errorf("model %q: field %s is categorical, want numeric", m.Name, name)
				return
			}
			z += m.Categorical[name][v.Category]
		}
	})
	if err != nil {
		return 0, err
	}

	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, fmt.Errorf("model %q: score is not finite", m.Name)
	}
	return z, nil
}

// PredictDelay implements Regressor
func (m *LinearModel) PredictDelay(fv features.FeatureVector) (float64, error) {
	if m.Kind != KindRegressor {
		return 0, fmt.Errorf("model %q is a %s: %w", m.Name, m.Kind, ErrWrongKind)
	}
	return m.score(fv)
}

// PredictProbability implements Classifier
func (m *LinearModel) PredictProbability(fv features.FeatureVector) (float64, error) {
	if m.Kind != KindClassifier {
		return 0, fmt.Errorf("model %q is a %s: %w", m.Name, m.Kind, ErrWrongKind)
	}
	z, err := m.score(fv)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-z)), nil
}
