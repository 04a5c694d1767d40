package domain

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// DefaultStrategyName is the strategy that needs no parameters.
const DefaultStrategyName = "default"

type Toggle struct {
	Name        string     `json:"name" yaml:"name" mapstructure:"name"`
	Description string     `json:"description" yaml:"description" mapstructure:"description"`
	Type        string     `json:"type" yaml:"type" mapstructure:"type"`
	Stale       bool       `json:"stale" yaml:"stale" mapstructure:"stale"`
	Enabled     bool       `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Variants    []Variant  `json:"variants" yaml:"variants" mapstructure:"variants"`
	Strategies  []Strategy `json:"strategies" yaml:"strategies" mapstructure:"strategies"`
}

type Strategy struct {
	Name        string            `json:"name" yaml:"name" mapstructure:"name"`
	Parameters  map[string]string `json:"parameters" yaml:"parameters" mapstructure:"parameters"`
	Constraints []Constraint      `json:"constraints" yaml:"constraints" mapstructure:"constraints"`
}

type Constraint struct {
	ContextName string   `json:"contextName" yaml:"contextName" mapstructure:"contextName"`
	Operator    string   `json:"operator" yaml:"operator" mapstructure:"operator"`
	Values      []string `json:"values" yaml:"values" mapstructure:"values"`
}

type Variant struct {
	Name       string            `json:"name" yaml:"name" mapstructure:"name"`
	Weight     int               `json:"weight" yaml:"weight" mapstructure:"weight"`
	WeightType string            `json:"weightType,omitempty" yaml:"weightType,omitempty" mapstructure:"weightType"`
	Stickiness string            `json:"stickiness,omitempty" yaml:"stickiness,omitempty" mapstructure:"stickiness"`
	Payload    *VariantPayload   `json:"payload,omitempty" yaml:"payload,omitempty" mapstructure:"payload"`
	Overrides  []VariantOverride `json:"overrides,omitempty" yaml:"overrides,omitempty" mapstructure:"overrides"`
}

type VariantPayload struct {
	Type  string `json:"type" yaml:"type" mapstructure:"type"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

type VariantOverride struct {
	ContextName string   `json:"contextName" yaml:"contextName" mapstructure:"contextName"`
	Values      []string `json:"values" yaml:"values" mapstructure:"values"`
}

func (t Toggle) Kind() ResourceKind { return KindToggle }
func (t Toggle) Key() string        { return t.Name }
func (t Toggle) IsExempt() bool     { return false }

// Normalize projects the toggle onto the compared fields and sorts the
// strategies into a total order so remote insertion order never shows as a
// difference.
func (t Toggle) Normalize(opts NormalizeOptions) Resource {
	out := Toggle{
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type,
		Stale:       t.Stale,
		Enabled:     t.Enabled,
		Variants:    make([]Variant, 0, len(t.Variants)),
		Strategies:  make([]Strategy, 0, len(t.Strategies)),
	}
	for _, v := range t.Variants {
		out.Variants = append(out.Variants, v.clone())
	}
	for _, s := range t.Strategies {
		out.Strategies = append(out.Strategies, s.normalize(opts))
	}
	SortStrategies(out.Strategies)
	return out
}

func (s Strategy) normalize(opts NormalizeOptions) Strategy {
	out := Strategy{
		Name:        s.Name,
		Parameters:  make(map[string]string, len(s.Parameters)),
		Constraints: []Constraint{},
	}
	for k, v := range s.Parameters {
		out.Parameters[k] = v
	}
	if opts.StripConstraints {
		return out
	}
	for _, c := range s.Constraints {
		out.Constraints = append(out.Constraints, Constraint{
			ContextName: c.ContextName,
			Operator:    c.Operator,
			Values:      append([]string{}, c.Values...),
		})
	}
	return out
}

func (v Variant) clone() Variant {
	out := v
	if v.Payload != nil {
		p := *v.Payload
		out.Payload = &p
	}
	if v.Overrides != nil {
		out.Overrides = make([]VariantOverride, 0, len(v.Overrides))
		for _, o := range v.Overrides {
			out.Overrides = append(out.Overrides, VariantOverride{
				ContextName: o.ContextName,
				Values:      append([]string{}, o.Values...),
			})
		}
	}
	return out
}

// SortStrategies orders strategies by name descending, then by serialized
// parameters descending.
func SortStrategies(strategies []Strategy) {
	keys := make([]string, len(strategies))
	for i, s := range strategies {
		keys[i] = serializeParameters(s.Parameters)
	}
	sort.Stable(strategyOrder{strategies: strategies, params: keys})
}

type strategyOrder struct {
	strategies []Strategy
	params     []string
}

func (o strategyOrder) Len() int { return len(o.strategies) }

func (o strategyOrder) Less(i, j int) bool {
	if o.strategies[i].Name != o.strategies[j].Name {
		return o.strategies[i].Name > o.strategies[j].Name
	}
	return o.params[i] > o.params[j]
}

func (o strategyOrder) Swap(i, j int) {
	o.strategies[i], o.strategies[j] = o.strategies[j], o.strategies[i]
	o.params[i], o.params[j] = o.params[j], o.params[i]
}

// serializeParameters renders parameters as JSON with sorted keys.
func serializeParameters(params map[string]string) string {
	if len(params) == 0 {
		return "{}"
	}
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(params)
	if err != nil {
		return ""
	}
	return string(raw)
}
