package fire

import (
	"fmt"
	"strings"
)

// Variant selects a transition rule.
type Variant uint8

const (
	VariantSIR Variant = iota
	VariantDiffusion
	VariantVegetation
)

var variantNames = [...]string{"sir", "diffusion", "vegetation"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant maps a variant name to its Variant.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown variant %q (want sir, diffusion or vegetation)", ErrInvalidParameter, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Params is the full parameter set for one configuration. Only the fields of
// the selected variant are consulted.
type Params struct {
	Variant        Variant
	Beta           float64
	Gamma          float64
	DiffusionRate  float64
	BaseProbSpread float64
	Wind           Wind
}

// Rule builds and validates the configured transition rule. With strictWind
// set, wind directions that are not unit neighbour offsets are rejected.
func (p Params) Rule(strictWind bool) (Rule, error) {
	var r Rule
	switch p.Variant {
	case VariantSIR:
		r = SIR{Beta: p.Beta, Gamma: p.Gamma}
	case VariantDiffusion:
		r = Diffusion{Rate: p.DiffusionRate, Wind: p.Wind}
	case VariantVegetation:
		r = VegetationDiffusion{BaseProb: p.BaseProbSpread, Wind: p.Wind}
	default:
		return nil, fmt.Errorf("%w: unknown variant %d", ErrInvalidParameter, p.Variant)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if p.Variant != VariantSIR && strictWind {
		if err := p.Wind.Validate(true); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NeedsVegetation reports whether the variant reads a vegetation field.
func (p Params) NeedsVegetation() bool { return p.Variant == VariantVegetation }

// UsesWind reports whether the variant applies a wind bonus.
func (p Params) UsesWind() bool { return p.Variant != VariantSIR }

// Label is a short human readable key for reports, e.g. "β=0.3 γ=0.1".
func (p Params) Label() string {
	switch p.Variant {
	case VariantSIR:
		return fmt.Sprintf("β=%g γ=%g", p.Beta, p.Gamma)
	case VariantDiffusion:
		return fmt.Sprintf("d=%g wind=%s", p.DiffusionRate, p.Wind)
	case VariantVegetation:
		return fmt.Sprintf("p=%g wind=%s", p.BaseProbSpread, p.Wind)
	default:
		return p.Variant.String()
	}
}

// Propagation returns the primary propagation parameter of the variant: β,
// the diffusion rate or the base spread probability.
func (p Params) Propagation() float64 {
	switch p.Variant {
	case VariantDiffusion:
		return p.DiffusionRate
	case VariantVegetation:
		return p.BaseProbSpread
	default:
		return p.Beta
	}
}
