package dynamo

import "strings"

// EntityMode selects which update rule drives the fields each tick.
type EntityMode int

const (
	Wave EntityMode = iota
	Particle
	HiggsDecay
	PhotonTrail
	EntangledPair
)

var entityNames = []string{"wave", "particle", "higgs_decay", "photon_trail", "entangled_pair"}

var entityLabels = []string{"Wave", "Particle", "Higgs Decay", "Photon Trail", "Entangled Pair"}

// EntityModes lists every entity mode in menu order.
func EntityModes() []EntityMode {
	return []EntityMode{Wave, Particle, HiggsDecay, PhotonTrail, EntangledPair}
}

func (m EntityMode) Valid() bool { return m >= Wave && m <= EntangledPair }

func (m EntityMode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return entityNames[m]
}

// Label is the human readable name shown by the frame drivers.
func (m EntityMode) Label() string {
	if !m.Valid() {
		return "Unknown"
	}
	return entityLabels[m]
}

// ParseEntityMode accepts the snake_case name or the display label.
func ParseEntityMode(s string) (EntityMode, error) {
	key := normalize(s)
	for i, name := range entityNames {
		if key == name || key == normalize(entityLabels[i]) {
			return EntityMode(i), nil
		}
	}
	return 0, &ModeError{Kind: "entity mode", Value: s}
}

func (m EntityMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &ModeError{Kind: "entity mode", Value: m.String()}
	}
	return []byte(m.String()), nil
}

func (m *EntityMode) UnmarshalText(b []byte) error {
	v, err := ParseEntityMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ViewMode selects which field is presented to the renderer.
type ViewMode int

const (
	Tension ViewMode = iota
	Curvature
	Coherence
)

var viewNames = []string{"tension", "curvature", "coherence"}

func ViewModes() []ViewMode { return []ViewMode{Tension, Curvature, Coherence} }

func (v ViewMode) Valid() bool { return v >= Tension && v <= Coherence }

func (v ViewMode) String() string {
	if !v.Valid() {
		return "unknown"
	}
	return viewNames[v]
}

func (v ViewMode) Label() string {
	if !v.Valid() {
		return "Unknown"
	}
	return strings.ToUpper(viewNames[v][:1]) + viewNames[v][1:]
}

// FieldName is the symbol of the field the view displays.
func (v ViewMode) FieldName() string {
	switch v {
	case Tension:
		return "psi"
	case Curvature:
		return "K"
	case Coherence:
		return "Phi"
	}
	return "?"
}

// Next cycles tension -> curvature -> coherence -> tension.
func (v ViewMode) Next() ViewMode { return (v + 1) % ViewMode(len(viewNames)) }

func ParseViewMode(s string) (ViewMode, error) {
	key := normalize(s)
	for i, name := range viewNames {
		if key == name {
			return ViewMode(i), nil
		}
	}
	return 0, &ModeError{Kind: "view mode", Value: s}
}

func (v ViewMode) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, &ModeError{Kind: "view mode", Value: v.String()}
	}
	return []byte(v.String()), nil
}

func (v *ViewMode) UnmarshalText(b []byte) error {
	m, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*v = m
	return nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}
