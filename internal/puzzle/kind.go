// Package puzzle implements the gravity puzzle simulation: typed objects on a
// rectangular grid that all slide in the chosen direction until nothing can move,
// with interactions resolved each time a slide settles, and an undo history.
//
// The package is pure logic. Presentation layers observe it through the Effects
// interface and read-only object views.
package puzzle

// Kind identifies the type of a puzzle object.
type Kind int

const (
	KindPlayer Kind = iota
	KindCrate
	KindHuman
	KindGem
	KindBoulder
	KindRubble
	KindFire

	kindCount
)

// Capabilities are the fixed per-kind flags.
type Capabilities struct {
	// Immovable objects never slide.
	Immovable bool
	// Passable objects never block occupancy checks.
	Passable bool
	// Smashable objects die when a moving object settles on their cell.
	Smashable bool
	// Crushes lists the kinds this kind may slide onto. Smashable victims are
	// only entered with momentum; see Object.canEnter.
	Crushes []Kind
}

var capabilities = [kindCount]Capabilities{
	KindPlayer:  {Smashable: true},
	KindCrate:   {Crushes: []Kind{KindPlayer, KindHuman}},
	KindHuman:   {Smashable: true},
	KindGem:     {Immovable: true, Passable: true},
	KindBoulder: {Crushes: []Kind{KindPlayer, KindHuman, KindCrate, KindRubble}},
	KindRubble:  {Immovable: true},
	KindFire:    {Immovable: true, Passable: true},
}

// Caps returns the capability flags of the kind.
func (k Kind) Caps() Capabilities {
	if !k.Valid() {
		return Capabilities{Immovable: true}
	}
	return capabilities[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= KindPlayer && k < kindCount
}

// CanCrush reports whether an object of kind k may slide onto an object of kind victim.
func (k Kind) CanCrush(victim Kind) bool {
	for _, v := range k.Caps().Crushes {
		if v == victim {
			return true
		}
	}
	return false
}

// Sentient reports whether losing an object of this kind fails the level.
func (k Kind) Sentient() bool {
	return k == KindPlayer || k == KindHuman
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCrate:
		return "crate"
	case KindHuman:
		return "human"
	case KindGem:
		return "gem"
	case KindBoulder:
		return "boulder"
	case KindRubble:
		return "rubble"
	case KindFire:
		return "fire"
	default:
		return "unknown"
	}
}

// Kinds returns all defined kinds in tag order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount)
	for k := range kindCount {
		ks = append(ks, k)
	}
	return ks
}
