package db

// Unit is the measurement unit of an ingredient quantity.
type Unit string

const (
	UnitTL    Unit = "TL"
	UnitEL    Unit = "EL"
	UnitG     Unit = "g"
	UnitStk   Unit = "Stk"
	UnitKopf  Unit = "Kopf"
	UnitPrise Unit = "Prise"
	UnitML    Unit = "ml"
	UnitZweig Unit = "Zweig"
)

var units = []Unit{UnitTL, UnitEL, UnitG, UnitStk, UnitKopf, UnitPrise, UnitML, UnitZweig}

// Units returns all known units in declaration order.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

func (u Unit) Valid() bool {
	for _, known := range units {
		if u == known {
			return true
		}
	}
	return false
}
