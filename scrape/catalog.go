package scrape

// Item catalogs keyed by the game's type code. Codes missing here are
// dropped by the translators.
var (
	Ships = map[string]string{
		"202": "Small Cargo",
		"203": "Large Cargo",
		"204": "Light Fighter",
		"205": "Heavy Fighter",
		"206": "Cruiser",
		"207": "Battleship",
		"208": "Colony Ship",
		"209": "Recycler",
		"210": "Espionage Probe",
		"211": "Bomber",
		"212": "Solar Satellite",
		"213": "Destroyer",
		"214": "Deathstar",
		"215": "Battlecruiser",
	}

	Defenses = map[string]string{
		"401": "Rocket Launcher",
		"402": "Light Laser",
		"403": "Heavy Laser",
		"404": "Gauss Cannon",
		"405": "Ion Cannon",
		"406": "Plasma Turret",
		"407": "Small Shield Dome",
		"408": "Large Shield Dome",
	}

	Research = map[string]string{
		"106": "Espionage Technology",
		"108": "Computer Technology",
		"109": "Weapon Technology",
		"110": "Shield Technology",
		"111": "Armour Technology",
		"113": "Energy Technology",
		"114": "Hyperspace Technology",
		"115": "Combustion Drive",
		"117": "Impulse Drive",
		"118": "Hyperspace Drive",
		"120": "Laser Technology",
		"121": "Ion Technology",
		"122": "Plasma Technology",
		"123": "Intergalactic Research Network",
		"124": "Astrophysics",
		"199": "Graviton Technology",
	}
)

// Ship codes used by fleet orders.
const (
	SmallCargo     = "202"
	LargeCargo     = "203"
	LightFighter   = "204"
	EspionageProbe = "210"
)
