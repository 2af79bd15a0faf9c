package config

import "github.com/orbitlab/orbitsim/internal/body"

// Presets are built-in system descriptions. Masses are
// coefficient * 10^power kg, radii in km, positions in AU, velocities
// in AU/day.
var Presets = map[string][]body.Record{
	"inner_solar": {
		{Coeff: 1.989, Power: 30, Radius: 696000, Colour: [3]int{255, 220, 60}, Name: "Sun"},
		{Coeff: 3.301, Power: 23, Radius: 2440, Pos: [2]float64{0.387, 0}, Vel: [2]float64{0, 0.02735}, Colour: [3]int{170, 150, 140}, Name: "Mercury"},
		{Coeff: 4.867, Power: 24, Radius: 6052, Pos: [2]float64{0.723, 0}, Vel: [2]float64{0, 0.02022}, Colour: [3]int{230, 180, 90}, Name: "Venus"},
		{Coeff: 5.972, Power: 24, Radius: 6371, Pos: [2]float64{1.0, 0}, Vel: [2]float64{0, 0.01720}, Colour: [3]int{70, 130, 255}, Name: "Earth"},
		{Coeff: 6.417, Power: 23, Radius: 3390, Pos: [2]float64{1.524, 0}, Vel: [2]float64{0, 0.01390}, Colour: [3]int{220, 90, 50}, Name: "Mars"},
	},
	"outer_solar": {
		{Coeff: 1.989, Power: 30, Radius: 696000, Colour: [3]int{255, 220, 60}, Name: "Sun"},
		{Coeff: 1.898, Power: 27, Radius: 69911, Pos: [2]float64{5.203, 0}, Vel: [2]float64{0, 0.00755}, Colour: [3]int{215, 170, 120}, Name: "Jupiter"},
		{Coeff: 5.683, Power: 26, Radius: 58232, Pos: [2]float64{9.537, 0}, Vel: [2]float64{0, 0.00560}, Colour: [3]int{230, 205, 145}, Name: "Saturn"},
		{Coeff: 8.681, Power: 25, Radius: 25362, Pos: [2]float64{19.19, 0}, Vel: [2]float64{0, 0.00393}, Colour: [3]int{160, 215, 230}, Name: "Uranus"},
		{Coeff: 1.024, Power: 26, Radius: 24622, Pos: [2]float64{30.07, 0}, Vel: [2]float64{0, 0.00314}, Colour: [3]int{80, 110, 230}, Name: "Neptune"},
	},
	"solar": {
		{Coeff: 1.989, Power: 30, Radius: 696000, Colour: [3]int{255, 220, 60}, Name: "Sun"},
		{Coeff: 3.301, Power: 23, Radius: 2440, Pos: [2]float64{0.387, 0}, Vel: [2]float64{0, 0.02735}, Colour: [3]int{170, 150, 140}, Name: "Mercury"},
		{Coeff: 4.867, Power: 24, Radius: 6052, Pos: [2]float64{0.723, 0}, Vel: [2]float64{0, 0.02022}, Colour: [3]int{230, 180, 90}, Name: "Venus"},
		{Coeff: 5.972, Power: 24, Radius: 6371, Pos: [2]float64{1.0, 0}, Vel: [2]float64{0, 0.01720}, Colour: [3]int{70, 130, 255}, Name: "Earth"},
		{Coeff: 6.417, Power: 23, Radius: 3390, Pos: [2]float64{1.524, 0}, Vel: [2]float64{0, 0.01390}, Colour: [3]int{220, 90, 50}, Name: "Mars"},
		{Coeff: 1.898, Power: 27, Radius: 69911, Pos: [2]float64{5.203, 0}, Vel: [2]float64{0, 0.00755}, Colour: [3]int{215, 170, 120}, Name: "Jupiter"},
		{Coeff: 5.683, Power: 26, Radius: 58232, Pos: [2]float64{9.537, 0}, Vel: [2]float64{0, 0.00560}, Colour: [3]int{230, 205, 145}, Name: "Saturn"},
		{Coeff: 8.681, Power: 25, Radius: 25362, Pos: [2]float64{19.19, 0}, Vel: [2]float64{0, 0.00393}, Colour: [3]int{160, 215, 230}, Name: "Uranus"},
		{Coeff: 1.024, Power: 26, Radius: 24622, Pos: [2]float64{30.07, 0}, Vel: [2]float64{0, 0.00314}, Colour: [3]int{80, 110, 230}, Name: "Neptune"},
	},
	"binary": {
		{Coeff: 1.5, Power: 30, Radius: 500000, Pos: [2]float64{-1, 0}, Vel: [2]float64{0, -0.004}, Colour: [3]int{255, 140, 80}, Name: "Castor"},
		{Coeff: 1.5, Power: 30, Radius: 500000, Pos: [2]float64{1, 0}, Vel: [2]float64{0, 0.004}, Colour: [3]int{120, 180, 255}, Name: "Pollux"},
	},
}

// GetPreset returns the records for a named preset, nil if unknown.
func GetPreset(name string) []body.Record {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
