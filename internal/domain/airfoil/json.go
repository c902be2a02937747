package airfoil

import "encoding/json"

type airfoilJSON struct {
	Name   string  `json:"name"`
	Format Format  `json:"format"`
	Upper  []Point `json:"upper_points"`
	Lower  []Point `json:"lower_points"`
	Points []Point `json:"points"`
}

// MarshalJSON encodes the airfoil with all three point sequences.
// Empty sequences encode as [] rather than null.
func (a Airfoil) MarshalJSON() ([]byte, error) {
	return json.Marshal(airfoilJSON{
		Name:   a.name,
		Format: a.format,
		Upper:  nonNil(a.upper),
		Lower:  nonNil(a.lower),
		Points: nonNil(a.points),
	})
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (a *Airfoil) UnmarshalJSON(b []byte) error {
	var aj airfoilJSON
	if err := json.Unmarshal(b, &aj); err != nil {
		return err
	}
	*a = New(aj.Name, aj.Format, aj.Upper, aj.Lower, aj.Points)
	return nil
}

func nonNil(pts []Point) []Point {
	if pts == nil {
		return []Point{}
	}
	return pts
}
