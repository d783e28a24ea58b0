package utils

import "testing"

const squareFence = `{"coordinates":[{"lat":0,"lng":0},{"lat":0,"lng":10},{"lat":10,"lng":10},{"lat":10,"lng":0}],"name":"depot"}`

func TestParseGeofence(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"empty means no fence", "", false},
		{"valid square", squareFence, false},
		{"malformed json", `{"coordinates":`, true},
		{"too few points", `{"coordinates":[{"lat":0,"lng":0},{"lat":1,"lng":1}]}`, true},
		{"latitude out of range", `{"coordinates":[{"lat":91,"lng":0},{"lat":0,"lng":1},{"lat":1,"lng":0}]}`, true},
		{"longitude out of range", `{"coordinates":[{"lat":0,"lng":181},{"lat":0,"lng":1},{"lat":1,"lng":0}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeofence(tt.json)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseGeofence() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeofenceContains(t *testing.T) {
	g, err := ParseGeofence(squareFence)
	if err != nil {
		t.Fatalf("ParseGeofence: %v", err)
	}

	if !g.Contains(Coordinate{Lat: 5, Lng: 5}) {
		t.Error("center point should be inside the fence")
	}
	if g.Contains(Coordinate{Lat: 20, Lng: 20}) {
		t.Error("far point should be outside the fence")
	}
}
