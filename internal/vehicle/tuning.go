package vehicle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gain and limit of the control pipeline. All vehicles
// share one tuning; the controller is shape-agnostic, so these are global
// handling parameters, not per-vehicle data.
type Tuning struct {
	// Speed and drive
	MaxSpeed           float32 `yaml:"max_speed"`
	ForwardSpeedFactor float32 `yaml:"forward_speed_factor"`
	AirborneDrive      float32 `yaml:"airborne_drive"`

	// Steering
	TurnSpeedFactor  float32 `yaml:"turn_speed_factor"`
	MaxYawSpeed      float32 `yaml:"max_yaw_speed"` // rad/s
	SteeringResponse float32 `yaml:"steering_response"`
	AirborneSteering float32 `yaml:"airborne_steering"`

	// Grip and downforce
	GripStrength         float32 `yaml:"grip_strength"`
	BaseDownforce        float32 `yaml:"base_downforce"`
	DownforceSpeedFactor float32 `yaml:"downforce_speed_factor"`
	GripMin              float32 `yaml:"grip_min"`
	GripMax              float32 `yaml:"grip_max"`
	GripAirborne         float32 `yaml:"grip_airborne"`

	// Stabilization and recovery
	UprightGain        float32 `yaml:"upright_gain"`
	AngularDampingRate float32 `yaml:"angular_damping_rate"`
	RecoveryGain       float32 `yaml:"recovery_gain"`
	InvertedThreshold  float32 `yaml:"inverted_threshold"`
	AirborneAngularCap float32 `yaml:"airborne_angular_cap"` // rad/s
}

// DefaultTuning returns the stock arcade handling parameters.
func DefaultTuning() *Tuning {
	return &Tuning{
		MaxSpeed:           15,
		ForwardSpeedFactor: 20,
		AirborneDrive:      0.15,

		TurnSpeedFactor:  2.5,
		MaxYawSpeed:      2.0,
		SteeringResponse: 6,
		AirborneSteering: 0.3,

		GripStrength:         8,
		BaseDownforce:        0,
		DownforceSpeedFactor: 1.2,
		GripMin:              0.6,
		GripMax:              1.2,
		GripAirborne:         0.2,

		UprightGain:        4,
		AngularDampingRate: 2,
		RecoveryGain:       6,
		InvertedThreshold:  0.2,
		AirborneAngularCap: 2.5,
	}
}

// LoadTuning reads a YAML overlay on top of the defaults, so a file only
// needs to name the values it changes.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values that would break pipeline invariants.
func (t *Tuning) Validate() error {
	if t.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed must be positive, got %v", t.MaxSpeed)
	}
	if t.AirborneDrive >= 1 {
		return fmt.Errorf("airborne_drive must be below 1, got %v", t.AirborneDrive)
	}
	if t.GripMin > t.GripMax {
		return fmt.Errorf("grip_min %v exceeds grip_max %v", t.GripMin, t.GripMax)
	}
	if t.AirborneAngularCap <= 0 {
		return fmt.Errorf("airborne_angular_cap must be positive, got %v", t.AirborneAngularCap)
	}
	return nil
}
