package gravity

// Config holds the controller tuning read at start-up.
type Config struct {
	LocomotionSpeed float32 // translational speed for unit move input
	LookSpeed       float32 // radians per unit of look input
	AngleThreshold  float32 // degrees in [0, 180] between surface up and current up before gravity flips
	Pull            float32 // acceleration along the gravity direction, units/s²
}

func DefaultConfig() Config {
	return Config{
		LocomotionSpeed: 50,
		LookSpeed:       0.04,
		AngleThreshold:  50,
		Pull:            600,
	}
}
