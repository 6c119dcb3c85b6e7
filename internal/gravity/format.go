package gravity

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func formatVector(v rl.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
