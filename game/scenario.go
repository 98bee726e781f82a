package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
)

// SpawnDemoScenario populates the standard demo encounter: the player at
// the origin, a wing of each enemy subtype, one boss of each type, and a
// small asteroid belt to mine. Both the headless driver and the balance
// tuner run this layout.
func SpawnDemoScenario(g *Game) error {
	if _, err := g.SpawnPlayer(r3.Vec{}); err != nil {
		return err
	}

	wings := []struct {
		subtype components.Subtype
		angle   float64
	}{
		{components.SubtypeStandard, 0},
		{components.SubtypeHeavy, 2 * math.Pi / 3},
		{components.SubtypeSwift, 4 * math.Pi / 3},
	}
	for _, w := range wings {
		base := r3.Vec{X: 900 * math.Cos(w.angle), Y: 0, Z: 900 * math.Sin(w.angle)}
		for i := 0; i < 4; i++ {
			off := r3.Vec{X: float64(i) * 25, Y: float64(i%2) * 15, Z: float64(i) * -20}
			if _, err := g.SpawnEnemy(w.subtype, 0, r3.Add(base, off)); err != nil {
				return err
			}
		}
	}

	bosses := []struct {
		bossType components.BossType
		pos      r3.Vec
	}{
		{components.BossDreadnought, r3.Vec{X: 1500, Z: 400}},
		{components.BossPhaseShifter, r3.Vec{X: -1200, Z: -800}},
		{components.BossSwarmQueen, r3.Vec{Y: 300, Z: 1400}},
	}
	for _, b := range bosses {
		if _, err := g.SpawnBoss(b.bossType, b.pos); err != nil {
			return err
		}
	}

	resources := []components.Resource{
		components.ResourceIron, components.ResourceIron,
		components.ResourceGold, components.ResourceCrystal,
	}
	for i, res := range resources {
		angle := float64(i) * math.Pi / 2
		pos := r3.Vec{X: 200 * math.Cos(angle), Y: -40, Z: 200 * math.Sin(angle)}
		if _, err := g.SpawnAsteroid(res, 50+float64(i)*20, 1+float64(i)*0.5, pos); err != nil {
			return err
		}
	}

	return nil
}
